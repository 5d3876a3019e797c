package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sekawan78/spinwheel-backend/internal/config"
)

// CouponCodeLength is the fixed length of every coupon code.
const CouponCodeLength = 5

// codeAlphabet excludes nothing: codes are plain uppercase alphanumerics,
// matching what operators hand out on printed cards.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateJWT generates a signed HS256 token for the operator session
func GenerateJWT(username string, role string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Second * time.Duration(cfg.JWT.ExpiresIn)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateJWT validates a JWT token and returns its claims
func ValidateJWT(tokenString string, cfg *config.Config) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// NormalizeCode trims surrounding whitespace and uppercases a coupon code.
// Codes are normalized once at entry so every later comparison is exact.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCouponCode reports whether a normalized code is exactly 5 uppercase
// alphanumeric characters.
func ValidCouponCode(code string) bool {
	if len(code) != CouponCodeLength {
		return false
	}
	for _, c := range code {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// GenerateCouponCode generates a random 5-character coupon code
func GenerateCouponCode() (string, error) {
	var sb strings.Builder
	for i := 0; i < CouponCodeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}
