package services

import (
	"crypto/subtle"
	"errors"

	"github.com/sekawan78/spinwheel-backend/internal/config"
	"github.com/sekawan78/spinwheel-backend/internal/models"
	"github.com/sekawan78/spinwheel-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login attempt. It never
// distinguishes a wrong username from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates the operator against the static credential from
// configuration and issues the session token for the admin endpoints.
type AuthService interface {
	Login(req *models.LoginRequest) (*models.LoginResponse, error)
}

type authService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(cfg *config.Config) AuthService {
	return &authService{
		cfg: cfg,
	}
}

// Login checks the operator credential and returns a signed JWT. The bcrypt
// hash is preferred; the plaintext fallback exists for local development and
// is compared in constant time.
func (s *authService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	admin := s.cfg.Admin

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(admin.Username)) == 1

	var passOK bool
	if admin.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) == nil
	} else if admin.Password != "" {
		passOK = subtle.ConstantTimeCompare([]byte(req.Password), []byte(admin.Password)) == 1
	}

	if !userOK || !passOK {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(admin.Username, "admin", s.cfg)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token:    token,
		Username: admin.Username,
		Role:     "admin",
	}, nil
}
