package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// UnitOfWork runs the redemption's mark-used and record-insert steps inside
// one MongoDB transaction so neither is visible without the other.
type UnitOfWork struct {
	client *mongo.Client
}

// NewUnitOfWork creates a UnitOfWork over the wrapped client
func NewUnitOfWork(c *Client) *UnitOfWork {
	return &UnitOfWork{
		client: c.client,
	}
}

// WithTransaction executes fn within a MongoDB transaction. The session
// context it passes joins every collection operation performed with it to
// the same transaction; if fn returns an error the transaction is aborted.
func (uow *UnitOfWork) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := uow.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})

	return err
}
