package bras

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository defines the interface for bra inventory repository operations
type Repository interface {
	Create(ctx context.Context, b *Bra) error
	List(ctx context.Context) ([]*Bra, error)
	Update(ctx context.Context, id bson.ObjectID, patch UpdateBra) (*Bra, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}
