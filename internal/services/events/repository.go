package events

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository defines the interface for events repository operations.
//
// Replace is the only operation that writes attendees: it overwrites the
// whole document when (and only when) the stored revision matches
// ev.Revision, bumping the revision by one. The server never interprets
// positional attendee deltas.
type Repository interface {
	Create(ctx context.Context, ev *Event) error
	List(ctx context.Context) ([]*Event, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*Event, error)
	Update(ctx context.Context, id bson.ObjectID, patch UpdateEvent) (*Event, error)
	Replace(ctx context.Context, ev *Event) (*Event, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}
