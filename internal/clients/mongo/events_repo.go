package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"innerventory/internal/logger"
	"innerventory/internal/services/events"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EventsRepo implements the events.Repository interface for MongoDB
type EventsRepo struct {
	collection *mongo.Collection
}

// translateEventNotFound maps the driver ErrNoDocuments to the domain-level error.
func translateEventNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return events.ErrEventNotFound
	}
	return err
}

// NewEventsRepo creates a new events repository
func NewEventsRepo(parentCtx context.Context, db *mongo.Database) (*EventsRepo, error) {
	collection := db.Collection("events")

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "date", Value: 1},
				{Key: "_id", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
	}

	ctx, cancel := context.WithTimeout(parentCtx, OpTimeout)
	defer cancel()

	for _, indexModel := range indexes {
		_, err := collection.Indexes().CreateOne(ctx, indexModel)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				logger.L().Debug("index already exists, continuing", "collection", "events")
			} else {
				logger.L().Error("failed to create index", "collection", "events", "error", err)
				return nil, fmt.Errorf("failed to create events collection index: %w", err)
			}
		}
	}

	return &EventsRepo{
		collection: collection,
	}, nil
}

// Create creates a new event in the database
func (r *EventsRepo) Create(ctx context.Context, ev *events.Event) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	now := time.Now()
	ev.CreatedAt = now
	ev.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, ev)
	return err
}

// List retrieves all events in date order, oldest first. Attendee order
// inside each document is whatever was last written; the driver preserves
// array order verbatim.
func (r *EventsRepo) List(ctx context.Context) ([]*events.Event, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func(ctxToClose context.Context) {
		if cerr := cursor.Close(ctxToClose); cerr != nil {
			logger.L().Error("failed to close cursor", "error", cerr)
		}
	}(ctx)

	var list []*events.Event
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}

	return list, nil
}

// FindByID retrieves a single event
func (r *EventsRepo) FindByID(ctx context.Context, id bson.ObjectID) (*events.Event, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var ev events.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ev)
	if err != nil {
		return nil, translateEventNotFound(err)
	}

	return &ev, nil
}

// Update patches the scalar fields of an event, bumping its revision
func (r *EventsRepo) Update(ctx context.Context, id bson.ObjectID, patch events.UpdateEvent) (*events.Event, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}

	update := bson.M{
		"$set": set,
		"$inc": bson.M{"revision": 1},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated events.Event
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		return nil, translateEventNotFound(err)
	}

	return &updated, nil
}

// Replace overwrites the whole event document when the stored revision
// matches ev.Revision. The attendee slice is written verbatim; order is
// the caller's order. A matched-nothing outcome is disambiguated into
// not-found versus revision conflict with a second lookup.
func (r *EventsRepo) Replace(ctx context.Context, ev *events.Event) (*events.Event, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := bson.M{
		"_id":      ev.ID,
		"revision": ev.Revision,
	}

	update := bson.M{
		"$set": bson.M{
			"name":       ev.Name,
			"date":       ev.Date,
			"attendees":  ev.Attendees,
			"updated_at": time.Now().UTC(),
		},
		"$inc": bson.M{"revision": 1},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var replaced events.Event
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&replaced)
	if err == nil {
		return &replaced, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Nothing matched: either the event is gone or the revision is stale.
	count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": ev.ID})
	if countErr != nil {
		return nil, countErr
	}
	if count == 0 {
		return nil, events.ErrEventNotFound
	}
	return nil, events.ErrRevisionConflict
}

// Delete removes an event document and, with it, every nested attendee
func (r *EventsRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return events.ErrEventNotFound
	}

	return nil
}
