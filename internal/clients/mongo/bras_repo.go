package mongo

import (
	"context"
	"errors"
	"time"

	"innerventory/internal/services/bras"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// BrasRepo implements the bras.Repository interface for MongoDB
type BrasRepo struct {
	collection *mongo.Collection
}

// NewBrasRepo creates a new bra inventory repository
func NewBrasRepo(parentCtx context.Context, db *mongo.Database) (*BrasRepo, error) {
	collection := db.Collection("bras")

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "band", Value: 1},
			{Key: "cup", Value: 1},
		},
	}

	ctx, cancel := context.WithTimeout(parentCtx, OpTimeout)
	defer cancel()

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
	}

	return &BrasRepo{collection: collection}, nil
}

// Create inserts an inventory item
func (r *BrasRepo) Create(ctx context.Context, b *bras.Bra) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, b)
	return err
}

// List retrieves the whole inventory sorted by band then cup
func (r *BrasRepo) List(ctx context.Context) ([]*bras.Bra, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "band", Value: 1}, {Key: "cup", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var items []*bras.Bra
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	return items, nil
}

// Update patches an inventory item
func (r *BrasRepo) Update(ctx context.Context, id bson.ObjectID, patch bras.UpdateBra) (*bras.Bra, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if patch.Band != nil {
		set["band"] = *patch.Band
	}
	if patch.Cup != nil {
		set["cup"] = *patch.Cup
	}
	if patch.Style != nil {
		set["style"] = *patch.Style
	}
	if patch.Condition != nil {
		set["condition"] = *patch.Condition
	}
	if patch.Quantity != nil {
		set["quantity"] = *patch.Quantity
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated bras.Bra
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bras.ErrBraNotFound
		}
		return nil, err
	}

	return &updated, nil
}

// Delete removes an inventory item
func (r *BrasRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return bras.ErrBraNotFound
	}

	return nil
}
