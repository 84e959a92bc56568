package bras

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Bra is a donated inventory item.
type Bra struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Band      int           `bson:"band" json:"band" validate:"required,min=26,max=56" example:"34"`
	Cup       string        `bson:"cup" json:"cup" validate:"required" example:"C"`
	Style     string        `bson:"style" json:"style" example:"t-shirt"`
	Condition string        `bson:"condition" json:"condition" validate:"omitempty,oneof=new like-new used" example:"like-new"`
	Quantity  int           `bson:"quantity" json:"quantity" validate:"min=0" example:"4"`
	DonatedAt time.Time     `bson:"donated_at" json:"donated_at"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

// UpdateBra holds the patchable fields of an inventory item.
type UpdateBra struct {
	Band      *int    `json:"band,omitempty" validate:"omitempty,min=26,max=56"`
	Cup       *string `json:"cup,omitempty" validate:"omitempty,min=1"`
	Style     *string `json:"style,omitempty"`
	Condition *string `json:"condition,omitempty" validate:"omitempty,oneof=new like-new used"`
	Quantity  *int    `json:"quantity,omitempty" validate:"omitempty,min=0"`
}
