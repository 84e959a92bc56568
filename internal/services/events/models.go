package events

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Attendee is a fitting record nested inside an Event. Attendees have no
// identity of their own; they are addressed by position in the parent's
// Attendees slice, and a reorder or delete renumbers everything after it.
type Attendee struct {
	Name        string `bson:"name" json:"name" example:"Anna Lee"`
	SizeBefore  string `bson:"size_before" json:"size_before" example:"36B"`
	SizeAfter   string `bson:"size_after" json:"size_after" example:"34C"`
	FitterName  string `bson:"fitter_name" json:"fitter_name" example:"Dana Reyes"`
	PhoneNumber string `bson:"phone_number" json:"phone_number" example:"555-0134"`
	Email       string `bson:"email" json:"email" example:"anna@example.com"`
}

// Event is a dated fitting event with an ordered attendee list.
// Revision increments on every write; Replace requires the caller's
// revision to match so concurrent whole-document overwrites are detected
// instead of silently dropping each other's attendees.
type Event struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	Name      string        `bson:"name" json:"name" validate:"required" example:"Spring Fitting Day"`
	Date      time.Time     `bson:"date" json:"date" validate:"required" example:"2025-05-17T00:00:00Z"`
	Attendees []Attendee    `bson:"attendees" json:"attendees"`
	Revision  int64         `bson:"revision" json:"revision" example:"3"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at" example:"2025-06-01T23:00:26.005703677Z"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at" example:"2025-06-01T23:00:26.005703677Z"`
}

// UpdateEvent represents the scalar fields that can be patched on an event.
// Attendees are never patched; they travel only inside a full Replace.
type UpdateEvent struct {
	Name *string    `json:"name,omitempty" validate:"omitempty,min=1" example:"Spring Fitting Day"`
	Date *time.Time `json:"date,omitempty" example:"2025-05-17T00:00:00Z"`
}
