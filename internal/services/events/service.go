package events

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"innerventory/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles event business logic
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new events service
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// CreateEventRequest represents an event creation request.
// New events always start with an empty attendee list.
type CreateEventRequest struct {
	Name string    `json:"name" validate:"required" example:"Spring Fitting Day"`
	Date time.Time `json:"date" validate:"required" example:"2025-05-17T00:00:00Z"`
}

// UpdateEventRequest represents a scalar-field event update request
type UpdateEventRequest struct {
	Name *string    `json:"name,omitempty" validate:"omitempty,min=1" example:"Spring Fitting Day"`
	Date *time.Time `json:"date,omitempty" example:"2025-05-17T00:00:00Z"`
}

// ReplaceEventRequest carries the entire updated event, attendees included.
// Revision must echo the revision of the copy the caller mutated.
type ReplaceEventRequest struct {
	Name      string     `json:"name" validate:"required" example:"Spring Fitting Day"`
	Date      time.Time  `json:"date" validate:"required" example:"2025-05-17T00:00:00Z"`
	Attendees []Attendee `json:"attendees"`
	Revision  int64      `json:"revision" validate:"min=0" example:"3"`
}

// EventResponse represents a single event response
type EventResponse struct {
	Event *Event `json:"event"`
}

// ListEventsResponse represents a list of events response
type ListEventsResponse struct {
	Events []*Event `json:"events"`
}

// Create creates a new event with an empty attendee list
func (s *Service) Create(ctx context.Context, req CreateEventRequest) (*EventResponse, error) {
	now := time.Now()
	ev := &Event{
		ID:        bson.NewObjectID(),
		Name:      sanitize.Clean(req.Name),
		Date:      req.Date,
		Attendees: []Attendee{},
		Revision:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, ev); err != nil {
		s.log.Error(ErrCreateEvent.Error(), "error", err)
		return nil, ErrCreateEvent
	}

	return &EventResponse{Event: ev}, nil
}

// List retrieves all events in date order. No events is an empty list,
// never an error.
func (s *Service) List(ctx context.Context) (*ListEventsResponse, error) {
	evs, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error(ErrListEvents.Error(), "error", err)
		return nil, ErrListEvents
	}
	if evs == nil {
		evs = []*Event{}
	}

	return &ListEventsResponse{Events: evs}, nil
}

// Get retrieves a single event by id
func (s *Service) Get(ctx context.Context, id bson.ObjectID) (*EventResponse, error) {
	ev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		s.log.Error(ErrListEvents.Error(), "error", err, "event_id", id.Hex())
		return nil, ErrListEvents
	}

	return &EventResponse{Event: ev}, nil
}

// Update patches the scalar fields of an event. Attendees are untouched.
func (s *Service) Update(ctx context.Context, id bson.ObjectID, req UpdateEventRequest) (*EventResponse, error) {
	patch := UpdateEvent(req)
	if patch.Name != nil {
		cleaned := sanitize.Clean(*patch.Name)
		patch.Name = &cleaned
	}

	ev, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			s.log.Info("event not found for update", "event_id", id.Hex())
			return nil, ErrEventNotFound
		}
		s.log.Error(ErrUpdateEvent.Error(), "error", err, "event_id", id.Hex())
		return nil, ErrUpdateEvent
	}

	return &EventResponse{Event: ev}, nil
}

// Replace overwrites the whole event document, attendee list included.
// The attendee ordering in req is preserved verbatim. A stale revision
// yields ErrRevisionConflict and leaves the stored document untouched.
func (s *Service) Replace(ctx context.Context, id bson.ObjectID, req ReplaceEventRequest) (*EventResponse, error) {
	attendees := make([]Attendee, len(req.Attendees))
	for i, a := range req.Attendees {
		attendees[i] = cleanAttendee(a)
	}

	ev := &Event{
		ID:        id,
		Name:      sanitize.Clean(req.Name),
		Date:      req.Date,
		Attendees: attendees,
		Revision:  req.Revision,
	}

	replaced, err := s.repo.Replace(ctx, ev)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			s.log.Info("event not found for replace", "event_id", id.Hex())
			return nil, ErrEventNotFound
		case errors.Is(err, ErrRevisionConflict):
			s.log.Info("revision conflict on replace", "event_id", id.Hex(), "revision", req.Revision)
			return nil, ErrRevisionConflict
		}
		s.log.Error(ErrReplaceEvent.Error(), "error", err, "event_id", id.Hex())
		return nil, ErrReplaceEvent
	}

	return &EventResponse{Event: replaced}, nil
}

// Delete removes an event and all of its nested attendees as a unit
func (s *Service) Delete(ctx context.Context, id bson.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			s.log.Info("event not found for delete", "event_id", id.Hex())
			return ErrEventNotFound
		}
		s.log.Error(ErrDeleteEvent.Error(), "error", err, "event_id", id.Hex())
		return ErrDeleteEvent
	}

	return nil
}

func cleanAttendee(a Attendee) Attendee {
	return Attendee{
		Name:        sanitize.Clean(a.Name),
		SizeBefore:  sanitize.Clean(a.SizeBefore),
		SizeAfter:   sanitize.Clean(a.SizeAfter),
		FitterName:  sanitize.Clean(a.FitterName),
		PhoneNumber: sanitize.Clean(a.PhoneNumber),
		Email:       sanitize.Clean(a.Email),
	}
}
