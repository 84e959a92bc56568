package events

import (
	"context"
	"errors"

	"innerventory/cmd/server/handlers/handlerutil"
	"innerventory/internal/handlers/httperr"
	"innerventory/internal/services/events"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service defines the interface for events service
type Service interface {
	Create(ctx context.Context, req events.CreateEventRequest) (*events.EventResponse, error)
	List(ctx context.Context) (*events.ListEventsResponse, error)
	Get(ctx context.Context, id bson.ObjectID) (*events.EventResponse, error)
	Update(ctx context.Context, id bson.ObjectID, req events.UpdateEventRequest) (*events.EventResponse, error)
	Replace(ctx context.Context, id bson.ObjectID, req events.ReplaceEventRequest) (*events.EventResponse, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

// Handlers contains the events HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new events handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// Create handles event creation
// @Summary Create a new event with an empty attendee list
// @Tags events
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body events.CreateEventRequest true "Create event request"
// @Success 201 {object} events.EventResponse
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Router /events [post]
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req events.CreateEventRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Create"); err != nil {
		return err
	}

	resp, err := h.service.Create(c.Context(), req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "Create", nil, events.ErrEventNotFound)
	}

	return c.Status(201).JSON(resp)
}

// List handles event listing
// @Summary List all events with their nested attendees, in date order
// @Tags events
// @Produce json
// @Security Bearer
// @Success 200 {object} events.ListEventsResponse
// @Failure 401 {object} httperr.E
// @Router /events [get]
func (h *Handlers) List(c *fiber.Ctx) error {
	resp, err := h.service.List(c.Context())
	if err != nil {
		return handlerutil.HandleServiceError(err, "List", nil, events.ErrEventNotFound)
	}

	return c.JSON(resp)
}

// Get handles fetching one event
// @Summary Get a single event
// @Tags events
// @Produce json
// @Security Bearer
// @Param id path string true "Event ID"
// @Success 200 {object} events.EventResponse
// @Failure 401 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /events/{id} [get]
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "Get", events.ErrEventNotFound)
	if err != nil {
		return err
	}

	resp, err := h.service.Get(c.Context(), id)
	if err != nil {
		return handlerutil.HandleServiceError(err, "Get", &id, events.ErrEventNotFound)
	}

	return c.JSON(resp)
}

// Update handles scalar-field event updates
// @Summary Update an event's name or date
// @Tags events
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Event ID"
// @Param request body events.UpdateEventRequest true "Update event request"
// @Success 200 {object} events.EventResponse
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /events/{id} [patch]
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "Update", events.ErrEventNotFound)
	if err != nil {
		return err
	}

	var req events.UpdateEventRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Update"); err != nil {
		return err
	}

	resp, err := h.service.Update(c.Context(), id, req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "Update", &id, events.ErrEventNotFound)
	}

	return c.JSON(resp)
}

// Replace handles whole-event replacement. This is the only route that
// writes attendees: the body carries the full event, attendee order is
// preserved verbatim, and a stale revision answers 409.
// @Summary Replace an event in full, attendees included
// @Tags events
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Event ID"
// @Param request body events.ReplaceEventRequest true "Full event document"
// @Success 200 {object} events.EventResponse
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Failure 409 {object} httperr.E
// @Router /events/{id} [put]
func (h *Handlers) Replace(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "Replace", events.ErrEventNotFound)
	if err != nil {
		return err
	}

	var req events.ReplaceEventRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Replace"); err != nil {
		return err
	}

	resp, err := h.service.Replace(c.Context(), id, req)
	if err != nil {
		if errors.Is(err, events.ErrRevisionConflict) {
			return httperr.Fail(httperr.E{
				Status:  409,
				Message: err.Error(),
			})
		}
		return handlerutil.HandleServiceError(err, "Replace", &id, events.ErrEventNotFound)
	}

	return c.JSON(resp)
}

// Delete handles event deletion
// @Summary Delete an event and all of its attendees
// @Tags events
// @Produce json
// @Security Bearer
// @Param id path string true "Event ID"
// @Success 204
// @Failure 401 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /events/{id} [delete]
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "Delete", events.ErrEventNotFound)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return handlerutil.HandleServiceError(err, "Delete", &id, events.ErrEventNotFound)
	}

	return c.SendStatus(204)
}
