package bras

import (
	"context"

	"innerventory/cmd/server/handlers/handlerutil"
	"innerventory/internal/services/bras"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service defines the interface for the bra inventory service
type Service interface {
	Create(ctx context.Context, req bras.CreateBraRequest) (*bras.BraResponse, error)
	List(ctx context.Context) (*bras.ListBrasResponse, error)
	Update(ctx context.Context, id bson.ObjectID, patch bras.UpdateBra) (*bras.BraResponse, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

// Handlers contains the bra inventory HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new bras handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// Create adds an item to the inventory
// @Summary Add a bra to the inventory
// @Tags bras
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body bras.CreateBraRequest true "Create bra request"
// @Success 201 {object} bras.BraResponse
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Router /bras [post]
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req bras.CreateBraRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Create"); err != nil {
		return err
	}

	resp, err := h.service.Create(c.Context(), req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "Create", nil, bras.ErrBraNotFound)
	}

	return c.Status(201).JSON(resp)
}

// List returns the whole inventory
// @Summary List the bra inventory
// @Tags bras
// @Produce json
// @Security Bearer
// @Success 200 {object} bras.ListBrasResponse
// @Failure 401 {object} httperr.E
// @Router /bras [get]
func (h *Handlers) List(c *fiber.Ctx) error {
	resp, err := h.service.List(c.Context())
	if err != nil {
		return handlerutil.HandleServiceError(err, "List", nil, bras.ErrBraNotFound)
	}

	return c.JSON(resp)
}

// Update patches an inventory item
// @Summary Update a bra
// @Tags bras
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Bra ID"
// @Param request body bras.UpdateBra true "Update bra request"
// @Success 200 {object} bras.BraResponse
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /bras/{id} [patch]
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "Update", bras.ErrBraNotFound)
	if err != nil {
		return err
	}

	var req bras.UpdateBra
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Update"); err != nil {
		return err
	}

	resp, err := h.service.Update(c.Context(), id, req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "Update", &id, bras.ErrBraNotFound)
	}

	return c.JSON(resp)
}

// Delete removes an inventory item
// @Summary Delete a bra
// @Tags bras
// @Produce json
// @Security Bearer
// @Param id path string true "Bra ID"
// @Success 204
// @Failure 401 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /bras/{id} [delete]
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "Delete", bras.ErrBraNotFound)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return handlerutil.HandleServiceError(err, "Delete", &id, bras.ErrBraNotFound)
	}

	return c.SendStatus(204)
}
