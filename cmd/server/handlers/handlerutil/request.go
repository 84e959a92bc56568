package handlerutil

import (
	"errors"

	"innerventory/internal/handlers/httperr"
	"innerventory/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// NotFoundError wraps a domain not-found error into the 404 envelope.
func NotFoundError(err error) error {
	return httperr.Fail(httperr.E{
		Status:  404,
		Message: err.Error(),
	})
}

// GetUserID extracts user ID from fiber context
func GetUserID(c *fiber.Ctx) (bson.ObjectID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		logger.L().Error("user ID not found in context", "handler", "getUserID", "path", c.Path())
		return bson.ObjectID{}, httperr.Fail(httperr.ErrUnauthorized)
	}

	userID, err := bson.ObjectIDFromHex(userIDStr)
	if err != nil {
		logger.L().Error("invalid user ID", "handler", "getUserID", "userIDStr", userIDStr, "path", c.Path(), "error", err)
		return bson.ObjectID{}, httperr.Fail(httperr.ErrUnauthorized)
	}

	return userID, nil
}

// ParseAndValidateBody parses request body and validates it
func ParseAndValidateBody(c *fiber.Ctx, req any, validator *validator.Validate, handlerName string) error {
	if err := c.BodyParser(req); err != nil {
		logger.L().Warn("failed to parse request body", "handler", handlerName, "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := validator.Struct(req); err != nil {
		logger.L().Warn("request validation failed", "handler", handlerName, "error", err)
		return httperr.InvalidInput(err)
	}

	return nil
}

// ExtractID extracts and validates an ObjectID from the :id URL parameter.
// Malformed and missing IDs both answer 404 carrying notFoundErr.
func ExtractID(c *fiber.Ctx, handlerName string, notFoundErr error) (bson.ObjectID, error) {
	idStr := c.Params("id")
	if idStr == "" {
		logger.L().Warn("missing ID parameter", "handler", handlerName, "path", c.Path())
		return bson.ObjectID{}, NotFoundError(notFoundErr)
	}

	id, err := bson.ObjectIDFromHex(idStr)
	if err != nil {
		logger.L().Warn("invalid ID parameter", "handler", handlerName, "idStr", idStr, "error", err)
		return bson.ObjectID{}, NotFoundError(notFoundErr)
	}

	return id, nil
}

// HandleServiceError handles common service error responses
func HandleServiceError(err error, handlerName string, id *bson.ObjectID, notFoundErr error) error {
	logFields := []any{"handler", handlerName, "error", err}

	if id != nil {
		logFields = append(logFields, "id", id.Hex())
	}

	if errors.Is(err, notFoundErr) {
		logger.L().Info("resource not found", logFields...)
		return NotFoundError(notFoundErr)
	}

	logger.L().Error("service operation failed", logFields...)
	return httperr.Fail(httperr.E{
		Status:  500,
		Message: err.Error(),
	})
}
