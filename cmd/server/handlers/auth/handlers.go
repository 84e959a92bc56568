package auth

import (
	"context"
	"errors"

	"innerventory/cmd/server/handlers/handlerutil"
	"innerventory/internal/handlers/httperr"
	"innerventory/internal/logger"
	"innerventory/internal/services/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// AuthService is the slice of the auth service these handlers call.
type AuthService interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error)
	SignIn(ctx context.Context, req auth.SignInRequest) (*auth.AuthResponse, error)
	UpdateUser(ctx context.Context, userID bson.ObjectID, req auth.UpdateUser) (*auth.User, error)
}

// Handlers serves the /auth and /users/me routes.
type Handlers struct {
	authService AuthService
	validator   *validator.Validate
}

func NewHandlers(authService AuthService, validator *validator.Validate) *Handlers {
	return &Handlers{
		authService: authService,
		validator:   validator,
	}
}

// SignUp handles user registration
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.RegisterRequest true "Sign up request"
// @Success 201 {object} auth.RegisterResponse
// @Failure 400 {object} httperr.E
// @Failure 409 {object} httperr.E
// @Router /auth/sign-up [post]
func (h *Handlers) SignUp(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "SignUp"); err != nil {
		return err
	}

	resp, err := h.authService.Register(c.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicate) {
			logger.L().Info("duplicate registration attempt", "handler", "SignUp", "email", req.Email)
			return httperr.Fail(httperr.E{
				Status:  409,
				Message: err.Error(),
			})
		}
		logger.L().Error("signup service failed", "handler", "SignUp", "email", req.Email, "error", err)
		return httperr.Fail(httperr.E{
			Status:  400,
			Message: err.Error(),
		})
	}

	return c.Status(201).JSON(resp)
}

// SignIn handles user authentication
// @Summary Authenticate a user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.SignInRequest true "Sign in request"
// @Success 200 {object} auth.SignInResponse
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Failure 429 {object} httperr.E
// @Router /auth/sign-in [post]
func (h *Handlers) SignIn(c *fiber.Ctx) error {
	var req auth.SignInRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "SignIn"); err != nil {
		return err
	}

	resp, err := h.authService.SignIn(c.Context(), req)
	if err != nil {
		logger.L().Info("signin rejected", "handler", "SignIn", "email", req.Email, "error", err)
		return httperr.Fail(httperr.E{
			Status:  401,
			Message: err.Error(),
		})
	}

	return c.JSON(resp)
}

// UpdateProfile handles profile updates for the signed-in user. A password
// is re-hashed only when the request actually carries a new one.
// @Summary Update the current user's profile
// @Tags auth
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body auth.UpdateUser true "Profile patch"
// @Success 200 {object} auth.User
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Router /me [patch]
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	var req auth.UpdateUser
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "UpdateProfile"); err != nil {
		return err
	}

	user, err := h.authService.UpdateUser(c.Context(), userID, req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "UpdateProfile", &userID, auth.ErrUserNotFound)
	}

	return c.JSON(user)
}
