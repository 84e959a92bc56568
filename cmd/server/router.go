package main

import (
	"context"
	"strings"
	"time"

	"innerventory/cmd/server/handlers"
	authHandlers "innerventory/cmd/server/handlers/auth"
	brasHandlers "innerventory/cmd/server/handlers/bras"
	eventsHandlers "innerventory/cmd/server/handlers/events"
	"innerventory/cmd/server/middlewares"
	"innerventory/internal/clients/mongo"
	"innerventory/internal/config"
	"innerventory/internal/handlers/httperr"
	"innerventory/internal/logger"
	authServices "innerventory/internal/services/auth"
	brasServices "innerventory/internal/services/bras"
	eventsServices "innerventory/internal/services/events"
	"innerventory/internal/utils/crypto"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	RateLimitExpiration = 1 * time.Minute
)

// setupRouter configures and returns a Fiber app with all routes
func setupRouter(ctx context.Context, cfg config.Config) *fiber.App {

	// Initialize validator and register password validation
	v := validator.New()
	if err := crypto.RegisterPasswordValidator(v); err != nil {
		logger.L().Error("failed to register password validator", "err", err)
		panic(err)
	}

	// Validate JWT algorithm at boot
	alg := strings.ToUpper(cfg.JWTAlgorithm)
	switch alg {
	case "HS256":
		// Valid algorithm
	default:
		logger.L().Error(authServices.ErrUnsupportedJWTAlg.Error(), "algorithm", cfg.JWTAlgorithm)
		panic(authServices.ErrUnsupportedJWTAlg.Error() + ": " + cfg.JWTAlgorithm)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true, // make Fiber copy all request-derived strings
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(middlewares.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type, Authorization",
	}))

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app)
	}

	// Health check endpoint, outside versioned API to appease scanners and to avoid logging
	app.Get("/healthz", handlers.Healthz)

	var v1 fiber.Router
	if cfg.RequestLoggingEnabled {
		v1 = app.Group("/api/v1", fiberlogger.New())
		logger.L().Info("request logging enabled")
	} else {
		v1 = app.Group("/api/v1")
		logger.L().Info("request logging disabled")
	}

	jwtMiddleware := middlewares.JWT(cfg)

	limiterMW := middlewares.BuildRateLimiter(cfg.SignInRatePerMin, RateLimitExpiration)

	usersRepo, newUsersRepoErr := mongo.NewUsersRepo(ctx, mongo.DB())
	if newUsersRepoErr != nil {
		logger.L().Error("failed to create users repository", "error", newUsersRepoErr)
		panic(newUsersRepoErr)
	}
	authSvc := authServices.NewService(usersRepo, cfg, logger.L())
	authH := authHandlers.NewHandlers(authSvc, v)

	authGrp := v1.Group("/auth", limiterMW)
	authGrp.Post("/sign-up", authH.SignUp)
	authGrp.Post("/sign-in", authH.SignIn)

	// Events routes: PUT is the whole-document replace that carries the
	// attendee list; there are no attendee-level endpoints.
	eventsRepo, err := mongo.NewEventsRepo(ctx, mongo.DB())
	if err != nil {
		logger.L().Error(eventsServices.ErrCreateEventsRepo.Error(), "error", err)
		panic(err)
	}
	eventsSvc := eventsServices.NewService(eventsRepo, logger.L())
	eventsH := eventsHandlers.NewHandlers(eventsSvc, v)

	eventsGrp := v1.Group("/events", jwtMiddleware)
	eventsGrp.Post("/", eventsH.Create)
	eventsGrp.Get("/", eventsH.List)
	eventsGrp.Get("/:id", eventsH.Get)
	eventsGrp.Patch("/:id", eventsH.Update)
	eventsGrp.Put("/:id", eventsH.Replace)
	eventsGrp.Delete("/:id", eventsH.Delete)

	// Bra inventory routes
	brasRepo, err := mongo.NewBrasRepo(ctx, mongo.DB())
	if err != nil {
		logger.L().Error("failed to create bras repository", "error", err)
		panic(err)
	}
	brasSvc := brasServices.NewService(brasRepo, logger.L())
	brasH := brasHandlers.NewHandlers(brasSvc, v)

	brasGrp := v1.Group("/bras", jwtMiddleware)
	brasGrp.Post("/", brasH.Create)
	brasGrp.Get("/", brasH.List)
	brasGrp.Patch("/:id", brasH.Update)
	brasGrp.Delete("/:id", brasH.Delete)

	// User profile endpoints
	v1.Get("/me", jwtMiddleware, handlers.Me)
	v1.Patch("/me", jwtMiddleware, authH.UpdateProfile)

	return app
}
