package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"innerventory/internal/clients/mongo"
	"innerventory/internal/config"
	"innerventory/internal/logger"

	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 25 * time.Second

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Structured logging is not available until the config is in, so very
	// early failures go through the plain stderr logger.
	boot := log.New(os.Stderr, "bootstrap: ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		boot.Printf("config load failed: %v", err)
		return err
	}

	logg, err := logger.Init(cfg)
	if err != nil {
		boot.Printf("logger init failed: %v", err)
		return err
	}

	if _, _, err := mongo.Init(ctx, cfg, logg); err != nil {
		logg.Error("mongo init", "err", err)
		return err
	}

	app := setupRouter(ctx, cfg)

	logg.Info("starting InnerVentory", "port", cfg.AppPort)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.AppPort)); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		// Fresh context: ctx is already done by the time we get here.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		if err := app.Shutdown(); err != nil {
			return err
		}
		return mongo.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error("fatal", "err", err)
		return err
	}

	logg.Info("graceful shutdown complete")
	return nil
}
