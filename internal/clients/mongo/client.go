package mongo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"innerventory/internal/config"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const connectTimeout = 10 * time.Second

// Package-level singleton. Init populates it once, Shutdown clears it.
var (
	mu      sync.Mutex
	client  *mongo.Client
	db      *mongo.Database
	initErr error
)

// Init dials MongoDB and caches the client for the rest of the process.
// Repeated calls return the cached handles. A ping failure is reported
// but still leaves a usable client behind, so the server can come up
// before the database does.
func Init(ctx context.Context, cfg config.Config, log *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	mu.Lock()
	defer mu.Unlock()

	if client != nil && db != nil {
		return client, db, initErr
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(connectTimeout).
		SetAppName("innerventory")

	cli, err := drv.Connect(ctx, opts)
	if err != nil {
		log.Error("mongo connect failed", "err", err)
		return nil, nil, err
	}

	initErr = drv.Ping(ctx, cli)
	if initErr != nil {
		log.Error("mongo ping failed", "err", initErr)
	} else {
		log.Info("connected to mongo", "db", cfg.MongoDBName)
	}

	client = cli
	db = cli.Database(cfg.MongoDBName)

	return client, db, initErr
}

// Client returns the cached client, or nil before Init.
func Client() *mongo.Client {
	mu.Lock()
	defer mu.Unlock()
	return client
}

// DB returns the cached database handle, or nil before Init.
func DB() *mongo.Database {
	mu.Lock()
	defer mu.Unlock()
	return db
}

// Shutdown disconnects and clears the cached handles. Calling it again,
// or before Init, is a no-op.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := drv.Disconnect(ctx, client)

	client = nil
	db = nil
	initErr = nil

	return err
}
