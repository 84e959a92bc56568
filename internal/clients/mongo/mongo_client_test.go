package mongo

import (
	"context"
	"testing"
	"time"

	"innerventory/internal/config"
	"innerventory/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const mongoTestURI = "mongodb://invalid/?connectTimeoutMS=1&serverSelectionTimeoutMS=1"

// stubDriver implements the driver interface for testing
type stubDriver struct {
	disconnects int
}

func (*stubDriver) Connect(_ context.Context, _ *options.ClientOptions) (*mongo.Client, error) {
	return nil, context.DeadlineExceeded // fail immediately to avoid retry delays
}

func (*stubDriver) Ping(_ context.Context, _ *mongo.Client) error {
	return context.DeadlineExceeded
}

func (s *stubDriver) Disconnect(_ context.Context, _ *mongo.Client) error {
	s.disconnects++
	return nil
}

// withStubDriver temporarily replaces the global driver with a stub
func withStubDriver(t *testing.T) (*stubDriver, func()) {
	t.Helper()
	old := drv
	stub := &stubDriver{}
	drv = stub
	return stub, func() { drv = old }
}

func testCfg() config.Config {
	return config.Config{
		MongoURI:    mongoTestURI,
		MongoDBName: "test",
		LogLevel:    "error",
		LogFormat:   "json",
	}
}

func TestInitConnectFailure(t *testing.T) {
	_, restore := withStubDriver(t)
	defer restore()
	reset()
	defer reset()

	log, err := logger.Init(testCfg())
	require.NoError(t, err)

	client1, db1, err1 := Init(context.Background(), testCfg(), log)
	client2, db2, err2 := Init(context.Background(), testCfg(), log)

	assert.Nil(t, client1, "client should be nil on connection failure")
	assert.Nil(t, db1)
	assert.Nil(t, client2)
	assert.Nil(t, db2)
	assert.Error(t, err1)
	assert.Error(t, err2)
}

func TestShutdownWithoutInit(t *testing.T) {
	stub, restore := withStubDriver(t)
	defer restore()
	reset()
	defer reset()

	require.NoError(t, Shutdown(context.Background()))
	assert.Zero(t, stub.disconnects, "nothing to disconnect before Init")
	assert.Nil(t, Client())
	assert.Nil(t, DB())
}

func TestWithRepoTimeout(t *testing.T) {
	t.Run("adds a deadline", func(t *testing.T) {
		ctx, cancel := WithRepoTimeout(context.Background(), OpTimeout)
		defer cancel()

		deadline, ok := ctx.Deadline()
		require.True(t, ok, "repo contexts always carry a deadline")
		assert.WithinDuration(t, time.Now().Add(OpTimeout), deadline, time.Second)
	})

	t.Run("keeps a stricter parent deadline", func(t *testing.T) {
		parent, parentCancel := context.WithTimeout(context.Background(), time.Second)
		defer parentCancel()

		ctx, cancel := WithRepoTimeout(parent, OpTimeout)
		defer cancel()
		assert.Equal(t, parent, ctx)
	})

	t.Run("canceled parent passes through", func(t *testing.T) {
		parent, parentCancel := context.WithCancel(context.Background())
		parentCancel()

		ctx, cancel := WithRepoTimeout(parent, OpTimeout)
		defer cancel()
		assert.Equal(t, parent, ctx)
	})
}
