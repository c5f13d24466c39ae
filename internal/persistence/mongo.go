package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/spec-kit/lms-service/internal/config"
)

// Mongo wraps access to the document database.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongo establishes a client and verifies connectivity.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	connectCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("connected to mongodb", zap.String("database", cfg.Database))
	return &Mongo{Client: client, Database: client.Database(cfg.Database)}, nil
}

// Close releases client resources.
func (m *Mongo) Close(ctx context.Context) {
	if m != nil && m.Client != nil {
		_ = m.Client.Disconnect(ctx)
	}
}

// Ping verifies database connectivity.
func (m *Mongo) Ping(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return errors.New("mongo client not configured")
	}
	return m.Client.Ping(ctx, nil)
}

// DB returns the underlying database handle.
func (m *Mongo) DB() *mongo.Database {
	if m == nil {
		return nil
	}
	return m.Database
}
