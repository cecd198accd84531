package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const disconnectTimeout = 10 * time.Second

// MongoDB owns the process-wide client and the database handle derived from it.
type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zerolog.Logger
}

// NewMongoDB creates a client for the given URI. The driver connects lazily,
// so an unreachable server only surfaces on the first operation.
func NewMongoDB(logger *zerolog.Logger, uri, dbName string) (*MongoDB, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	return &MongoDB{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

// Database returns the configured database handle.
func (m *MongoDB) Database() *mongo.Database {
	return m.db
}

// Close disconnects the client, waiting at most disconnectTimeout.
func (m *MongoDB) Close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, disconnectTimeout)
	defer cancel()

	if err := m.client.Disconnect(ctx); err != nil {
		m.logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		return
	}

	m.logger.Info().Msg("disconnected from MongoDB")
}
