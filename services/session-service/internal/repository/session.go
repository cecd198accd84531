package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/drowsiness-api/services/session-service/internal/model"
)

// SessionRepository defines the interface for session-related database operations.
type SessionRepository interface {
	// CreateSession inserts a new document. Sessions sharing a client id are stored separately.
	CreateSession(ctx context.Context, session *model.Session) (*model.Session, error)

	// ListSessions returns at most limit sessions, most recently started first.
	ListSessions(ctx context.Context, limit int64) ([]*model.Session, error)
}

const sessionCollection = "sessions"

type sessionMongoRepository struct {
	db *mongo.Database
}

func NewSessionMongoRepository(db *mongo.Database) SessionRepository {
	return &sessionMongoRepository{db: db}
}

// EnsureSessionIndexes creates the index backing the startedAt-descending listing.
// Failure is logged and otherwise ignored so the service can start without the store.
func EnsureSessionIndexes(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "startedAt", Value: -1}},
		},
	}

	if _, err := db.Collection(sessionCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn().Err(err).Msg("failed to create session indexes")
		return
	}

	logger.Debug().Msg("session indexes ensured")
}

func (r *sessionMongoRepository) CreateSession(ctx context.Context, session *model.Session) (*model.Session, error) {
	session.ID = bson.ObjectID{}

	result, err := r.db.Collection(sessionCollection).InsertOne(ctx, session)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		session.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return session, nil
}

func (r *sessionMongoRepository) ListSessions(ctx context.Context, limit int64) ([]*model.Session, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "startedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.db.Collection(sessionCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := make([]*model.Session, 0)
	for cursor.Next(ctx) {
		var session model.Session
		if err := cursor.Decode(&session); err != nil {
			return nil, err
		}
		sessions = append(sessions, &session)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
