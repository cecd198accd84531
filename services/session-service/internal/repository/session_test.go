package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/drowsiness-api/services/session-service/internal/model"
)

// newTestDatabase connects to MONGODB_TEST_URI and returns a throwaway database.
func newTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database(fmt.Sprintf("drowsy_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

func newSession(id string, startedAt int64) *model.Session {
	return &model.Session{
		SessionID:   id,
		StartedAt:   startedAt,
		DurationSec: 120,
		Alerts:      2,
		Sensitivity: "Balanced",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestSessionMongoRepository_CreateSession(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewSessionMongoRepository(db)
	ctx := context.Background()

	created, err := repo.CreateSession(ctx, newSession("s1", 1700000000000))
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	var stored bson.M
	require.NoError(t, db.Collection(sessionCollection).FindOne(ctx, bson.M{"_id": created.ID}).Decode(&stored))
	assert.Equal(t, "s1", stored["id"])
	assert.Equal(t, int64(1700000000000), stored["startedAt"])
	assert.Contains(t, stored, "avgEar")
	assert.Nil(t, stored["avgEar"])
	assert.Nil(t, stored["user_id"])
}

func TestSessionMongoRepository_DuplicateIDsAreSeparateDocuments(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewSessionMongoRepository(db)
	ctx := context.Background()

	first, err := repo.CreateSession(ctx, newSession("dup", 1700000000000))
	require.NoError(t, err)
	second, err := repo.CreateSession(ctx, newSession("dup", 1700000000000))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	count, err := db.Collection(sessionCollection).CountDocuments(ctx, bson.M{"id": "dup"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSessionMongoRepository_ListSessionsSortedAndLimited(t *testing.T) {
	db := newTestDatabase(t)
	logger := zerolog.New(io.Discard)
	ctx := context.Background()

	EnsureSessionIndexes(ctx, &logger, db)
	repo := NewSessionMongoRepository(db)

	for i, startedAt := range []int64{300, 100, 500, 200, 400} {
		_, err := repo.CreateSession(ctx, newSession(fmt.Sprintf("s%d", i), startedAt))
		require.NoError(t, err)
	}

	all, err := repo.ListSessions(ctx, 50)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i-1].StartedAt, all[i].StartedAt)
	}

	limited, err := repo.ListSessions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, int64(500), limited[0].StartedAt)
	assert.Equal(t, int64(400), limited[1].StartedAt)
}

func TestSessionMongoRepository_ListSessionsEmpty(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewSessionMongoRepository(db)

	sessions, err := repo.ListSessions(context.Background(), 50)
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestEnsureSessionIndexes_GivesUpAtDeadline(t *testing.T) {
	client, err := mongo.Connect(options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(time.Minute))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	EnsureSessionIndexes(ctx, &logger, client.Database("drowsy_unreachable"))

	assert.Less(t, time.Since(start), 10*time.Second)
	assert.Contains(t, logs.String(), "failed to create session indexes")
	assert.Contains(t, logs.String(), `"level":"warn"`)
}
