package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vasapolrittideah/drowsiness-api/services/session-service/internal/model"
	"github.com/vasapolrittideah/drowsiness-api/services/session-service/internal/repository"
)

// DefaultListLimit is used when the caller does not ask for a specific limit.
const DefaultListLimit int64 = 50

// SessionUsecase defines the business logic for recording and reading back sessions.
type SessionUsecase interface {
	// CreateSession stores a new session, stamping CreatedAt when the client omitted it.
	CreateSession(ctx context.Context, params CreateSessionParams) (*model.Session, error)

	// ListSessions returns up to limit sessions, most recently started first.
	// A limit of zero means DefaultListLimit.
	ListSessions(ctx context.Context, limit int64) ([]*model.Session, error)
}

// CreateSessionParams defines the already validated fields of a new session.
type CreateSessionParams struct {
	SessionID       string
	UserID          *string
	StartedAt       int64
	DurationSec     int64
	Alerts          int64
	Sensitivity     string
	AvgEAR          *float64
	DeviceConnected *bool
	CreatedAt       *time.Time
}

var (
	ErrStorage      = errors.New("session storage unavailable")
	ErrInvalidLimit = errors.New("limit must be a positive integer")
)

type sessionUsecase struct {
	sessionRepo repository.SessionRepository
	now         func() time.Time
}

// NewSessionUsecase creates a new instance of SessionUsecase.
func NewSessionUsecase(sessionRepo repository.SessionRepository) SessionUsecase {
	return &sessionUsecase{
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

func (u *sessionUsecase) CreateSession(ctx context.Context, params CreateSessionParams) (*model.Session, error) {
	createdAt := u.now()
	if params.CreatedAt != nil {
		createdAt = *params.CreatedAt
	}
	// BSON dates keep millisecond precision.
	createdAt = createdAt.UTC().Truncate(time.Millisecond)

	session, err := u.sessionRepo.CreateSession(ctx, &model.Session{
		SessionID:       params.SessionID,
		UserID:          params.UserID,
		StartedAt:       params.StartedAt,
		DurationSec:     params.DurationSec,
		Alerts:          params.Alerts,
		Sensitivity:     params.Sensitivity,
		AvgEAR:          params.AvgEAR,
		DeviceConnected: params.DeviceConnected,
		CreatedAt:       createdAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return session, nil
}

func (u *sessionUsecase) ListSessions(ctx context.Context, limit int64) ([]*model.Session, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = DefaultListLimit
	}

	sessions, err := u.sessionRepo.ListSessions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return sessions, nil
}
