package payload

import (
	"time"

	"github.com/vasapolrittideah/drowsiness-api/services/session-service/internal/model"
	"github.com/vasapolrittideah/drowsiness-api/services/session-service/internal/usecase"
)

// CreateSessionRequest is the body of POST /sessions. Required fields are
// pointers so that a missing field can be told apart from a zero value.
type CreateSessionRequest struct {
	ID              *string    `json:"id"              validate:"required"`
	UserID          *string    `json:"user_id"`
	StartedAt       *int64     `json:"startedAt"       validate:"required"`
	DurationSec     *int64     `json:"durationSec"     validate:"required"`
	Alerts          *int64     `json:"alerts"          validate:"required"`
	Sensitivity     *string    `json:"sensitivity"     validate:"required"`
	AvgEAR          *float64   `json:"avgEar"`
	DeviceConnected *bool      `json:"deviceConnected"`
	CreatedAt       *Timestamp `json:"createdAt"`
}

// ToParams converts a validated request into usecase parameters.
func (r *CreateSessionRequest) ToParams() usecase.CreateSessionParams {
	var createdAt *time.Time
	if r.CreatedAt != nil {
		t := r.CreatedAt.Time
		createdAt = &t
	}

	return usecase.CreateSessionParams{
		SessionID:       *r.ID,
		UserID:          r.UserID,
		StartedAt:       *r.StartedAt,
		DurationSec:     *r.DurationSec,
		Alerts:          *r.Alerts,
		Sensitivity:     *r.Sensitivity,
		AvgEAR:          r.AvgEAR,
		DeviceConnected: r.DeviceConnected,
		CreatedAt:       createdAt,
	}
}

// SessionResponse is a stored session as returned by both session routes.
type SessionResponse struct {
	ObjectID        string    `json:"_id"`
	ID              string    `json:"id"`
	UserID          *string   `json:"user_id"`
	StartedAt       int64     `json:"startedAt"`
	DurationSec     int64     `json:"durationSec"`
	Alerts          int64     `json:"alerts"`
	Sensitivity     string    `json:"sensitivity"`
	AvgEAR          *float64  `json:"avgEar"`
	DeviceConnected *bool     `json:"deviceConnected"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewSessionResponse(s *model.Session) SessionResponse {
	return SessionResponse{
		ObjectID:        s.ID.Hex(),
		ID:              s.SessionID,
		UserID:          s.UserID,
		StartedAt:       s.StartedAt,
		DurationSec:     s.DurationSec,
		Alerts:          s.Alerts,
		Sensitivity:     s.Sensitivity,
		AvgEAR:          s.AvgEAR,
		DeviceConnected: s.DeviceConnected,
		CreatedAt:       s.CreatedAt,
	}
}

// NewSessionListResponse always returns a non-nil slice so the body encodes as [].
func NewSessionListResponse(sessions []*model.Session) []SessionResponse {
	out := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, NewSessionResponse(s))
	}
	return out
}
