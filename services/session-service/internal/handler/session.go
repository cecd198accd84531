package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/drowsiness-api/services/session-service/internal/payload"
	"github.com/vasapolrittideah/drowsiness-api/services/session-service/internal/usecase"
	"github.com/vasapolrittideah/drowsiness-api/shared/middleware"
	"github.com/vasapolrittideah/drowsiness-api/shared/response"
	"github.com/vasapolrittideah/drowsiness-api/shared/validator"
)

const maxBodyBytes = 1 << 20

type sessionHTTPHandler struct {
	sessionUsecase usecase.SessionUsecase
	validator      *validator.Validator
	logger         *zerolog.Logger
}

func newSessionHTTPHandler(
	sessionUsecase usecase.SessionUsecase,
	v *validator.Validator,
	logger *zerolog.Logger,
) *sessionHTTPHandler {
	return &sessionHTTPHandler{
		sessionUsecase: sessionUsecase,
		validator:      v,
		logger:         logger,
	}
}

func (h *sessionHTTPHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	req, err := h.decodeCreateSessionRequest(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		var validationErr *validator.ValidationError
		switch {
		case errors.As(err, &maxBytesErr):
			response.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
		case errors.As(err, &validationErr):
			response.ValidationError(w, validationErr.Fields)
		default:
			h.logger.Error().Err(err).Msg("failed to validate session payload")
			response.Error(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	session, err := h.sessionUsecase.CreateSession(r.Context(), req.ToParams())
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("session_id", *req.ID).
			Msg("failed to create session")

		if errors.Is(err, usecase.ErrStorage) {
			response.Error(w, http.StatusInternalServerError, "storage unavailable")
			return
		}
		response.Error(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	if err := response.JSON(w, http.StatusOK, payload.NewSessionResponse(session)); err != nil {
		h.logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("object_id", session.ID.Hex()).
			Msg("failed to write created session")
	}
}

func (h *sessionHTTPHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		response.ValidationError(w, map[string]string{"limit": err.Error()})
		return
	}

	sessions, err := h.sessionUsecase.ListSessions(r.Context(), limit)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Int64("limit", limit).
			Msg("failed to list sessions")

		switch {
		case errors.Is(err, usecase.ErrInvalidLimit):
			response.ValidationError(w, map[string]string{"limit": err.Error()})
		case errors.Is(err, usecase.ErrStorage):
			response.Error(w, http.StatusInternalServerError, "storage unavailable")
		default:
			response.Error(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	if err := response.JSON(w, http.StatusOK, payload.NewSessionListResponse(sessions)); err != nil {
		h.logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Int("count", len(sessions)).
			Msg("failed to write session list")
	}
}

// decodeCreateSessionRequest decodes the body into a typed request and validates it.
// Every client-side problem is reported as a *validator.ValidationError.
func (h *sessionHTTPHandler) decodeCreateSessionRequest(body io.Reader) (*payload.CreateSessionRequest, error) {
	var req payload.CreateSessionRequest

	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		return nil, decodeError(err)
	}

	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, err
		}
		return nil, validator.NewFieldError("body", "request body must contain a single JSON object")
	}

	if err := h.validator.Struct(req); err != nil {
		return nil, err
	}

	return &req, nil
}

func decodeError(err error) error {
	var maxBytesErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &maxBytesErr):
		return err
	case errors.Is(err, io.EOF):
		return validator.NewFieldError("body", "request body is required")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return validator.NewFieldError("body", "request body must be a JSON object")
		}
		return validator.NewFieldError(field, fmt.Sprintf("%s must be of type %s", field, jsonTypeName(typeErr.Type.Kind().String())))
	case errors.Is(err, payload.ErrInvalidTimestamp):
		return validator.NewFieldError("createdAt", "createdAt must be an ISO 8601 datetime or epoch seconds between years 0 and 9999")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return validator.NewFieldError("body", "request body is not valid JSON")
	default:
		return validator.NewFieldError("body", "request body is invalid")
	}
}

func jsonTypeName(kind string) string {
	switch kind {
	case "int64":
		return "integer"
	case "float64":
		return "number"
	case "bool":
		return "boolean"
	case "struct", "map":
		return "object"
	default:
		return kind
	}
}

// parseLimit returns 0 for an absent limit so the usecase applies its default.
func parseLimit(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 1 {
		return 0, usecase.ErrInvalidLimit
	}

	return limit, nil
}
