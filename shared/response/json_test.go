package response

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_WritesStatusAndBody(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, JSON(w, http.StatusCreated, map[string]int{"n": 1}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, w.Body.String())
}

func TestJSON_EncodeFailureBecomesServerError(t *testing.T) {
	w := httptest.NewRecorder()

	err := JSON(w, http.StatusOK, map[string]float64{"avg": math.NaN()})

	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"something went wrong"}`, w.Body.String())
}

func TestValidationError(t *testing.T) {
	w := httptest.NewRecorder()

	ValidationError(w, map[string]string{"limit": "limit must be a positive integer"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"validation failed","fields":{"limit":"limit must be a positive integer"}}`, w.Body.String())
}
