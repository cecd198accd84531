package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorBody is the JSON body returned for every failed request.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

const encodeFailureBody = `{"error":"something went wrong"}` + "\n"

// JSON writes v with the given status code. v is encoded before any header is
// sent, so an encode failure turns into a 500 and is returned to the caller.
func JSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(encodeFailureBody))
		return fmt.Errorf("failed to encode response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// Error writes an ErrorBody with the given status code.
func Error(w http.ResponseWriter, status int, msg string) {
	_ = JSON(w, status, ErrorBody{Error: msg})
}

// ValidationError writes a 422 with per-field messages.
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	_ = JSON(w, http.StatusUnprocessableEntity, ErrorBody{Error: "validation failed", Fields: fields})
}
