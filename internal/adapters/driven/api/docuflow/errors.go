package docuflow

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements error.
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap maps well-known statuses onto domain errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return domain.ErrBackendUnavailable
	default:
		return nil
	}
}

// errorMessage extracts detail, then message, then the status text.
// A structured detail, such as a validation error list, is rendered as JSON.
func errorMessage(status int, body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "message"} {
			switch v := payload[key].(type) {
			case nil:
			case string:
				if v != "" {
					return v
				}
			default:
				if data, err := json.Marshal(v); err == nil {
					return string(data)
				}
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", status)
}
