package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/tidwall/gjson"
)

// ErrUnauthorized is wrapped by every error caused by a 401 from the backend
var ErrUnauthorized = errors.New("backend rejected the session")

// APIError is a non-2xx answer from the registry backend
type APIError struct {
	Method   string
	Path     string
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.Status, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("backend %s %s: status %d", e.Method, e.Path, e.Status)
}

// Unwrap maps well-known statuses to sentinel errors
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return models.ErrNotFound
	default:
		return nil
	}
}

// parseMessages reads the backend error shape {message: string | string[]}
func parseMessages(body []byte) []string {
	if !gjson.ValidBytes(body) {
		return nil
	}

	message := gjson.GetBytes(body, "message")
	switch {
	case message.IsArray():
		var out []string
		for _, m := range message.Array() {
			if s := strings.TrimSpace(m.String()); s != "" {
				out = append(out, s)
			}
		}
		return out
	case message.Type == gjson.String:
		if s := strings.TrimSpace(message.String()); s != "" {
			return []string{s}
		}
	}
	return nil
}

// MessageOr returns the first backend message carried by err, or fallback
// when err carries none
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Messages) > 0 {
		return apiErr.Messages[0]
	}
	return fallback
}

// IsUnauthorized reports whether err came from a 401
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
