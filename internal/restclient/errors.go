package restclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mini-admin/internal/domain"
)

// APIError is a non-2xx response from the data server.
type APIError struct {
	HTTPStatus int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s", e.HTTPStatus, e.Message)
}

// CheckError returns an *APIError for non-2xx responses and nil otherwise.
// The message is taken from a JSON "message" or "error" field when present,
// else the raw body.
func CheckError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			msg = payload.Message
		case payload.Error != "":
			msg = payload.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{HTTPStatus: resp.StatusCode, Message: msg}
}

// toDomainError maps data-server failures onto domain errors so callers
// can branch with errors.As without knowing about HTTP.
func toDomainError(err error, resource string, id int64) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.HTTPStatus {
	case http.StatusNotFound:
		if id > 0 {
			return domain.ErrNotFound("%s %d not found", resource, id)
		}
		return domain.ErrNotFound("%s not found", resource)
	case http.StatusConflict:
		return domain.ErrConflict("%s %d already exists", resource, id)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrValidation("%s: %s", resource, apiErr.Message)
	default:
		return &domain.UpstreamError{StatusCode: apiErr.HTTPStatus, Message: apiErr.Message}
	}
}
