package restclient

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"mini-admin/internal/domain"
)

// Transport propagates the request ID to the data server and logs every
// outgoing call.
type Transport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

// NewTransport wraps base; a nil base uses http.DefaultTransport.
func NewTransport(base http.RoundTripper, logger *slog.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base, Logger: logger}
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()
	if id := domain.RequestIDFromContext(ctx); id != "" {
		r = r.Clone(ctx)
		r.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := t.Base.RoundTrip(r)
	if err != nil {
		t.Logger.WarnContext(ctx, "outgoing request failed",
			"request", fmt.Sprintf("%s %s", r.Method, r.URL.Redacted()),
			"duration", time.Since(start),
			"error", err)
		return nil, fmt.Errorf("round trip: %w", err)
	}

	t.Logger.DebugContext(ctx, "outgoing request",
		"request", fmt.Sprintf("%s %s", r.Method, r.URL.Redacted()),
		"status", resp.StatusCode,
		"duration", time.Since(start))
	return resp, nil
}
