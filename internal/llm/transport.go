package llm

import (
	"net/http"
	"time"

	"github.com/soyeahso/reviewdesk/internal/logging"
	"github.com/soyeahso/reviewdesk/internal/version"
)

// tracingTransport stamps the user agent and logs each provider round trip at trace level.
// Bodies and headers are never logged; the API key travels in a header.
type tracingTransport struct {
	base http.RoundTripper
	log  *logging.Logger
}

func newTracingTransport(base http.RoundTripper, log *logging.Logger) *tracingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &tracingTransport{base: base, log: log}
}

func (t *tracingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", version.UserAgent())
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	ev := t.log.Trace().
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Dur("duration", time.Since(start))
	if err != nil {
		ev.Err(err).Msg("provider request failed")
		return nil, err
	}
	ev.Int("status", resp.StatusCode).Msg("provider request")
	return resp, nil
}
