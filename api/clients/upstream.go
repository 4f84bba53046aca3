package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/ruteri/kyc-onboarding-backend/interfaces"
	"github.com/ruteri/kyc-onboarding-backend/metrics"
)

// DefaultTimeout bounds every upstream request.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is kept on the error.
const maxErrorBody = 4096

// NewHTTPClient returns a pooled client shared by all upstream clients.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout
	return client
}

// upstream holds what every identity provider client needs to make a call.
type upstream struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

func newUpstream(baseURL string, httpClient *http.Client, log *slog.Logger) upstream {
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout)
	}
	if log == nil {
		log = slog.Default()
	}
	return upstream{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

// call describes one JSON request to an upstream.
type call struct {
	kind    error
	op      string
	path    string
	headers map[string]string
	body    any
}

// do sends the request and decodes a 2xx JSON response into out. Any failure
// is returned as an *interfaces.UpstreamError of the call's kind.
func (u upstream) do(ctx context.Context, c call, out any) error {
	start := time.Now()
	defer metrics.ObserveUpstream(c.op, start)

	fail := func(status int, body string, err error) error {
		return &interfaces.UpstreamError{Kind: c.kind, Op: c.op, StatusCode: status, Body: body, Err: err}
	}

	var reqBody io.Reader
	if c.body != nil {
		data, err := json.Marshal(c.body)
		if err != nil {
			return fail(0, "", fmt.Errorf("failed to marshal request body: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+c.path, reqBody)
	if err != nil {
		return fail(0, "", fmt.Errorf("could not initialize request: %w", err))
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		u.log.Warn("Upstream request failed",
			slog.String("op", c.op),
			slog.String("request_id", requestID),
			"err", err)
		return fail(0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		u.log.Warn("Upstream returned error status",
			slog.String("op", c.op),
			slog.String("request_id", requestID),
			slog.Int("status", resp.StatusCode))
		return fail(resp.StatusCode, strings.TrimSpace(string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("could not parse response: %w", err))
	}

	u.log.Debug("Upstream request completed",
		slog.String("op", c.op),
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// missing reports a 2xx response that lacks a required field.
func missing(kind error, op string, status int, field string) error {
	return &interfaces.UpstreamError{
		Kind:       kind,
		Op:         op,
		StatusCode: status,
		Err:        fmt.Errorf("response is missing %s", field),
	}
}

func bearer(token string) string {
	return "Bearer " + token
}
