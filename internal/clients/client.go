// Package clients holds typed HTTP accessors for the Flight, Ticket and
// Bonus services. Every call is a single request with no retries.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
)

const (
	UserHeader = "X-User-Name"

	healthPath = "/manage/health"
	// error bodies are read for diagnostics only
	maxErrorBody = 4 << 10
)

var errNotFound = errors.New("not found")

type baseClient struct {
	service string
	baseURL string
	client  *http.Client
}

func newBaseClient(service, baseURL string, timeout time.Duration) baseClient {
	return baseClient{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL is reported by the health endpoint.
func (b baseClient) BaseURL() string {
	return b.baseURL
}

type call struct {
	op        string
	method    string
	path      string
	query     url.Values
	principal *domain.Principal
	body      any
	out       any
}

// do performs the call and decodes a 2xx body into c.out. A 404 yields
// errNotFound; every other failure is a *domain.ServiceError.
func (b baseClient) do(ctx context.Context, c call) error {
	u := b.baseURL + c.path
	if len(c.query) > 0 {
		u += "?" + c.query.Encode()
	}

	var body io.Reader
	if c.body != nil {
		payload, err := json.Marshal(c.body)
		if err != nil {
			return b.fail(c.op, 0, fmt.Errorf("marshal request: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, u, body)
	if err != nil {
		return b.fail(c.op, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.principal != nil {
		req.Header.Set(UserHeader, c.principal.Username)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return b.fail(c.op, 0, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return errNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return b.fail(c.op, resp.StatusCode, fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(msg))))
	}

	if c.out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(c.out); err != nil {
		return b.fail(c.op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (b baseClient) fail(op string, status int, err error) error {
	return &domain.ServiceError{Service: b.service, Op: op, StatusCode: status, Err: err}
}

// notFoundAs replaces errNotFound with the resource specific sentinel.
func notFoundAs(err, target error) error {
	if errors.Is(err, errNotFound) {
		return target
	}
	return err
}

// Health reports whether the service answers its health endpoint with 2xx.
func (b baseClient) Health(ctx context.Context) error {
	err := b.do(ctx, call{op: "health", method: http.MethodGet, path: healthPath})
	if errors.Is(err, errNotFound) {
		return b.fail("health", http.StatusNotFound, err)
	}
	return err
}
