// Package restapi implements the gateway interfaces over the platform's
// HTTP/JSON API. All response-shape normalization happens here: the engine
// only ever sees the fixed domain types.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"collabclient/internal/domain"
	"collabclient/internal/ratelimit"
)

const defaultPageSize = 50

// TokenSource supplies the bearer token attached to every request.
// The session owns the token; the client only reads it.
type TokenSource interface {
	Token() (string, error)
}

// Client is the shared HTTP client behind the three gateway adapters.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	limiter *ratelimit.KeyedLimiter
	logger  *slog.Logger
}

// NewClient creates a Client for the given API base URL. A nil httpClient
// falls back to a client with a conservative overall timeout; per-call
// deadlines are the engine's job via context.
func NewClient(baseURL string, tokens TokenSource, limiter *ratelimit.KeyedLimiter, logger *slog.Logger, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if limiter == nil {
		limiter = ratelimit.New(10, 20)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		limiter: limiter,
		logger:  logger,
	}
}

// apiError is the error object of the platform's response envelope.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// pageMeta is the pagination metadata of paginated list responses.
type pageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// envelope is the standard {data, error, meta} response wrapper. Some
// endpoints skip it and return raw payloads; decodeList and decodeItem
// tolerate both.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
	Meta  *pageMeta       `json:"meta"`
}

// do executes one HTTP call and returns the raw response body.
// op names the gateway operation for error wrapping; limiterKey selects the
// outbound rate-limit bucket.
func (c *Client) do(ctx context.Context, op, limiterKey, method, path string, query url.Values, body any) ([]byte, error) {
	if err := c.limiter.Wait(ctx, limiterKey); err != nil {
		return nil, &domain.GatewayError{Op: op, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &domain.GatewayError{Op: op, Err: fmt.Errorf("encode request body: %w", err)}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, &domain.GatewayError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if method != http.MethodGet {
		// Mutations carry an idempotency key so a retried call after a
		// dropped response cannot apply twice server-side.
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return nil, &domain.GatewayError{Op: op, Err: err}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.logger != nil {
		c.logger.Debug("gateway request", "op", op, "method", method, "path", path)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.GatewayError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.GatewayError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.GatewayError{Op: op, Status: resp.StatusCode, Err: errors.New(serverMessage(raw, resp.StatusCode))}
	}
	// A 2xx envelope can still carry an error object.
	var env envelope
	if json.Unmarshal(raw, &env) == nil && env.Error != nil {
		return nil, &domain.GatewayError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%s: %s", env.Error.Code, env.Error.Message)}
	}
	return raw, nil
}

// serverMessage extracts a human-readable message from an error body,
// falling back to the HTTP status text.
func serverMessage(raw []byte, status int) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		if env.Error.Code != "" {
			return env.Error.Code + ": " + env.Error.Message
		}
		return env.Error.Message
	}
	// Legacy endpoints return {"message": "..."} without the envelope.
	var legacy struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &legacy); err == nil && legacy.Message != "" {
		return legacy.Message
	}
	return http.StatusText(status)
}

// decodeList normalizes the three list-payload shapes the platform is known
// to produce — a raw JSON array, a {data: [...]} envelope, and a legacy
// {<field>: [...]} wrapper — into the slice of raw items plus pagination
// metadata (nil when the response is not paginated).
func decodeList(raw []byte, legacyField string) ([]json.RawMessage, *pageMeta, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, nil, fmt.Errorf("decode array payload: %w", err)
		}
		return items, nil, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, nil, fmt.Errorf("decode envelope: %w", err)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, fmt.Errorf("decode object payload: %w", err)
	}
	if data, ok := obj["data"]; ok {
		if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
			return nil, env.Meta, nil
		}
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err == nil {
			return items, env.Meta, nil
		}
		// data may itself be a legacy {<field>: [...]} object.
		if items, err := legacyItems(data, legacyField); err == nil {
			return items, env.Meta, nil
		}
		return nil, nil, fmt.Errorf("data field is neither array nor %s wrapper", legacyField)
	}

	items, err := legacyItems(raw, legacyField)
	if err != nil {
		return nil, nil, err
	}
	return items, env.Meta, nil
}

func legacyItems(raw []byte, field string) ([]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decode object payload: %w", err)
	}
	inner, ok := obj[field]
	if !ok {
		return nil, fmt.Errorf("payload has no %q field", field)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(inner, &items); err != nil {
		return nil, fmt.Errorf("decode %q field: %w", field, err)
	}
	return items, nil
}

// decodeItem normalizes a single-item payload: the object itself, a
// {data: {...}} envelope, or a legacy {<field>: {...}} wrapper.
func decodeItem(raw []byte, legacyField string) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		return env.Data, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		if inner, ok := obj[legacyField]; ok {
			return inner, nil
		}
	}
	return raw, nil
}

// listPages fetches every page of a paginated list endpoint and returns the
// flattened raw items in page order. Non-paginated responses (raw arrays or
// envelopes without meta) terminate after the first page.
func (c *Client) listPages(ctx context.Context, op, limiterKey, path string, query url.Values, legacyField string) ([]json.RawMessage, error) {
	var all []json.RawMessage
	for page := 1; ; page++ {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(page))
		q.Set("page_size", strconv.Itoa(defaultPageSize))

		raw, err := c.do(ctx, op, limiterKey, http.MethodGet, path, q, nil)
		if err != nil {
			return nil, err
		}
		items, meta, err := decodeList(raw, legacyField)
		if err != nil {
			return nil, &domain.GatewayError{Op: op, Err: err}
		}
		all = append(all, items...)

		if meta == nil || meta.TotalPages <= page {
			return all, nil
		}
	}
}
