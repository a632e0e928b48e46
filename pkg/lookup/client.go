package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mdt-records-be/pkg/reactive"
)

var ErrUnauthorized = errors.New("lookup: unauthorized")

// StatusError is a non-2xx answer from the lookup endpoint.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("lookup: status %d: %s", e.Code, e.Message)
}

type envelope struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Kind       string               `json:"kind"`
		Query      string               `json:"query"`
		Candidates []reactive.Candidate `json:"candidates"`
		Cached     bool                 `json:"cached"`
	} `json:"data"`
}

// Client calls GET {base}/api/lookup/{kind} with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Func binds the client to one kind so it can back a search session.
func (c *Client) Func(kind string, limit int) reactive.LookupFunc {
	return func(ctx context.Context, query string) ([]reactive.Candidate, error) {
		return c.Lookup(ctx, kind, query, limit)
	}
}

func (c *Client) Lookup(ctx context.Context, kind, query string, limit int) ([]reactive.Candidate, error) {
	q := url.Values{}
	q.Set("query", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	endpoint := fmt.Sprintf("%s/api/lookup/%s?%s", c.baseURL, url.PathEscape(kind), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		if decodeErr == nil && env.Message != "" {
			msg = env.Message
		}
		return nil, &StatusError{Code: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if !env.Success {
		return nil, &StatusError{Code: env.Code, Message: env.Message}
	}
	if env.Data.Candidates == nil {
		return []reactive.Candidate{}, nil
	}
	return env.Data.Candidates, nil
}
