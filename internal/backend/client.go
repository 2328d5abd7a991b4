package backend

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

	"github.com/google/uuid"
)

// Service defines the backing service operations. It is implemented by
// *Client and can be used for testing.
type Service interface {
	ListItems(ctx context.Context) ([]ItemRecord, error)
	CreateItem(ctx context.Context, payload ItemPayload) (ItemRecord, error)
	UpdateItem(ctx context.Context, id string, payload ItemPayload) (ItemRecord, error)
	DeleteItem(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]CategoryRecord, error)
	CreateCategory(ctx context.Context, name string) (CategoryRecord, error)
	RenameCategory(ctx context.Context, id, name string) (CategoryRecord, error)
	DeleteCategory(ctx context.Context, id string) error
	Login(ctx context.Context, creds Credentials) (LoginResponse, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// TokenSource supplies the bearer token for authenticated requests.
type TokenSource interface {
	Token() string
}

// APIError is returned for non-2xx responses.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.StatusCode)
}

// Client talks to the catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	tokens    TokenSource
}

const (
	defaultBaseURL        = "http://127.0.0.1:3000"
	defaultUserAgent      = "showcase/0.1"
	defaultRequestTimeout = 10 * time.Second
	maxErrorBody          = 64 * 1024
)

// NewClient builds a Client for the given base URL. A zero timeout uses the
// default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// SetTokenSource attaches the source of bearer tokens. Nil disables
// authentication headers.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// BaseURL returns the normalized service address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListItems retrieves every item.
func (c *Client) ListItems(ctx context.Context) ([]ItemRecord, error) {
	var payload []ItemRecord
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateItem posts a new item.
func (c *Client) CreateItem(ctx context.Context, payload ItemPayload) (ItemRecord, error) {
	var rec ItemRecord
	if err := c.do(ctx, http.MethodPost, "/api/items", payload, &rec); err != nil {
		return ItemRecord{}, err
	}
	return rec, nil
}

// UpdateItem replaces an item's mutable fields.
func (c *Client) UpdateItem(ctx context.Context, id string, payload ItemPayload) (ItemRecord, error) {
	if strings.TrimSpace(id) == "" {
		return ItemRecord{}, fmt.Errorf("item id required")
	}
	var rec ItemRecord
	if err := c.do(ctx, http.MethodPut, "/api/items/"+url.PathEscape(id), payload, &rec); err != nil {
		return ItemRecord{}, err
	}
	return rec, nil
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("item id required")
	}
	return c.do(ctx, http.MethodDelete, "/api/items/"+url.PathEscape(id), nil, nil)
}

// ListCategories retrieves every category.
func (c *Client) ListCategories(ctx context.Context) ([]CategoryRecord, error) {
	var payload []CategoryRecord
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateCategory posts a new category.
func (c *Client) CreateCategory(ctx context.Context, name string) (CategoryRecord, error) {
	var rec CategoryRecord
	if err := c.do(ctx, http.MethodPost, "/api/categories", CategoryPayload{Name: name}, &rec); err != nil {
		return CategoryRecord{}, err
	}
	return rec, nil
}

// RenameCategory renames the category with the given id.
func (c *Client) RenameCategory(ctx context.Context, id, name string) (CategoryRecord, error) {
	if strings.TrimSpace(id) == "" {
		return CategoryRecord{}, fmt.Errorf("category id required")
	}
	var rec CategoryRecord
	if err := c.do(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), CategoryPayload{Name: name}, &rec); err != nil {
		return CategoryRecord{}, err
	}
	return rec, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("category id required")
	}
	return c.do(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, nil)
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", creds, &resp); err != nil {
		return LoginResponse{}, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	// path arrives escaped; parsing keeps an escaped "/" inside an id intact.
	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("build request path: %w", err)
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		if msg := strings.TrimSpace(body.Message); msg != "" {
			return msg
		}
		return strings.TrimSpace(body.Error)
	}
	return ""
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
