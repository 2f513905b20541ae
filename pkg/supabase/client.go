package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every request when no timeout is configured
const DefaultTimeout = 10 * time.Second

// Client represents a Supabase client
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a new Supabase client. A zero timeout uses DefaultTimeout.
func NewClient(url, serviceKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		URL:        strings.TrimRight(url, "/"),
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Query executes a PostgREST query on a Supabase table
func (c *Client) Query(ctx context.Context, table string, query map[string]interface{}) ([]byte, error) {
	return c.QueryWithToken(ctx, table, query, "")
}

// QueryWithToken executes a query with an optional user JWT token for RLS
func (c *Client) QueryWithToken(ctx context.Context, table string, query map[string]interface{}, userToken string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	for key, value := range query {
		q.Add(key, fmt.Sprintf("%v", value))
	}
	req.URL.RawQuery = q.Encode()

	c.authorize(req, userToken)

	return c.do(req)
}

// Insert inserts one record or a slice of records into a Supabase table
func (c *Client) Insert(ctx context.Context, table string, data interface{}) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	c.authorize(req, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	return c.do(req)
}

// VerifyToken verifies a JWT token with Supabase
func (c *Client) VerifyToken(ctx context.Context, token string) (*User, error) {
	url := fmt.Sprintf("%s/auth/v1/user", c.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("token verification failed (status %d): %s", resp.StatusCode, string(body))
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}

// User represents a Supabase user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Error is returned for any PostgREST response with status >= 400
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("supabase error (status %d): %s", e.StatusCode, e.Body)
}

// authorize uses the user token if provided, otherwise the service key
func (c *Client) authorize(req *http.Request, userToken string) {
	req.Header.Set("apikey", c.ServiceKey)
	if userToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", userToken))
	} else {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.ServiceKey))
	}
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, &Error{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
