package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const adminUsersPath = "/auth/v1/admin/users/{id}"

// APIError is returned when the identity provider rejects a request.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("identity provider returned %d", e.StatusCode)
	}
	return fmt.Sprintf("identity provider returned %d: %s", e.StatusCode, body)
}

// errorResponse is the admin API's JSON error body.
type errorResponse struct {
	ErrorCode string `json:"error_code"`
	Msg       string `json:"msg"`
	Message   string `json:"message"`
}

// userNotFound tells a missing account apart from a missing route, which
// also answers 404.
func (e *errorResponse) userNotFound() bool {
	if e == nil {
		return false
	}
	if e.ErrorCode == "user_not_found" {
		return true
	}
	text := strings.ToLower(e.Msg + " " + e.Message)
	return strings.Contains(text, "user not found")
}

// Client talks to the identity provider's admin API with a service key.
type Client struct {
	http *resty.Client
}

// NewClient creates a Client for baseURL. Requests are never retried: a
// failed revocation needs an operator, not another attempt.
func NewClient(baseURL, serviceKey string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid identity url: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("identity url must be absolute, got: %s", baseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("identity url scheme must be http or https, got: %s", parsed.Scheme)
	}
	if serviceKey == "" {
		return nil, fmt.Errorf("identity service key is required")
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("apikey", serviceKey).
		SetAuthToken(serviceKey).
		SetRetryCount(0)

	return &Client{http: client}, nil
}

// RevokeIdentity deletes the account. An account the provider reports as not
// found counts as revoked; any other 404 is an error.
func (c *Client) RevokeIdentity(ctx context.Context, userID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", userID).
		SetError(&errorResponse{}).
		Delete(adminUsersPath)
	if err != nil {
		return fmt.Errorf("failed to delete identity %s: %w", userID, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		if body, ok := resp.Error().(*errorResponse); ok && body.userNotFound() {
			return nil
		}
		return &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	case resp.IsError():
		return &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	default:
		return nil
	}
}
