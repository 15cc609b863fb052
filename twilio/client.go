package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.twilio.com/2010-04-01"

// codeAuthFailure is Twilio's error code for rejected credentials.
const codeAuthFailure = 20003

// HTTPClient abstracts the http.Client Do method for easier testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Sender submits one outbound SMS to the provider and returns the
// provider-assigned message SID.
type Sender interface {
	Send(ctx context.Context, creds Credentials, to, body string) (string, error)
}

// APIError is a structured rejection from the Twilio REST API.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("twilio: error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("twilio: http %d: %s", e.StatusCode, e.Message)
}

// Unauthorized reports whether the provider rejected the credentials.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.Code == codeAuthFailure
}

// Option customises the behaviour of the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used to talk to Twilio.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL sets the base Twilio API URL. Useful for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// Client sends messages through the Twilio Messages endpoint. Auth mode
// is chosen per call from the resolved credentials: API key pair first,
// account SID + auth token as fallback.
type Client struct {
	httpClient HTTPClient
	baseURL    string
}

func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client
}

func (c *Client) Send(ctx context.Context, creds Credentials, to, body string) (string, error) {
	username := creds.APIKey
	password := creds.APIKeySecret
	if username == "" || password == "" {
		username = creds.AccountSID
		password = creds.AuthToken
	}
	if username == "" || password == "" {
		return "", errors.New("no usable Twilio credentials")
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, url.PathEscape(creds.AccountSID))

	params := url.Values{}
	params.Set("To", to)
	params.Set("From", creds.PhoneNumber)
	params.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build Twilio request: %w", err)
	}
	req.SetBasicAuth(username, password)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call Twilio API: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	if err != nil {
		return "", fmt.Errorf("failed to read Twilio response: %w", err)
	}

	var parsed struct {
		Sid     string `json:"sid"`
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	// tolerate non-JSON bodies; classification falls back to the HTTP status
	_ = json.Unmarshal(data, &parsed)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return parsed.Sid, nil
	}

	message := parsed.Message
	if message == "" {
		message = strings.TrimSpace(string(data))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return "", &APIError{
		StatusCode: resp.StatusCode,
		Code:       parsed.Code,
		Message:    message,
	}
}
