package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Credentials is one resolved set of Twilio secrets. Sources re-resolve
// on every call because the connector can rotate secrets underneath us.
type Credentials struct {
	AccountSID   string
	AuthToken    string
	APIKey       string
	APIKeySecret string
	PhoneNumber  string
}

// Usable reports whether the credentials carry at least one working auth
// mode: an API key pair, or an account SID with auth token.
func (c Credentials) Usable() bool {
	if c.APIKey != "" && c.APIKeySecret != "" {
		return true
	}
	return c.AccountSID != "" && c.AuthToken != ""
}

// CredentialSource resolves provider credentials for a single send
// attempt. Implementations must not cache across calls.
type CredentialSource interface {
	Resolve(ctx context.Context) (Credentials, error)
}

// EnvSource reads credentials from the four TWILIO_* environment
// variables. All four must be set or resolution fails.
type EnvSource struct{}

func (EnvSource) Resolve(ctx context.Context) (Credentials, error) {
	creds := Credentials{
		AccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		APIKey:       os.Getenv("TWILIO_API_KEY"),
		APIKeySecret: os.Getenv("TWILIO_API_SECRET"),
		PhoneNumber:  os.Getenv("TWILIO_PHONE"),
	}

	if creds.AccountSID == "" || creds.APIKey == "" || creds.APIKeySecret == "" || creds.PhoneNumber == "" {
		return Credentials{}, errors.New("Twilio credentials not configured. Please set TWILIO_ACCOUNT_SID, TWILIO_API_KEY, TWILIO_API_SECRET, and TWILIO_PHONE environment variables")
	}

	return creds, nil
}

// ConnectorSource fetches credentials from the Replit connector service
// using the workspace identity token. The interactive identity
// (REPL_IDENTITY) wins over the deployment renewal identity
// (WEB_REPL_RENEWAL).
type ConnectorSource struct {
	// BaseURL overrides the https://$REPLIT_CONNECTORS_HOSTNAME default.
	BaseURL    string
	HTTPClient HTTPClient
}

func NewConnectorSource() *ConnectorSource {
	return &ConnectorSource{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type connectorSettings struct {
	AccountSID   string `json:"account_sid"`
	AuthToken    string `json:"auth_token"`
	APIKey       string `json:"api_key"`
	APIKeySecret string `json:"api_key_secret"`
	PhoneNumber  string `json:"phone_number"`
}

type connectorResponse struct {
	Items []struct {
		Settings connectorSettings `json:"settings"`
	} `json:"items"`
}

func (s *ConnectorSource) Resolve(ctx context.Context) (Credentials, error) {
	token := identityToken()
	if token == "" {
		return Credentials{}, errors.New("connector identity token not found for repl/depl")
	}

	baseURL := s.BaseURL
	if baseURL == "" {
		hostname := os.Getenv("REPLIT_CONNECTORS_HOSTNAME")
		if hostname == "" {
			return Credentials{}, errors.New("REPLIT_CONNECTORS_HOSTNAME is not set")
		}
		baseURL = "https://" + hostname
	}

	endpoint := baseURL + "/api/v2/connection?include_secrets=true&connector_names=twilio"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to build connector request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X_REPLIT_TOKEN", token)

	client := s.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to reach connector service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Credentials{}, fmt.Errorf("connector service returned status %d", resp.StatusCode)
	}

	var payload connectorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Credentials{}, fmt.Errorf("failed to decode connector response: %w", err)
	}

	if len(payload.Items) == 0 || payload.Items[0].Settings.AccountSID == "" {
		return Credentials{}, errors.New("Twilio is not connected")
	}

	settings := payload.Items[0].Settings
	return Credentials{
		AccountSID:   settings.AccountSID,
		AuthToken:    settings.AuthToken,
		APIKey:       settings.APIKey,
		APIKeySecret: settings.APIKeySecret,
		PhoneNumber:  settings.PhoneNumber,
	}, nil
}

func identityToken() string {
	if identity := os.Getenv("REPL_IDENTITY"); identity != "" {
		return "repl " + identity
	}
	if renewal := os.Getenv("WEB_REPL_RENEWAL"); renewal != "" {
		return "depl " + renewal
	}
	return ""
}
