package spotify

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	oauthScopes     = "user-read-private user-read-email"
)

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// TokenResponse is the provider token endpoint body, relayed to callers as-is.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// TokenError is an error the provider itself reported in the response body
// (invalid_grant, invalid_client, ...), as opposed to a transport failure.
type TokenError struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *TokenError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("spotify: %s", e.Code)
	}
	return fmt.Sprintf("spotify: %s - %s", e.Code, e.Description)
}

type Client struct {
	// AuthURL and TokenURL default to the Spotify Accounts service and are
	// overridable in tests.
	AuthURL  string
	TokenURL string

	config *Config
}

// NewClient reads the provider credentials from the environment. A client with
// incomplete credentials is still usable for IsConfigured checks; the config
// guard keeps requests away from the exchange methods.
func NewClient() *Client {
	clientID := os.Getenv("CLIENT_ID")
	clientSecret := os.Getenv("CLIENT_SECRET")
	redirectURI := os.Getenv("REDIRECT_URI")

	var config *Config
	if clientID != "" && clientSecret != "" && redirectURI != "" {
		config = &Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURI:  redirectURI,
		}
	}

	return NewClientWithConfig(config)
}

func NewClientWithConfig(config *Config) *Client {
	return &Client{
		AuthURL:  spotifyAuthURL,
		TokenURL: spotifyTokenURL,
		config:   config,
	}
}

func (c *Client) IsConfigured() bool {
	return c.config != nil && c.config.ClientID != "" && c.config.ClientSecret != "" && c.config.RedirectURI != ""
}

// GetAuthURL builds the authorization redirect target. The state value is
// round-tripped through the provider and never validated on callback.
func (c *Client) GetAuthURL(state string) (string, error) {
	if !c.IsConfigured() {
		return "", fmt.Errorf("OAuth not configured - missing client ID, secret, or redirect URI")
	}

	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", c.config.ClientID)
	params.Set("scope", oauthScopes)
	params.Set("redirect_uri", c.config.RedirectURI)
	params.Set("state", state)

	return c.AuthURL + "?" + params.Encode(), nil
}

// ExchangeCode trades an authorization code for tokens. A *TokenError is
// returned when the provider reported the failure itself; any other error is a
// transport-level failure. One attempt, no retries.
func (c *Client) ExchangeCode(code string) (*TokenResponse, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("OAuth not configured")
	}

	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", c.config.RedirectURI)

	return c.postToken(data)
}

// RefreshAccessToken trades a refresh token for a new access token. The
// provider may or may not rotate the refresh token; the response is relayed
// either way.
func (c *Client) RefreshAccessToken(refreshToken string) (*TokenResponse, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("OAuth not configured")
	}

	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)

	return c.postToken(data)
}

func (c *Client) postToken(data url.Values) (*TokenResponse, error) {
	req, err := http.NewRequest("POST", c.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.config.ClientID, c.config.ClientSecret)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// The provider signals its own failures with an "error" field in the body.
	var tokenErr TokenError
	if err := json.Unmarshal(body, &tokenErr); err == nil && tokenErr.Code != "" {
		return nil, &tokenErr
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint error: %d - %s", resp.StatusCode, string(body))
	}

	var token TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}

	return &token, nil
}
