// Package api implements the client for the automation hub galaxy and Pulp
// HTTP APIs: authentication, server version discovery, and the JSON request
// helpers the higher-level objects are built on.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

type Config struct {
	// Host is the automation hub address, with or without a scheme.
	// A bare host defaults to https.
	Host     string
	Username string
	Password string
	// Token is a pre-provisioned galaxy API token. When set, Authenticate
	// does not need to exchange the username and password for one.
	Token string
	// Insecure disables TLS certificate verification.
	Insecure bool
}

type Client struct {
	baseURL  *url.URL
	http     *http.Client
	username string
	token    string

	serverVersion *goversion.Version
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("No automation hub host given. Pass --hub, set AH_HOST, or run 'ahctl login'")
	}
	host := cfg.Host
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	baseURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("Invalid automation hub address %q: %w", cfg.Host, err)
	}

	client := &Client{
		baseURL:  baseURL,
		username: cfg.Username,
		token:    cfg.Token,
	}

	var base http.RoundTripper
	if cfg.Insecure {
		base = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
		}
	}
	client.http = &http.Client{
		Transport: &Transport{
			headers: map[string]string{
				UserAgentHeader: UserAgent(),
				"Accept":        "application/json",
			},
			token:    func() string { return client.token },
			username: cfg.Username,
			password: cfg.Password,
			base:     base,
		},
	}

	return client, nil
}

// Authenticate makes sure the client holds a usable API token. With a
// pre-provisioned token this is a no-op; otherwise the username and password
// are exchanged for one at the galaxy token endpoint.
func (c *Client) Authenticate(ctx context.Context) error {
	if c.token != "" {
		return nil
	}
	if c.username == "" {
		return fmt.Errorf("No credentials given. Pass --token or --username/--password, or run 'ahctl login'")
	}

	body := &struct {
		Token string `json:"token"`
	}{}
	if err := c.PostJSON(ctx, "/api/galaxy/v3/auth/token/", nil, body); err != nil {
		return fmt.Errorf("Failed to authenticate to %s: %w", c.baseURL.Host, err)
	}
	if body.Token == "" {
		return fmt.Errorf("Authentication to %s returned an empty token", c.baseURL.Host)
	}
	c.token = body.Token
	return nil
}

// Token returns the API token the client authenticated with, if any.
func (c *Client) Token() string {
	return c.token
}

// Host returns the hub host the client talks to.
func (c *Client) Host() string {
	return c.baseURL.Host
}

// GetJSON performs a GET request against a hub API path and decodes the JSON
// response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// PostJSON performs a POST request with a JSON body (nil for an empty body)
// and decodes the JSON response into out (nil to discard it).
func (c *Client) PostJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doJSON(ctx context.Context, method string, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("Authentication to %s failed (status %d). Check your credentials", c.baseURL.Host, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("Server returned status %d for %s %s: %s", resp.StatusCode, method, path, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("Failed to decode response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) url(path string) string {
	return strings.TrimSuffix(c.baseURL.String(), "/") + path
}
