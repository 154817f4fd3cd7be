package api

import (
	"context"
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// MinimumHubVersion is the oldest private automation hub release that exposes
// the execution-environment APIs.
const MinimumHubVersion = "4.3.2"

// ServerVersion returns the galaxy_ng version of the hub, fetching it on
// first use and caching it for the lifetime of the client.
func (c *Client) ServerVersion(ctx context.Context) (*goversion.Version, error) {
	if c.serverVersion != nil {
		return c.serverVersion, nil
	}

	body := &struct {
		GalaxyNgVersion string `json:"galaxy_ng_version"`
	}{}
	if err := c.GetJSON(ctx, "/api/galaxy/", body); err != nil {
		return nil, fmt.Errorf("Failed to get the server version from %s: %w", c.baseURL.Host, err)
	}
	if body.GalaxyNgVersion == "" {
		return nil, fmt.Errorf("The server at %s did not report a galaxy_ng_version", c.baseURL.Host)
	}

	vers, err := goversion.NewVersion(body.GalaxyNgVersion)
	if err != nil {
		return nil, fmt.Errorf("Cannot parse the server version %q: %w", body.GalaxyNgVersion, err)
	}
	c.serverVersion = vers
	return vers, nil
}

// EnsureMinimumVersion fails when the hub is older than MinimumHubVersion.
// Called before any mutation so unsupported servers are never touched.
func (c *Client) EnsureMinimumVersion(ctx context.Context) (*goversion.Version, error) {
	vers, err := c.ServerVersion(ctx)
	if err != nil {
		return nil, err
	}
	if vers.LessThan(goversion.Must(goversion.NewVersion(MinimumHubVersion))) {
		return nil, fmt.Errorf("This command requires private automation hub version %s or later. Your version is %s", MinimumHubVersion, vers)
	}
	return vers, nil
}
