// Package pulp talks to the Pulp container API underneath the automation hub:
// distribution lookup and the tag, untag and remove_image operations on
// execution-environment repositories.
package pulp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ansible-community/ahctl/pkg/api"
)

const distributionsPath = "/pulp/api/v3/distributions/container/container/"

// Repository is a container distribution as known to Pulp. RepositoryHref
// points at the underlying container-push repository that tag operations are
// performed against.
type Repository struct {
	Name           string `json:"name"`
	BasePath       string `json:"base_path"`
	Href           string `json:"pulp_href"`
	RepositoryHref string `json:"repository"`
}

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// FindRepository looks up the container distribution with the given name.
// A nil Repository with a nil error means the repository does not exist.
func (c *Client) FindRepository(ctx context.Context, name string) (*Repository, error) {
	result := &struct {
		Count   int          `json:"count"`
		Results []Repository `json:"results"`
	}{}
	path := distributionsPath + "?name=" + url.QueryEscape(name)
	if err := c.api.GetJSON(ctx, path, result); err != nil {
		return nil, err
	}
	if result.Count == 0 || len(result.Results) == 0 {
		return nil, nil
	}
	if result.Count > 1 {
		return nil, fmt.Errorf("Expected at most one container distribution named %s, the server returned %d", name, result.Count)
	}
	repo := result.Results[0]
	if repo.RepositoryHref == "" {
		return nil, fmt.Errorf("The %s distribution has no associated container repository", name)
	}
	return &repo, nil
}

// DeleteImage removes the image manifest with the given digest, and with it
// every tag pointing at it.
func (c *Client) DeleteImage(ctx context.Context, repo *Repository, digest string) error {
	body := map[string]string{"digest": digest}
	if err := c.runTask(ctx, repo.RepositoryHref+"remove_image/", body); err != nil {
		return fmt.Errorf("Failed to delete the image %s from %s: %w", digest, repo.Name, err)
	}
	return nil
}

// CreateTag points tag at the image manifest with the given digest.
func (c *Client) CreateTag(ctx context.Context, repo *Repository, digest string, tag string) error {
	body := map[string]string{"digest": digest, "tag": tag}
	if err := c.runTask(ctx, repo.RepositoryHref+"tag/", body); err != nil {
		return fmt.Errorf("Failed to add the tag %s to %s: %w", tag, repo.Name, err)
	}
	return nil
}

// DeleteTag removes tag from the repository.
func (c *Client) DeleteTag(ctx context.Context, repo *Repository, tag string) error {
	body := map[string]string{"tag": tag}
	if err := c.runTask(ctx, repo.RepositoryHref+"untag/", body); err != nil {
		return fmt.Errorf("Failed to remove the tag %s from %s: %w", tag, repo.Name, err)
	}
	return nil
}

// runTask posts a repository operation and waits for the spawned Pulp task
// to reach a terminal state.
func (c *Client) runTask(ctx context.Context, path string, body interface{}) error {
	spawned := &struct {
		Task string `json:"task"`
	}{}
	if err := c.api.PostJSON(ctx, path, body, spawned); err != nil {
		return err
	}
	if spawned.Task == "" {
		// Some operations complete synchronously and spawn no task.
		return nil
	}
	return c.waitForTask(ctx, spawned.Task)
}
