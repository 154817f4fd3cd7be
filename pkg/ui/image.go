// Package ui talks to the automation hub UI API to resolve an
// execution-environment image name and tag into a manifest digest and the
// full set of tags pointing at it.
package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	goversion "github.com/hashicorp/go-version"

	"github.com/ansible-community/ahctl/pkg/api"
)

const imagePageSize = 50

// tagFormatChange is the hub release that switched the images endpoint from
// returning tags as objects to returning them as plain strings.
var tagFormatChange = goversion.Must(goversion.NewVersion("4.4.0"))

// Image is a single execution-environment image manifest.
type Image struct {
	Digest string
	Tags   []string
}

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

type imagePage struct {
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
	Data []struct {
		Digest string          `json:"digest"`
		Tags   json.RawMessage `json:"tags"`
	} `json:"data"`
}

// GetTag returns the image of the repository that carries the given tag, or
// nil when no image does. The server version selects the tag wire format.
func (c *Client) GetTag(ctx context.Context, name string, tag string, serverVersion *goversion.Version) (*Image, error) {
	path := fmt.Sprintf("/api/galaxy/_ui/v1/execution-environments/repositories/%s/_content/images/?limit=%d",
		url.PathEscape(name), imagePageSize)

	for path != "" {
		page := &imagePage{}
		if err := c.api.GetJSON(ctx, path, page); err != nil {
			return nil, err
		}

		for _, img := range page.Data {
			tags, err := decodeTags(img.Tags, serverVersion)
			if err != nil {
				return nil, fmt.Errorf("Failed to decode the tags of image %s in %s: %w", img.Digest, name, err)
			}
			for _, t := range tags {
				if t == tag {
					return &Image{Digest: img.Digest, Tags: tags}, nil
				}
			}
		}

		path = page.Links.Next
	}

	return nil, nil
}

// decodeTags handles both tag wire formats: hubs older than 4.4 send objects
// with a name field, newer hubs send plain strings. If the format the version
// promises does not decode, the other one is tried.
func decodeTags(raw json.RawMessage, serverVersion *goversion.Version) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	expectObjects := serverVersion != nil && serverVersion.LessThan(tagFormatChange)
	if expectObjects {
		if tags, err := decodeTagObjects(raw); err == nil {
			return tags, nil
		}
		return decodeTagStrings(raw)
	}
	if tags, err := decodeTagStrings(raw); err == nil {
		return tags, nil
	}
	return decodeTagObjects(raw)
}

func decodeTagStrings(raw json.RawMessage) ([]string, error) {
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func decodeTagObjects(raw json.RawMessage) ([]string, error) {
	var objects []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(objects))
	for _, o := range objects {
		tags = append(tags, o.Name)
	}
	return tags, nil
}
