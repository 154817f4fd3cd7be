package ui

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	goversion "github.com/hashicorp/go-version"
	"github.com/stretchr/testify/require"

	"github.com/ansible-community/ahctl/pkg/api"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	apiClient, err := api.NewClient(api.Config{Host: server.URL, Token: "t"})
	require.NoError(t, err)
	return NewClient(apiClient)
}

func mustVersion(t *testing.T, s string) *goversion.Version {
	t.Helper()
	vers, err := goversion.NewVersion(s)
	require.NoError(t, err)
	return vers
}

func TestGetTagWithStringTags(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/galaxy/_ui/v1/execution-environments/repositories/ee-minimal-rhel8/_content/images/", r.URL.Path)
		fmt.Fprint(w, `{
			"meta": {"count": 2},
			"links": {"next": null},
			"data": [
				{"digest": "sha256:aaa", "tags": ["v1", "v2"]},
				{"digest": "sha256:bbb", "tags": ["v3"]}
			]
		}`)
	}))

	image, err := client.GetTag(context.Background(), "ee-minimal-rhel8", "v2", mustVersion(t, "4.6.3"))
	require.NoError(t, err)
	require.NotNil(t, image)
	require.Equal(t, "sha256:aaa", image.Digest)
	require.Equal(t, []string{"v1", "v2"}, image.Tags)
}

func TestGetTagWithTagObjects(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"meta": {"count": 1},
			"links": {"next": null},
			"data": [
				{"digest": "sha256:aaa", "tags": [{"id": "1", "name": "v1"}, {"id": "2", "name": "v2"}]}
			]
		}`)
	}))

	image, err := client.GetTag(context.Background(), "ee-minimal-rhel8", "v1", mustVersion(t, "4.3.2"))
	require.NoError(t, err)
	require.NotNil(t, image)
	require.Equal(t, "sha256:aaa", image.Digest)
	require.Equal(t, []string{"v1", "v2"}, image.Tags)
}

func TestGetTagFollowsPagination(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") == "" {
			fmt.Fprintf(w, `{
				"meta": {"count": 2},
				"links": {"next": "%s?limit=%d&offset=1"},
				"data": [{"digest": "sha256:aaa", "tags": ["v1"]}]
			}`, r.URL.Path, imagePageSize)
			return
		}
		fmt.Fprint(w, `{
			"meta": {"count": 2},
			"links": {"next": null},
			"data": [{"digest": "sha256:bbb", "tags": ["v2"]}]
		}`)
	}))

	image, err := client.GetTag(context.Background(), "ee-minimal-rhel8", "v2", mustVersion(t, "4.6.3"))
	require.NoError(t, err)
	require.NotNil(t, image)
	require.Equal(t, "sha256:bbb", image.Digest)
}

func TestGetTagAbsent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"meta": {"count": 1},
			"links": {"next": null},
			"data": [{"digest": "sha256:aaa", "tags": ["v1"]}]
		}`)
	}))

	image, err := client.GetTag(context.Background(), "ee-minimal-rhel8", "nope", mustVersion(t, "4.6.3"))
	require.NoError(t, err)
	require.Nil(t, image)
}

func TestDecodeTagsFallsBack(t *testing.T) {
	// A 4.3 server that already sends strings still decodes.
	tags, err := decodeTags([]byte(`["v1", "v2"]`), mustVersion(t, "4.3.2"))
	require.NoError(t, err)
	require.Equal(t, []string{"v1", "v2"}, tags)

	// A 4.6 server sending objects still decodes.
	tags, err = decodeTags([]byte(`[{"name": "v1"}]`), mustVersion(t, "4.6.3"))
	require.NoError(t, err)
	require.Equal(t, []string{"v1"}, tags)
}
