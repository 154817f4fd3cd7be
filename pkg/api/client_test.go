package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientDecoratesUserAgent(t *testing.T) {
	seenUserAgent := ""
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserAgent = r.Header.Get(UserAgentHeader)
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client, err := NewClient(Config{Host: server.URL, Token: "t0ken"})
	require.NoError(t, err)

	var out struct{}
	require.NoError(t, client.GetJSON(context.Background(), "/api/galaxy/", &out))
	require.Equal(t, UserAgent(), seenUserAgent)
}

func TestAuthenticateExchangesCredentialsForToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/galaxy/v3/auth/token/", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "admin", username)
		require.Equal(t, "secret", password)

		fmt.Fprint(w, `{"token": "abc123"}`)
	}))
	defer server.Close()

	client, err := NewClient(Config{Host: server.URL, Username: "admin", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, client.Authenticate(context.Background()))
	require.Equal(t, "abc123", client.Token())
}

func TestAuthenticateWithTokenIsANoOp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer server.Close()

	client, err := NewClient(Config{Host: server.URL, Token: "abc123"})
	require.NoError(t, err)
	require.NoError(t, client.Authenticate(context.Background()))
}

func TestAuthenticateWithoutCredentialsFails(t *testing.T) {
	client, err := NewClient(Config{Host: "hub.example.com"})
	require.NoError(t, err)
	require.ErrorContains(t, client.Authenticate(context.Background()), "No credentials given")
}

func TestTokenHeaderIsSentOnceAuthenticated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Token abc123", r.Header.Get(AuthorizationHeader))
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client, err := NewClient(Config{Host: server.URL, Token: "abc123"})
	require.NoError(t, err)

	var out struct{}
	require.NoError(t, client.GetJSON(context.Background(), "/api/galaxy/", &out))
}

func TestBareHostDefaultsToHTTPS(t *testing.T) {
	client, err := NewClient(Config{Host: "hub.example.com", Token: "t"})
	require.NoError(t, err)
	require.Equal(t, "https://hub.example.com/api/galaxy/", client.url("/api/galaxy/"))
}

func TestMissingHostFails(t *testing.T) {
	_, err := NewClient(Config{})
	require.ErrorContains(t, err, "No automation hub host given")
}

func TestServerVersionIsCached(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, "/api/galaxy/", r.URL.Path)
		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"galaxy_ng_version": "4.6.3"}))
	}))
	defer server.Close()

	client, err := NewClient(Config{Host: server.URL, Token: "t"})
	require.NoError(t, err)

	vers, err := client.ServerVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, "4.6.3", vers.String())

	_, err = client.ServerVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, requests)
}

func TestEnsureMinimumVersion(t *testing.T) {
	for _, tt := range []struct {
		version   string
		supported bool
	}{
		{"4.2.0", false},
		{"4.3.1", false},
		{"4.3.2", true},
		{"4.6.3", true},
		{"5.0.0", true},
	} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"galaxy_ng_version": tt.version}))
		}))

		client, err := NewClient(Config{Host: server.URL, Token: "t"})
		require.NoError(t, err)

		_, err = client.EnsureMinimumVersion(context.Background())
		if tt.supported {
			require.NoError(t, err, tt.version)
		} else {
			require.ErrorContains(t, err, "requires private automation hub version 4.3.2 or later", tt.version)
		}
		server.Close()
	}
}

func TestServerVersionMissingField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client, err := NewClient(Config{Host: server.URL, Token: "t"})
	require.NoError(t, err)

	_, err = client.ServerVersion(context.Background())
	require.ErrorContains(t, err, "did not report a galaxy_ng_version")
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "distribution is busy", http.StatusConflict)
	}))
	defer server.Close()

	client, err := NewClient(Config{Host: server.URL, Token: "t"})
	require.NoError(t, err)

	var out struct{}
	err = client.GetJSON(context.Background(), "/api/galaxy/", &out)
	require.ErrorContains(t, err, "status 409")
	require.ErrorContains(t, err, "distribution is busy")
}

func TestUnauthorizedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(Config{Host: server.URL, Token: "bad"})
	require.NoError(t, err)

	var out struct{}
	err = client.GetJSON(context.Background(), "/api/galaxy/", &out)
	require.ErrorContains(t, err, "Check your credentials")
}
