package api

import (
	"net/http"
)

const AuthorizationHeader = "Authorization"

// Transport decorates every request with the standard headers and with
// whichever authentication the client currently holds: the galaxy API token
// once one has been obtained, basic auth before that.
type Transport struct {
	headers  map[string]string
	token    func() string
	username string
	password string
	base     http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range t.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}

	if req.Header.Get(AuthorizationHeader) == "" {
		if token := t.token(); token != "" {
			req.Header.Set(AuthorizationHeader, "Token "+token)
		} else if t.username != "" {
			req.SetBasicAuth(t.username, t.password)
		}
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
