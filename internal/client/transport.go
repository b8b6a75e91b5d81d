package client

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

// bearerTransport adds the stored token to every request and forgets it as
// soon as the server answers 401
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenStore
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.Load()
	if err != nil {
		return nil, err
	}

	if token != "" && req.Header.Get("Authorization") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		if err := t.tokens.Clear(); err != nil {
			log.WithError(err).Warn("failed to clear rejected token")
		}
	}
	return resp, nil
}
