package httputil

import (
	"errors"
	"net/http"
	"strings"
)

const WatchTokenParam = "token"

var ErrNoToken = errors.New("no watch token found in query or header")

// GetTokenFromRequest extracts the watch token from the query string, which
// is what browsers can send on a WebSocket upgrade, or from the
// Authorization header.
func GetTokenFromRequest(r *http.Request) (string, error) {
	if token := r.URL.Query().Get(WatchTokenParam); token != "" {
		return token, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Support "Bearer <token>" format
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return token, nil
		}
		return authHeader, nil
	}

	return "", ErrNoToken
}
