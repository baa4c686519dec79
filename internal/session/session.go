// Package session turns inbound request credentials into a core.Principal.
//
// Two credential shapes are accepted: the HS256-signed session token the
// external OAuth layer issues (claims: login, token), and a raw GitHub
// access token for CLI use, whose login is resolved against the directory.
// The OAuth dance itself happens elsewhere; this package only consumes its
// result.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pagegate/pagegate/internal/core"
)

// GitHubTokenHeader carries a raw GitHub access token instead of a session
// token. Intended for the CLI and for service-to-service callers.
const GitHubTokenHeader = "X-GitHub-Token"

var (
	ErrNoSessionSecret = errors.New("session tokens are not configured")
	ErrInvalidSession  = errors.New("invalid session token")
	ErrInvalidToken    = errors.New("invalid github token")
)

// LoginResolver resolves the login behind a raw access token.
type LoginResolver interface {
	ResolveLogin(ctx context.Context, token string) (string, error)
}

type Verifier struct {
	secret []byte
	logins LoginResolver
}

func NewVerifier(secret []byte, logins LoginResolver) *Verifier {
	return &Verifier{secret: secret, logins: logins}
}

// PrincipalFromRequest derives the request's principal. A request without a
// credential is anonymous; a request with a bad credential is an error, not
// an anonymous downgrade, so a caller never silently loses access.
func (v *Verifier) PrincipalFromRequest(r *http.Request) (core.Principal, error) {
	if auth := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer")); auth != "" {
		return v.verifySessionToken(auth)
	}

	if raw := strings.TrimSpace(r.Header.Get(GitHubTokenHeader)); raw != "" {
		login, err := v.logins.ResolveLogin(r.Context(), raw)
		if err != nil {
			return core.Anonymous(), fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
		return core.Authenticated(login, raw), nil
	}

	return core.Anonymous(), nil
}

func (v *Verifier) verifySessionToken(tokenStr string) (core.Principal, error) {
	if len(v.secret) == 0 {
		return core.Anonymous(), ErrNoSessionSecret
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return core.Anonymous(), ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return core.Anonymous(), ErrInvalidSession
	}

	login, _ := claims["login"].(string)
	credential, _ := claims["token"].(string)
	if login == "" || credential == "" {
		return core.Anonymous(), ErrInvalidSession
	}

	return core.Authenticated(login, credential), nil
}
