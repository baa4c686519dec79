package session

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type fakeLoginResolver struct {
	login string
	err   error
}

func (f *fakeLoginResolver) ResolveLogin(_ context.Context, _ string) (string, error) {
	return f.login, f.err
}

var secret = []byte("test-secret")

func signSession(t *testing.T, claims jwt.MapClaims, key []byte, method jwt.SigningMethod) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func TestVerifier_PrincipalFromRequest(t *testing.T) {
	valid := signSession(t, jwt.MapClaims{
		"login": "alice",
		"token": "gho_alice",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}, secret, jwt.SigningMethodHS256)

	tests := []struct {
		name        string
		authHeader  string
		tokenHeader string
		resolver    fakeLoginResolver
		wantErr     bool
		wantAuth    bool
		wantLogin   string
	}{
		{
			name:       "Valid Session Token",
			authHeader: "Bearer " + valid,
			wantAuth:   true,
			wantLogin:  "alice",
		},
		{
			name: "No Credential Is Anonymous",
		},
		{
			name:       "Wrong Secret",
			authHeader: "Bearer " + signSession(t, jwt.MapClaims{"login": "alice", "token": "x"}, []byte("other"), jwt.SigningMethodHS256),
			wantErr:    true,
		},
		{
			name: "Expired Session",
			authHeader: "Bearer " + signSession(t, jwt.MapClaims{
				"login": "alice",
				"token": "gho_alice",
				"exp":   time.Now().Add(-time.Hour).Unix(),
			}, secret, jwt.SigningMethodHS256),
			wantErr: true,
		},
		{
			name:       "Missing Login Claim",
			authHeader: "Bearer " + signSession(t, jwt.MapClaims{"token": "gho_alice"}, secret, jwt.SigningMethodHS256),
			wantErr:    true,
		},
		{
			name:       "Missing Token Claim",
			authHeader: "Bearer " + signSession(t, jwt.MapClaims{"login": "alice"}, secret, jwt.SigningMethodHS256),
			wantErr:    true,
		},
		{
			name:       "Garbage Bearer Token",
			authHeader: "Bearer not.a.jwt",
			wantErr:    true,
		},
		{
			name:        "Raw GitHub Token",
			tokenHeader: "gho_raw",
			resolver:    fakeLoginResolver{login: "bob"},
			wantAuth:    true,
			wantLogin:   "bob",
		},
		{
			name:        "Raw GitHub Token Rejected Upstream",
			tokenHeader: "gho_bad",
			resolver:    fakeLoginResolver{err: errors.New("401")},
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerifier(secret, &tt.resolver)

			r := httptest.NewRequest("GET", "/v1/document", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			if tt.tokenHeader != "" {
				r.Header.Set(GitHubTokenHeader, tt.tokenHeader)
			}

			principal, err := v.PrincipalFromRequest(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PrincipalFromRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if principal.IsAuthenticated() != tt.wantAuth {
				t.Errorf("IsAuthenticated() = %v, want %v", principal.IsAuthenticated(), tt.wantAuth)
			}
			if principal.Login() != tt.wantLogin {
				t.Errorf("Login() = %q, want %q", principal.Login(), tt.wantLogin)
			}
		})
	}
}

func TestVerifier_NoSecretConfigured(t *testing.T) {
	v := NewVerifier(nil, &fakeLoginResolver{})

	r := httptest.NewRequest("GET", "/v1/document", nil)
	r.Header.Set("Authorization", "Bearer "+signSession(t, jwt.MapClaims{"login": "a", "token": "b"}, secret, jwt.SigningMethodHS256))

	if _, err := v.PrincipalFromRequest(r); !errors.Is(err, ErrNoSessionSecret) {
		t.Errorf("PrincipalFromRequest() error = %v, want ErrNoSessionSecret", err)
	}
}
