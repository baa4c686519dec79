package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pagegate/pagegate/internal/access"
	"github.com/pagegate/pagegate/internal/config"
	"github.com/pagegate/pagegate/internal/core"
	"github.com/pagegate/pagegate/internal/service"
	"github.com/pagegate/pagegate/internal/session"
)

var testSecret = []byte("test-secret")

// fakeUpstream backs the full service wiring with canned upstream answers.
type fakeUpstream struct {
	repoPrivate   bool
	repoErr       error
	docVisibility core.Visibility
	docBody       string
	docErr        error
	member        bool
}

func (f *fakeUpstream) ResolveRepository(_ context.Context, org, repo, ref string, _ core.Principal) (*core.RepositoryDescriptor, error) {
	if f.repoErr != nil {
		return nil, f.repoErr
	}
	return &core.RepositoryDescriptor{Org: org, Name: repo, Ref: ref, IsPrivate: f.repoPrivate}, nil
}

func (f *fakeUpstream) ResolveDocument(_ context.Context, _, _, path, _ string, _ core.Principal) (*core.DocumentMetadata, string, error) {
	if f.docErr != nil {
		return nil, "", f.docErr
	}
	return &core.DocumentMetadata{
		Path:       path,
		Visibility: f.docVisibility,
		RawFields:  map[string]any{"visibility": string(f.docVisibility)},
	}, f.docBody, nil
}

func (f *fakeUpstream) IsMember(_ context.Context, _ core.Principal, _ string) (bool, error) {
	return f.member, nil
}

func (f *fakeUpstream) TeamSlugs(_ context.Context, _ core.Principal, _ string) ([]string, error) {
	return nil, nil
}

func (f *fakeUpstream) ResolveAttribution(_ context.Context, _, _, _ string, _ core.Principal) *core.Attribution {
	return &core.Attribution{AuthorName: "Jo Doe"}
}

func (f *fakeUpstream) Tree(_ context.Context, _, _, _, _ string, _ core.Principal) ([]string, error) {
	return []string{"guides/setup.md", "internal/oncall.md"}, nil
}

func (f *fakeUpstream) Asset(_ context.Context, _, _, _, _ string) ([]byte, string, error) {
	return []byte("\x89PNG\r\n"), "image/png", nil
}

func (f *fakeUpstream) ResolveLogin(_ context.Context, _ string) (string, error) {
	return "alice", nil
}

func newTestServer(f *fakeUpstream) http.Handler {
	svc := service.NewDocumentService(f, f, access.NewEngine(f), f, f, f, time.Second)
	verifier := session.NewVerifier(testSecret, f)
	site := config.SiteConfig{Owner: "acme", Repo: "handbook", Ref: "main"}
	return NewServer(svc, verifier, site).Routes()
}

func sessionToken(t *testing.T) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"login": "alice",
		"token": "gho_alice",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestHandleDocument(t *testing.T) {
	tests := []struct {
		name       string
		upstream   fakeUpstream
		authorize  bool
		wantStatus int
		wantReason string
	}{
		{
			name:       "Public Document Anonymous",
			upstream:   fakeUpstream{docVisibility: core.VisibilityPublic, docBody: "# hi"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Org Document Anonymous",
			upstream:   fakeUpstream{docVisibility: core.VisibilityOrg, docBody: "# hi"},
			wantStatus: http.StatusUnauthorized,
			wantReason: string(core.ReasonNotAuthenticated),
		},
		{
			name:       "Org Document Non-Member",
			upstream:   fakeUpstream{docVisibility: core.VisibilityOrg, docBody: "# hi"},
			authorize:  true,
			wantStatus: http.StatusForbidden,
			wantReason: string(core.ReasonNotOrgMember),
		},
		{
			name:       "Org Document Member",
			upstream:   fakeUpstream{docVisibility: core.VisibilityOrg, docBody: "# hi", member: true},
			authorize:  true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Repo Not Accessible",
			upstream:   fakeUpstream{repoErr: fmt.Errorf("wrap: %w", core.ErrRepoNotAccessible)},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Upstream Outage",
			upstream:   fakeUpstream{repoErr: fmt.Errorf("wrap: %w", core.ErrUpstream)},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestServer(&tt.upstream)

			r := httptest.NewRequest("GET", DocumentRoute+"?path=guides/setup.md", nil)
			if tt.authorize {
				r.Header.Set("Authorization", "Bearer "+sessionToken(t))
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantStatus == http.StatusOK {
				var resp DocumentResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decoding response: %v", err)
				}
				if resp.Content != "# hi" {
					t.Errorf("content = %q, want document body", resp.Content)
				}
				if resp.Author == nil || resp.Author.AuthorName != "Jo Doe" {
					t.Errorf("author = %+v, want Jo Doe", resp.Author)
				}
				return
			}

			if tt.wantReason != "" {
				var resp struct {
					Reason string `json:"reason"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decoding denial: %v", err)
				}
				if resp.Reason != tt.wantReason {
					t.Errorf("reason = %q, want %q", resp.Reason, tt.wantReason)
				}
			}
		})
	}
}

func TestHandleDocument_BadCredentialRejected(t *testing.T) {
	handler := newTestServer(&fakeUpstream{docVisibility: core.VisibilityPublic})

	r := httptest.NewRequest("GET", DocumentRoute+"?path=guides/setup.md", nil)
	r.Header.Set("Authorization", "Bearer not.a.session")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for a bad credential", w.Code)
	}
}

func TestHandleTree(t *testing.T) {
	handler := newTestServer(&fakeUpstream{})

	r := httptest.NewRequest("GET", TreeRoute, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp TreeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Paths) != 2 {
		t.Errorf("paths = %v, want 2 entries", resp.Paths)
	}
}

func TestHandleAsset(t *testing.T) {
	handler := newTestServer(&fakeUpstream{})

	r := httptest.NewRequest("GET", AssetRoute+"?path=assets/banner.png", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc == "" {
		t.Error("expected a cache-control header on assets")
	}
}

func TestHandleHealth(t *testing.T) {
	handler := newTestServer(&fakeUpstream{})

	r := httptest.NewRequest("GET", HealthCheckRoute, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
