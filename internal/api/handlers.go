package api

import (
	"net/http"

	"github.com/pagegate/pagegate/internal/api/presenter"
	"github.com/pagegate/pagegate/internal/buildinfo"
	"github.com/pagegate/pagegate/internal/core"
	"github.com/pagegate/pagegate/internal/service"
)

// handleHealth responds with a simple OK status to indicate the server is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleAbout responds with service information including version and commit hash.
func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, buildinfo.GetBuildInfo(), http.StatusOK)
}

// DocumentResponse mirrors the shape the web frontend consumes.
type DocumentResponse struct {
	Content     string            `json:"content"`
	Frontmatter map[string]any    `json:"frontmatter"`
	Author      *core.Attribution `json:"author"`
}

type TreeResponse struct {
	Paths []string `json:"paths"`
}

// siteDefault falls back to the configured site when the query leaves a
// coordinate unset. The value stays explicit per request either way.
func siteDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := service.DocumentRequest{
		Org:       siteDefault(q.Get("org"), s.site.Owner),
		Repo:      siteDefault(q.Get("repo"), s.site.Repo),
		Path:      q.Get("path"),
		Ref:       siteDefault(q.Get("ref"), s.site.Ref),
		Principal: PrincipalCtx(r.Context()),
	}

	result, err := s.docs.GetDocument(r.Context(), req)
	if err != nil {
		presenter.Err(w, r, err, "fetching document")
		return
	}

	if !result.Decision.Allowed {
		presenter.Denial(w, r,
			denialMessage(result.Decision.Status),
			string(result.Decision.Reason),
			statusCodeFor(result.Decision.Status))
		return
	}

	presenter.JSON(w, r, DocumentResponse{
		Content:     result.Body,
		Frontmatter: result.Metadata.RawFields,
		Author:      result.Attribution,
	}, http.StatusOK)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	paths, err := s.docs.ListTree(r.Context(), service.TreeRequest{
		Org:       siteDefault(q.Get("org"), s.site.Owner),
		Repo:      siteDefault(q.Get("repo"), s.site.Repo),
		Ref:       siteDefault(q.Get("ref"), s.site.Ref),
		Prefix:    siteDefault(q.Get("prefix"), s.site.DocsPath),
		Principal: PrincipalCtx(r.Context()),
	})
	if err != nil {
		presenter.Err(w, r, err, "listing documents")
		return
	}

	presenter.JSON(w, r, TreeResponse{Paths: paths}, http.StatusOK)
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	data, contentType, err := s.docs.GetAsset(r.Context(),
		siteDefault(q.Get("org"), s.site.Owner),
		siteDefault(q.Get("repo"), s.site.Repo),
		q.Get("path"),
		siteDefault(q.Get("ref"), s.site.Ref))
	if err != nil {
		presenter.Err(w, r, err, "fetching asset")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

// statusCodeFor maps the engine's status hint to a transport status.
func statusCodeFor(hint core.StatusHint) int {
	switch hint {
	case core.StatusUnauthorized:
		return http.StatusUnauthorized
	case core.StatusForbiddenOrg, core.StatusForbiddenTeam:
		return http.StatusForbidden
	default:
		return http.StatusOK
	}
}

func denialMessage(hint core.StatusHint) string {
	switch hint {
	case core.StatusUnauthorized:
		return "authentication required"
	case core.StatusForbiddenOrg:
		return "organization membership required"
	case core.StatusForbiddenTeam:
		return "team membership required"
	default:
		return "access denied"
	}
}
