package api

import (
	"net/http"

	"github.com/pagegate/pagegate/internal/api/middleware"
	"github.com/pagegate/pagegate/internal/config"
	"github.com/pagegate/pagegate/internal/service"
	"github.com/pagegate/pagegate/internal/session"
)

type Server struct {
	docs     *service.DocumentService
	sessions *session.Verifier
	site     config.SiteConfig
}

func NewServer(docs *service.DocumentService, sessions *session.Verifier, site config.SiteConfig) *Server {
	return &Server{
		docs:     docs,
		sessions: sessions,
		site:     site,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)

	// content routes run behind credential resolution
	contentMux := http.NewServeMux()
	contentMux.HandleFunc("GET "+DocumentRoute, s.handleDocument)
	contentMux.HandleFunc("GET "+TreeRoute, s.handleTree)
	contentMux.HandleFunc("GET "+AssetRoute, s.handleAsset)
	mux.Handle("/v1/", Principal(s.sessions)(contentMux))

	return middleware.Recover(
		middleware.CorrelationID(
			middleware.Logging(
				mux)))
}
