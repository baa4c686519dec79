package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pagegate/pagegate/internal/access"
	"github.com/pagegate/pagegate/internal/core"
)

// DocumentService orchestrates the resolvers and the access decision engine
// for one document request. All upstream calls run under a per-call deadline
// and inherit the inbound request's cancellation.
type DocumentService struct {
	repos       core.RepositoryResolver
	docs        core.DocumentResolver
	engine      *access.Engine
	attribution core.AttributionResolver
	tree        TreeLister
	assets      AssetFetcher

	timeout time.Duration
}

func NewDocumentService(
	repos core.RepositoryResolver,
	docs core.DocumentResolver,
	engine *access.Engine,
	attribution core.AttributionResolver,
	tree TreeLister,
	assets AssetFetcher,
	timeout time.Duration,
) *DocumentService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DocumentService{
		repos:       repos,
		docs:        docs,
		engine:      engine,
		attribution: attribution,
		tree:        tree,
		assets:      assets,
		timeout:     timeout,
	}
}

// GetDocument resolves, gates and returns one document.
//
// Evaluation order is fixed: repository descriptor, then document metadata,
// then the access decision, and only after an allow the attribution lookup
// and the body release. A denied request performs no further fetches.
func (s *DocumentService) GetDocument(ctx context.Context, req DocumentRequest) (*DocumentResult, error) {
	if req.Org == "" || req.Repo == "" || req.Path == "" {
		return nil, httpError(http.StatusBadRequest, fmt.Errorf("org, repo and path are required"))
	}
	if req.Ref == "" {
		req.Ref = "main"
	}

	logger := log.Ctx(ctx)
	logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("doc", req.Org+"/"+req.Repo+"/"+req.Path).Str("ref", req.Ref)
	})

	repo, err := s.resolveRepository(ctx, req)
	if err != nil {
		return nil, err
	}

	doc, body, err := s.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	decisionCtx, cancel := context.WithTimeout(ctx, s.timeout)
	decision := s.engine.Evaluate(decisionCtx, req.Principal, repo, doc)
	cancel()

	if !decision.Allowed {
		logger.Info().
			Str("reason", string(decision.Reason)).
			Str("visibility", string(doc.Visibility)).
			Msg("document access denied")
		return &DocumentResult{Decision: decision}, nil
	}

	attrCtx, cancel := context.WithTimeout(ctx, s.timeout)
	attribution := s.attribution.ResolveAttribution(attrCtx, req.Org, req.Repo, req.Path, req.Principal)
	cancel()

	return &DocumentResult{
		Decision:    decision,
		Body:        body,
		Metadata:    doc,
		Attribution: attribution,
	}, nil
}

func (s *DocumentService) resolveRepository(ctx context.Context, req DocumentRequest) (*core.RepositoryDescriptor, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	repo, err := s.repos.ResolveRepository(callCtx, req.Org, req.Repo, req.Ref, req.Principal)
	if err != nil {
		if errors.Is(err, core.ErrRepoNotAccessible) {
			return nil, httpError(http.StatusNotFound, err)
		}
		return nil, httpError(http.StatusBadGateway, err)
	}
	return repo, nil
}

func (s *DocumentService) resolveDocument(ctx context.Context, req DocumentRequest) (*core.DocumentMetadata, string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc, body, err := s.docs.ResolveDocument(callCtx, req.Org, req.Repo, req.Path, req.Ref, req.Principal)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDocumentNotFound):
			return nil, "", httpError(http.StatusNotFound, err)
		case errors.Is(err, core.ErrNotAFile):
			return nil, "", httpError(http.StatusBadRequest, err)
		default:
			return nil, "", httpError(http.StatusBadGateway, err)
		}
	}
	return doc, body, nil
}

// ListTree lists the Markdown documents of a repository at a ref.
func (s *DocumentService) ListTree(ctx context.Context, req TreeRequest) ([]string, error) {
	if req.Org == "" || req.Repo == "" {
		return nil, httpError(http.StatusBadRequest, fmt.Errorf("org and repo are required"))
	}
	if req.Ref == "" {
		req.Ref = "main"
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	paths, err := s.tree.Tree(callCtx, req.Org, req.Repo, req.Ref, req.Prefix, req.Principal)
	if err != nil {
		if errors.Is(err, core.ErrRepoNotAccessible) {
			return nil, httpError(http.StatusNotFound, err)
		}
		return nil, httpError(http.StatusBadGateway, err)
	}
	return paths, nil
}

// GetAsset streams a repository asset via the server-side credential.
func (s *DocumentService) GetAsset(ctx context.Context, org, repo, path, ref string) ([]byte, string, error) {
	if org == "" || repo == "" || path == "" {
		return nil, "", httpError(http.StatusBadRequest, fmt.Errorf("org, repo and path are required"))
	}
	if ref == "" {
		ref = "main"
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, contentType, err := s.assets.Asset(callCtx, org, repo, path, ref)
	if err != nil {
		if errors.Is(err, core.ErrDocumentNotFound) {
			return nil, "", httpError(http.StatusNotFound, err)
		}
		return nil, "", httpError(http.StatusBadGateway, err)
	}
	return data, contentType, nil
}
