package service

import (
	"context"

	"github.com/pagegate/pagegate/internal/core"
)

// DocumentRequest identifies one document and the caller asking for it.
// Org/Repo/Ref are always explicit; handler-level defaults come from the
// configured site, never from ambient globals.
type DocumentRequest struct {
	Org  string
	Repo string
	Path string
	Ref  string

	Principal core.Principal
}

// DocumentResult is the outcome of a document request. When the decision
// denies access, Body, Metadata and Attribution stay empty: a denied request
// discloses nothing about the document.
type DocumentResult struct {
	Decision core.AccessDecision

	Body        string
	Metadata    *core.DocumentMetadata
	Attribution *core.Attribution
}

// TreeRequest identifies a repository listing.
type TreeRequest struct {
	Org    string
	Repo   string
	Ref    string
	Prefix string

	Principal core.Principal
}

// TreeLister lists the Markdown documents of a repository.
type TreeLister interface {
	Tree(ctx context.Context, org, repo, ref, prefix string, principal core.Principal) ([]string, error)
}

// AssetFetcher streams raw repository bytes for the asset passthrough.
type AssetFetcher interface {
	Asset(ctx context.Context, org, repo, path, ref string) ([]byte, string, error)
}
