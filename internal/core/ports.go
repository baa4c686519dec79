package core

import "context"

// RepositoryResolver fetches container-level visibility for an org/repo pair.
// Implementations: GitHub resolver (internal/source).
type RepositoryResolver interface {
	// ResolveRepository returns the descriptor for the repository, or
	// ErrRepoNotAccessible when the repository does not exist or the caller
	// may not see it. The upstream deliberately does not distinguish the two,
	// and neither do we.
	ResolveRepository(ctx context.Context, org, repo, ref string, principal Principal) (*RepositoryDescriptor, error)
}

// DocumentResolver fetches a document's bytes and derives its metadata.
type DocumentResolver interface {
	// ResolveDocument returns the parsed metadata and body for the exact path
	// at the exact ref. It returns ErrDocumentNotFound when the path does not
	// resolve and ErrNotAFile when it resolves to a directory or other
	// non-file entry.
	ResolveDocument(ctx context.Context, org, repo, path, ref string, principal Principal) (*DocumentMetadata, string, error)
}

// MembershipVerifier answers org and team membership questions against the
// directory service. Both calls require an authenticated principal; the
// decision engine never invokes them for anonymous callers.
type MembershipVerifier interface {
	// IsMember reports whether the principal belongs to the organization.
	IsMember(ctx context.Context, principal Principal, org string) (bool, error)

	// TeamSlugs returns the slugs of the principal's teams within the
	// organization. Teams in other organizations are filtered out.
	TeamSlugs(ctx context.Context, principal Principal, org string) ([]string, error)
}

// AttributionResolver looks up last-commit author info for a path.
type AttributionResolver interface {
	// ResolveAttribution returns nil (and no error) whenever attribution is
	// unavailable; it must never fail a request.
	ResolveAttribution(ctx context.Context, org, repo, path string, principal Principal) *Attribution
}
