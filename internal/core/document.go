package core

import "time"

// Visibility is the declared access policy of a single document.
type Visibility string

const (
	// VisibilityPublic documents are readable by anyone who can reach the repo.
	VisibilityPublic Visibility = "public"

	// VisibilityOrg documents require membership in the hosting organization.
	VisibilityOrg Visibility = "org"

	// VisibilityRestricted documents additionally require membership in one of
	// the document's allowed teams, if any are listed.
	VisibilityRestricted Visibility = "restricted"
)

// ParseVisibility maps a frontmatter string to a Visibility.
//
// Unrecognized values (including the empty string) coerce to public unless
// strict is set, in which case they coerce to restricted. Under the default,
// a typo in a document's frontmatter publishes it; strict mode exists for
// sites that cannot accept that.
func ParseVisibility(s string, strict bool) Visibility {
	switch Visibility(s) {
	case VisibilityPublic, VisibilityOrg, VisibilityRestricted:
		return Visibility(s)
	}
	if s != "" && strict {
		return VisibilityRestricted
	}
	return VisibilityPublic
}

// RequiresMembership reports whether this visibility gates on org membership.
func (v Visibility) RequiresMembership() bool {
	return v == VisibilityOrg || v == VisibilityRestricted
}

// RepositoryDescriptor holds the container-level facts about the repository
// a document lives in. It is fetched fresh per request and discarded.
type RepositoryDescriptor struct {
	Org       string
	Name      string
	Ref       string
	IsPrivate bool
}

// DocumentMetadata is the per-document declared access policy, derived from
// the document's frontmatter at the requested ref.
type DocumentMetadata struct {
	Path string

	// Visibility is always one of the three known values after parsing.
	Visibility Visibility

	// AllowedTeams lists team slugs that may read a restricted document.
	// It is ignored unless Visibility is restricted.
	AllowedTeams []string

	// RawFields holds the full frontmatter map for the presentation layer.
	RawFields map[string]any
}

// Attribution is the last-commit author info for a document. It is cosmetic:
// lookup failures yield a nil Attribution, never an error.
type Attribution struct {
	AuthorName string    `json:"name"`
	AuthorDate time.Time `json:"date"`
}
