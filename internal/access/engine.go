// Package access implements the content access-control decision engine.
package access

import (
	"context"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/pagegate/pagegate/internal/core"
)

// Engine produces one deterministic access decision per document request.
//
// The decision is a pure function of the repository descriptor, the document
// metadata, the principal and the membership facts; membership facts are
// fetched lazily and only when the declared visibility demands them.
type Engine struct {
	members core.MembershipVerifier
}

func NewEngine(members core.MembershipVerifier) *Engine {
	return &Engine{members: members}
}

// Evaluate runs the rule chain top to bottom; the first terminal wins.
//
//  1. public doc in a public repo     -> allow, nobody is asked anything
//  2. anything else, anonymous        -> deny (unauthorized)
//  3. org/restricted visibility       -> org membership required;
//     restricted with listed teams    -> team intersection required
//  4. otherwise                       -> allow (private repo, public doc)
//
// Membership lookups that fail are converted to fail-closed values at the
// point of call: a failed org check reads "not a member", a failed team
// fetch reads "no teams". Evaluation is total; there is no unknown outcome.
func (e *Engine) Evaluate(
	ctx context.Context,
	principal core.Principal,
	repo *core.RepositoryDescriptor,
	doc *core.DocumentMetadata,
) core.AccessDecision {
	needsAuth := repo.IsPrivate || doc.Visibility != core.VisibilityPublic

	if !needsAuth {
		return core.Allow(core.ReasonPublicDocument)
	}

	if !principal.IsAuthenticated() {
		return core.Deny(core.ReasonNotAuthenticated, core.StatusUnauthorized)
	}

	// Repo privacy alone only gates on "must be authenticated". Membership
	// is checked when the document itself declares it, not because the
	// container is private.
	if !doc.Visibility.RequiresMembership() {
		return core.Allow(core.ReasonAuthenticated)
	}

	member, err := e.members.IsMember(ctx, principal, repo.Org)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).
			Str("org", repo.Org).
			Msg("org membership check failed, treating as non-member")
		member = false
	}
	if !member {
		return core.Deny(core.ReasonNotOrgMember, core.StatusForbiddenOrg)
	}

	if doc.Visibility == core.VisibilityRestricted && len(doc.AllowedTeams) > 0 {
		teams, err := e.members.TeamSlugs(ctx, principal, repo.Org)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).
				Str("org", repo.Org).
				Msg("team lookup failed, treating as no teams")
			teams = nil
		}
		if !intersects(teams, doc.AllowedTeams) {
			return core.Deny(core.ReasonNoAllowedTeam, core.StatusForbiddenTeam)
		}
		return core.Allow(core.ReasonTeamMember)
	}

	return core.Allow(core.ReasonOrgMember)
}

func intersects(have, want []string) bool {
	for _, w := range want {
		if slices.Contains(have, w) {
			return true
		}
	}
	return false
}
