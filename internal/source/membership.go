package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-github/v80/github"

	"github.com/pagegate/pagegate/internal/core"
)

// errAnonymousPrincipal marks a contract violation: membership questions are
// only defined for authenticated principals, and the decision engine
// short-circuits anonymous callers before reaching this component.
var errAnonymousPrincipal = errors.New("membership lookup for anonymous principal")

// IsMember asks the directory service whether the principal belongs to org.
// Errors propagate; the decision engine converts them to "not a member".
func (h *Hub) IsMember(ctx context.Context, principal core.Principal, org string) (bool, error) {
	if !principal.IsAuthenticated() {
		return false, errAnonymousPrincipal
	}
	client, err := h.clientFor(principal)
	if err != nil {
		return false, err
	}

	// go-github maps the 404 "not a member" answer to (false, nil); only
	// transport-level failures surface as errors here.
	member, _, err := client.Organizations.IsMember(ctx, org, principal.Login())
	if err != nil {
		return false, fmt.Errorf("checking org membership: %w", err)
	}
	return member, nil
}

// TeamSlugs returns the slugs of the principal's teams within org.
func (h *Hub) TeamSlugs(ctx context.Context, principal core.Principal, org string) ([]string, error) {
	if !principal.IsAuthenticated() {
		return nil, errAnonymousPrincipal
	}
	client, err := h.clientFor(principal)
	if err != nil {
		return nil, err
	}

	var all []*github.Team
	opts := &github.ListOptions{PerPage: 100}
	for {
		teams, resp, err := client.Teams.ListUserTeams(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("listing user teams: %w", err)
		}
		all = append(all, teams...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return teamSlugsForOrg(all, org), nil
}

// teamSlugsForOrg filters teams to those whose parent organization matches.
func teamSlugsForOrg(teams []*github.Team, org string) []string {
	var slugs []string
	for _, t := range teams {
		if t.GetOrganization().GetLogin() != org {
			continue
		}
		if slug := t.GetSlug(); slug != "" {
			slugs = append(slugs, slug)
		}
	}
	return slugs
}
