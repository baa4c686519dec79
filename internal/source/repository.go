package source

import (
	"context"
	"fmt"

	"github.com/pagegate/pagegate/internal/core"
)

// ResolveRepository fetches the container-level descriptor for org/repo.
// "Not found" and "forbidden" collapse into core.ErrRepoNotAccessible;
// everything else is an upstream failure, not a policy outcome.
func (h *Hub) ResolveRepository(
	ctx context.Context,
	org, repo, ref string,
	principal core.Principal,
) (*core.RepositoryDescriptor, error) {
	client, err := h.clientFor(principal)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrUpstream, err)
	}

	r, _, err := client.Repositories.Get(ctx, org, repo)
	if err != nil {
		if notAccessible(err) {
			return nil, fmt.Errorf("%w: %s/%s", core.ErrRepoNotAccessible, org, repo)
		}
		return nil, fmt.Errorf("%w: fetching repository %s/%s: %w", core.ErrUpstream, org, repo, err)
	}

	return &core.RepositoryDescriptor{
		Org:       org,
		Name:      repo,
		Ref:       ref,
		IsPrivate: r.GetPrivate(),
	}, nil
}
