package source

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/rs/zerolog/log"

	"github.com/pagegate/pagegate/internal/core"
)

// ResolveAttribution looks up the last commit touching path and returns its
// author name and date. Attribution is cosmetic: every failure mode (network,
// empty history, malformed payload) yields nil, never an error, and must not
// turn an allowed request into a failed one.
func (h *Hub) ResolveAttribution(
	ctx context.Context,
	org, repo, path string,
	principal core.Principal,
) *core.Attribution {
	logger := log.Ctx(ctx)

	client, err := h.clientFor(principal)
	if err != nil {
		logger.Debug().Err(err).Msg("attribution client unavailable")
		return nil
	}

	commits, _, err := client.Repositories.ListCommits(ctx, org, repo, &github.CommitsListOptions{
		Path:        path,
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		logger.Debug().Str("path", path).Err(err).Msg("attribution lookup failed")
		return nil
	}
	if len(commits) == 0 {
		return nil
	}

	author := commits[0].GetCommit().GetAuthor()
	if author == nil || author.GetName() == "" {
		return nil
	}
	return &core.Attribution{
		AuthorName: author.GetName(),
		AuthorDate: author.GetDate().Time,
	}
}
