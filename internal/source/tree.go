package source

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/pagegate/pagegate/internal/core"
)

// Tree lists the Markdown document paths of a repository at ref, optionally
// restricted to a directory prefix. It runs on the caller's credential, so a
// private repo is simply not accessible to anonymous callers.
func (h *Hub) Tree(
	ctx context.Context,
	org, repo, ref, prefix string,
	principal core.Principal,
) ([]string, error) {
	client, err := h.clientFor(principal)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrUpstream, err)
	}

	tree, _, err := client.Git.GetTree(ctx, org, repo, ref, true)
	if err != nil {
		if notAccessible(err) {
			return nil, fmt.Errorf("%w: %s/%s", core.ErrRepoNotAccessible, org, repo)
		}
		return nil, fmt.Errorf("%w: fetching tree of %s/%s: %w", core.ErrUpstream, org, repo, err)
	}

	var paths []string
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		path := entry.GetPath()
		if prefix != "" && !strings.HasPrefix(path, prefix) {
			continue
		}
		if strings.HasSuffix(path, ".md") || strings.HasSuffix(path, ".mdx") {
			paths = append(paths, path)
		}
	}
	slices.Sort(paths)
	return paths, nil
}
