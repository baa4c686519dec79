package client

import (
	"context"
	"net/http"

	"github.com/pagegate/pagegate/internal/api"
)

// TreeOptions selects the listing's repository coordinates.
type TreeOptions struct {
	Org    string
	Repo   string
	Ref    string
	Prefix string
}

// ListTree lists the Markdown document paths of a repository.
func (c *Client) ListTree(ctx context.Context, opts TreeOptions) ([]string, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url().
		setPath(api.TreeRoute).
		addQuery("org", opts.Org).
		addQuery("repo", opts.Repo).
		addQuery("ref", opts.Ref).
		addQuery("prefix", opts.Prefix).
		build(), nil)
	if err != nil {
		return nil, "", err
	}
	var tree api.TreeResponse
	correlation, err := c.do(req, &tree)
	if err != nil {
		return nil, correlation, err
	}
	return tree.Paths, correlation, nil
}
