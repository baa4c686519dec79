package client

import (
	"context"
	"net/http"

	"github.com/pagegate/pagegate/internal/api"
)

// DocumentOptions selects the document's repository coordinates. Empty
// fields fall back to the server's configured site.
type DocumentOptions struct {
	Org  string
	Repo string
	Ref  string
}

// GetDocument fetches one document. Denials surface as an APIError carrying
// the decision's reason code.
func (c *Client) GetDocument(
	ctx context.Context,
	path string,
	opts DocumentOptions,
) (*api.DocumentResponse, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url().
		setPath(api.DocumentRoute).
		addQuery("path", path).
		addQuery("org", opts.Org).
		addQuery("repo", opts.Repo).
		addQuery("ref", opts.Ref).
		build(), nil)
	if err != nil {
		return nil, "", err
	}
	var doc api.DocumentResponse
	correlation, err := c.do(req, &doc)
	if err != nil {
		return nil, correlation, err
	}
	return &doc, correlation, nil
}
