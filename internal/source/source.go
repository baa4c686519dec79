// Package source implements the upstream resolvers against the GitHub API:
// repository descriptors, document metadata, membership facts, attribution,
// tree listings and raw assets.
package source

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v80/github"

	"github.com/pagegate/pagegate/internal/config"
	"github.com/pagegate/pagegate/internal/core"
	"github.com/pagegate/pagegate/internal/rules"
)

// Hub constructs per-request GitHub clients and implements the resolver
// ports. It carries no per-request state; a client is built fresh from the
// request's credential every time.
type Hub struct {
	serverURL   string
	serverToken string

	ruleSet *rules.Set
	strict  bool
}

var (
	_ core.RepositoryResolver  = (*Hub)(nil)
	_ core.DocumentResolver    = (*Hub)(nil)
	_ core.MembershipVerifier  = (*Hub)(nil)
	_ core.AttributionResolver = (*Hub)(nil)
)

func NewHub(cfg config.GitHubConfig, ruleSet *rules.Set, strictVisibility bool) *Hub {
	return &Hub{
		serverURL:   cfg.Server,
		serverToken: cfg.Token,
		ruleSet:     ruleSet,
		strict:      strictVisibility,
	}
}

// clientFor returns a GitHub client authenticated as the principal, or an
// anonymous client for anonymous principals.
func (h *Hub) clientFor(principal core.Principal) (*github.Client, error) {
	client := github.NewClient(nil)
	if principal.IsAuthenticated() {
		client = client.WithAuthToken(principal.Credential())
	}
	return h.withBaseURL(client)
}

// serverClient returns a client authenticated with the server-side token
// (asset proxy only; the decision path always runs on the caller's own
// credential).
func (h *Hub) serverClient() (*github.Client, error) {
	client := github.NewClient(nil)
	if h.serverToken != "" {
		client = client.WithAuthToken(h.serverToken)
	}
	return h.withBaseURL(client)
}

func (h *Hub) withBaseURL(client *github.Client) (*github.Client, error) {
	if h.serverURL == "" {
		return client, nil
	}
	// we don't interact with uploads, so the upload URL is a stand-in.
	client, err := client.WithEnterpriseURLs(h.serverURL, h.serverURL)
	if err != nil {
		return nil, fmt.Errorf("creating github enterprise client: %w", err)
	}
	return client, nil
}

// statusOf extracts the HTTP status from a go-github error, or 0.
func statusOf(err error) int {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}
	return 0
}

// notAccessible reports whether the upstream answered with one of the
// statuses that deliberately conflate "does not exist" and "no access".
func notAccessible(err error) bool {
	switch statusOf(err) {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}
