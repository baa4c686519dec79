package source

import (
	"context"
	"fmt"

	"github.com/google/go-github/v80/github"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"

	"github.com/pagegate/pagegate/internal/core"
	"github.com/pagegate/pagegate/internal/frontmatter"
	"github.com/pagegate/pagegate/internal/rules"
)

// declaredPolicy is the typed shape of the access-relevant frontmatter keys.
type declaredPolicy struct {
	Visibility string   `mapstructure:"visibility"`
	Teams      []string `mapstructure:"teams"`
}

// ResolveDocument fetches the raw bytes for path at ref and derives the
// document's metadata and body.
func (h *Hub) ResolveDocument(
	ctx context.Context,
	org, repo, path, ref string,
	principal core.Principal,
) (*core.DocumentMetadata, string, error) {
	client, err := h.clientFor(principal)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", core.ErrUpstream, err)
	}

	file, dir, _, err := client.Repositories.GetContents(ctx, org, repo, path, &github.RepositoryContentGetOptions{
		Ref: ref,
	})
	if err != nil {
		if notAccessible(err) {
			return nil, "", fmt.Errorf("%w: %s @ %s", core.ErrDocumentNotFound, path, ref)
		}
		return nil, "", fmt.Errorf("%w: fetching %s: %w", core.ErrUpstream, path, err)
	}
	if dir != nil || file == nil || file.GetType() != "file" {
		return nil, "", fmt.Errorf("%w: %s", core.ErrNotAFile, path)
	}

	raw, err := file.GetContent()
	if err != nil {
		return nil, "", fmt.Errorf("%w: decoding content of %s: %w", core.ErrUpstream, path, err)
	}

	fields, body := frontmatter.Parse([]byte(raw))
	meta := buildMetadata(ctx, path, fields, h.ruleSet, h.strict)
	return meta, body, nil
}

// buildMetadata derives the declared policy from the frontmatter map.
// Frontmatter wins; a visibility rule only applies when the document
// declares no visibility of its own.
//
// The policy keys degrade independently: an undecodable teams list must not
// erase a perfectly good visibility declaration, and vice versa. A document
// with broken metadata is never dropped; it just loses that declaration.
func buildMetadata(ctx context.Context, path string, fields map[string]any, ruleSet *rules.Set, strict bool) *core.DocumentMetadata {
	var policy declaredPolicy
	if raw, ok := fields["visibility"]; ok {
		if err := mapstructure.WeakDecode(raw, &policy.Visibility); err != nil {
			log.Ctx(ctx).Warn().Str("path", path).Err(err).
				Msg("undecodable visibility field, ignoring it")
		}
	}
	if raw, ok := fields["teams"]; ok {
		if err := mapstructure.WeakDecode(raw, &policy.Teams); err != nil {
			log.Ctx(ctx).Warn().Str("path", path).Err(err).
				Msg("undecodable teams field, ignoring it")
		}
	}

	if _, declared := fields["visibility"]; !declared {
		if rule := ruleSet.Match(path, fields); rule != nil {
			policy.Visibility = rule.Visibility
			if len(rule.Teams) > 0 {
				policy.Teams = rule.Teams
			}
		}
	}

	return &core.DocumentMetadata{
		Path:         path,
		Visibility:   core.ParseVisibility(policy.Visibility, strict),
		AllowedTeams: policy.Teams,
		RawFields:    fields,
	}
}
