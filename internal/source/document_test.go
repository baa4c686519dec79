package source

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pagegate/pagegate/internal/core"
	"github.com/pagegate/pagegate/internal/rules"
)

func mustCompile(t *testing.T, rr []rules.Rule) *rules.Set {
	t.Helper()
	set, err := rules.Compile(rr)
	if err != nil {
		t.Fatalf("compiling rules: %v", err)
	}
	return set
}

func TestBuildMetadata(t *testing.T) {
	defaultRules := mustCompile(t, []rules.Rule{
		{Name: "internal", Expr: `hasPrefix(path, "internal/")`, Visibility: "restricted", Teams: []string{"staff"}},
	})

	tests := []struct {
		name   string
		path   string
		fields map[string]any
		strict bool
		want   *core.DocumentMetadata
	}{
		{
			name:   "Declared Org Visibility",
			path:   "guides/setup.md",
			fields: map[string]any{"visibility": "org"},
			want: &core.DocumentMetadata{
				Path:       "guides/setup.md",
				Visibility: core.VisibilityOrg,
			},
		},
		{
			name: "Restricted With Teams",
			path: "guides/keys.md",
			fields: map[string]any{
				"visibility": "restricted",
				"teams":      []any{"core", "infra"},
			},
			want: &core.DocumentMetadata{
				Path:         "guides/keys.md",
				Visibility:   core.VisibilityRestricted,
				AllowedTeams: []string{"core", "infra"},
			},
		},
		{
			name:   "Missing Visibility Defaults Public",
			path:   "guides/setup.md",
			fields: map[string]any{"title": "Setup"},
			want: &core.DocumentMetadata{
				Path:       "guides/setup.md",
				Visibility: core.VisibilityPublic,
			},
		},
		{
			name:   "Unrecognized Visibility Coerces To Public",
			path:   "guides/setup.md",
			fields: map[string]any{"visibility": "weird-value"},
			want: &core.DocumentMetadata{
				Path:       "guides/setup.md",
				Visibility: core.VisibilityPublic,
			},
		},
		{
			name:   "Unrecognized Visibility Strict Coerces To Restricted",
			path:   "guides/setup.md",
			fields: map[string]any{"visibility": "weird-value"},
			strict: true,
			want: &core.DocumentMetadata{
				Path:       "guides/setup.md",
				Visibility: core.VisibilityRestricted,
			},
		},
		{
			name:   "Rule Supplies Default For Undeclared Document",
			path:   "internal/oncall.md",
			fields: map[string]any{"title": "On-call"},
			want: &core.DocumentMetadata{
				Path:         "internal/oncall.md",
				Visibility:   core.VisibilityRestricted,
				AllowedTeams: []string{"staff"},
			},
		},
		{
			name:   "Frontmatter Wins Over Rule",
			path:   "internal/welcome.md",
			fields: map[string]any{"visibility": "public"},
			want: &core.DocumentMetadata{
				Path:       "internal/welcome.md",
				Visibility: core.VisibilityPublic,
			},
		},
		{
			name:   "Undecodable Teams Field Ignored",
			path:   "guides/setup.md",
			fields: map[string]any{"visibility": "restricted", "teams": map[string]any{"nope": true}},
			want: &core.DocumentMetadata{
				Path:       "guides/setup.md",
				Visibility: core.VisibilityRestricted,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildMetadata(context.Background(), tt.path, tt.fields, defaultRules, tt.strict)

			// RawFields always carries the input map; compare the rest
			if diff := cmp.Diff(tt.fields, got.RawFields); diff != "" {
				t.Errorf("RawFields mismatch (-want +got):\n%s", diff)
			}
			got.RawFields = nil
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("buildMetadata() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
