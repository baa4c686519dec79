package rules

import "testing"

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		rules   []Rule
		wantErr bool
	}{
		{
			name:  "Valid Rules",
			rules: []Rule{{Name: "eng", Expr: `hasPrefix(path, "eng/")`, Visibility: "org"}},
		},
		{
			name:    "Missing Expr",
			rules:   []Rule{{Name: "empty"}},
			wantErr: true,
		},
		{
			name:    "Syntax Error",
			rules:   []Rule{{Name: "bad", Expr: `path ==`, Visibility: "org"}},
			wantErr: true,
		},
		{
			name:    "Non-Boolean Expression",
			rules:   []Rule{{Name: "str", Expr: `path`, Visibility: "org"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.rules)
			if (err != nil) != tt.wantErr {
				t.Errorf("Compile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSet_Match(t *testing.T) {
	set, err := Compile([]Rule{
		{Name: "internal-dir", Expr: `hasPrefix(path, "internal/")`, Visibility: "org"},
		{Name: "secret-tag", Expr: `meta.audience == "security"`, Visibility: "restricted", Teams: []string{"security"}},
		{Name: "catch-nothing", Expr: `false`, Visibility: "restricted"},
	})
	if err != nil {
		t.Fatalf("Compile() unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		path     string
		meta     map[string]any
		wantRule string
	}{
		{
			name:     "Path Prefix Match",
			path:     "internal/oncall.md",
			wantRule: "internal-dir",
		},
		{
			name:     "Meta Match",
			path:     "guides/keys.md",
			meta:     map[string]any{"audience": "security"},
			wantRule: "secret-tag",
		},
		{
			name:     "First Match Wins",
			path:     "internal/keys.md",
			meta:     map[string]any{"audience": "security"},
			wantRule: "internal-dir",
		},
		{
			name: "No Match",
			path: "guides/setup.md",
		},
		{
			name: "Missing Meta Key Does Not Match",
			path: "guides/other.md",
			meta: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := set.Match(tt.path, tt.meta)
			if tt.wantRule == "" {
				if got != nil {
					t.Errorf("Match() = %q, want no match", got.Name)
				}
				return
			}
			if got == nil {
				t.Fatalf("Match() = nil, want %q", tt.wantRule)
			}
			if got.Name != tt.wantRule {
				t.Errorf("Match() = %q, want %q", got.Name, tt.wantRule)
			}
		})
	}
}
