package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagegate.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "Minimal Config With Defaults",
			yaml: "site:\n  owner: acme\n  repo: handbook\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Site.Ref != "main" {
					t.Errorf("Site.Ref = %q, want main", cfg.Site.Ref)
				}
				if cfg.Server.Addr != ":8080" {
					t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
				}
				if cfg.Upstream.Timeout != 10*time.Second {
					t.Errorf("Upstream.Timeout = %v, want 10s", cfg.Upstream.Timeout)
				}
			},
		},
		{
			name:    "Missing Owner",
			yaml:    "site:\n  repo: handbook\n",
			wantErr: true,
		},
		{
			name:    "Missing Repo",
			yaml:    "site:\n  owner: acme\n",
			wantErr: true,
		},
		{
			name: "Visibility Rules Compile",
			yaml: `site:
  owner: acme
  repo: handbook
rules:
  - name: internal
    expr: hasPrefix(path, "internal/")
    visibility: org
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.RuleSet().Len() != 1 {
					t.Errorf("RuleSet().Len() = %d, want 1", cfg.RuleSet().Len())
				}
			},
		},
		{
			name: "Broken Rule Fails Load",
			yaml: `site:
  owner: acme
  repo: handbook
rules:
  - name: broken
    expr: "path =="
    visibility: org
`,
			wantErr: true,
		},
		{
			name:    "Invalid YAML",
			yaml:    "\tsite: nope",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoad_SecretFiles(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token")
	if err := os.WriteFile(tokenPath, []byte("ghp_testtoken\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(writeConfig(t, `site:
  owner: acme
  repo: handbook
github:
  token_file: `+tokenPath+"\n"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.GitHub.Token != "ghp_testtoken" {
		t.Errorf("GitHub.Token = %q, want trimmed file contents", cfg.GitHub.Token)
	}
}
