package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/pagegate/pagegate/internal/rules"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Site     SiteConfig     `yaml:"site"`
	GitHub   GitHubConfig   `yaml:"github"`
	Auth     AuthConfig     `yaml:"auth"`
	Access   AccessConfig   `yaml:"access"`
	Upstream UpstreamConfig `yaml:"upstream"`

	// Rules are optional default-visibility rules, evaluated only for
	// documents whose frontmatter declares no visibility.
	Rules []rules.Rule `yaml:"rules"`

	ruleSet *rules.Set
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// SiteConfig names the content repository documents are served from by
// default. Requests may select another org/repo/ref explicitly; there is no
// ambient global beyond these defaults.
type SiteConfig struct {
	// Owner is the organization (or user) hosting the content repository.
	Owner string `yaml:"owner"`

	// Repo is the content repository name.
	Repo string `yaml:"repo"`

	// Ref is the git reference documents are read from. Defaults to "main".
	Ref string `yaml:"ref"`

	// DocsPath optionally restricts tree listings to a directory prefix,
	// for example "docs/".
	DocsPath string `yaml:"docs_path"`
}

type GitHubConfig struct {
	// Server is the GitHub Enterprise base URL. Empty means github.com.
	Server string `yaml:"server"`

	// Token is the server-side token used for the asset proxy. It is never
	// used on the document decision path, which runs on the caller's own
	// credential.
	Token string `yaml:"token"`

	// TokenFile reads Token from a file instead of inlining it.
	TokenFile string `yaml:"token_file"`
}

type AuthConfig struct {
	// SessionSecret is the HS256 key the upstream OAuth layer signs session
	// tokens with.
	SessionSecret string `yaml:"session_secret"`

	// SessionSecretFile reads SessionSecret from a file instead of inlining it.
	SessionSecretFile string `yaml:"session_secret_file"`
}

type AccessConfig struct {
	// StrictUnknownVisibility makes unrecognized frontmatter visibility
	// values coerce to restricted instead of public. The default (false)
	// keeps the historical fail-open coercion to public.
	StrictUnknownVisibility bool `yaml:"strict_unknown_visibility"`
}

type UpstreamConfig struct {
	// Timeout bounds every upstream call. Defaults to 10s.
	Timeout time.Duration `yaml:"timeout"`
}

// Load reads and parses the configuration file at the given path.
// It returns a Config struct or an error if loading/parsing/validation fails.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Site.Owner == "" {
		return fmt.Errorf("site.owner is required")
	}
	if c.Site.Repo == "" {
		return fmt.Errorf("site.repo is required")
	}
	if c.Site.Ref == "" {
		c.Site.Ref = "main"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Upstream.Timeout <= 0 {
		c.Upstream.Timeout = 10 * time.Second
	}

	if c.GitHub.Token == "" && c.GitHub.TokenFile != "" {
		tok, err := os.ReadFile(c.GitHub.TokenFile)
		if err != nil {
			return fmt.Errorf("reading github.token_file: %w", err)
		}
		c.GitHub.Token = strings.TrimSpace(string(tok))
	}
	if c.Auth.SessionSecret == "" && c.Auth.SessionSecretFile != "" {
		secret, err := os.ReadFile(c.Auth.SessionSecretFile)
		if err != nil {
			return fmt.Errorf("reading auth.session_secret_file: %w", err)
		}
		c.Auth.SessionSecret = strings.TrimSpace(string(secret))
	}

	set, err := rules.Compile(c.Rules)
	if err != nil {
		return fmt.Errorf("compiling visibility rules: %w", err)
	}
	c.ruleSet = set

	return nil
}

// RuleSet returns the compiled visibility rules. Validate must have run.
func (c *Config) RuleSet() *rules.Set {
	return c.ruleSet
}
