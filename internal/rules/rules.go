// Package rules implements configurable default-visibility rules. A rule
// assigns a declared visibility (and optionally allowed teams) to documents
// whose frontmatter carries no visibility of its own; frontmatter always wins
// when present.
package rules

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
)

// Rule binds an expression over the document to a default policy.
type Rule struct {
	// Name is a human-readable identifier for logs/debugging.
	Name string `yaml:"name"`

	// Expr is an expression over `path` (the document path) and `meta`
	// (the frontmatter map). It must evaluate to a boolean.
	Expr string `yaml:"expr"`

	// Visibility is the declared visibility applied when the rule matches.
	Visibility string `yaml:"visibility"`

	// Teams lists allowed team slugs, only meaningful with restricted
	// visibility.
	Teams []string `yaml:"teams"`

	compiled *vm.Program
}

// Set holds compiled rules in declaration order. First match wins.
type Set struct {
	rules []Rule
}

// exprEnv is the evaluation environment shape used for compilation.
var exprEnv = map[string]any{
	"path": "",
	"meta": map[string]any{},
}

// Compile validates and compiles the rules. A rule that does not compile
// fails the whole set; silently skipping a policy rule is not an option.
func Compile(rules []Rule) (*Set, error) {
	compiled := make([]Rule, 0, len(rules))
	for idx, r := range rules {
		if r.Expr == "" {
			return nil, fmt.Errorf("rule %q (index %d) has no expr", r.Name, idx)
		}
		prog, err := expr.Compile(r.Expr, expr.Env(exprEnv), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compiling rule %q: %w", r.Name, err)
		}
		r.compiled = prog
		compiled = append(compiled, r)
	}
	return &Set{rules: compiled}, nil
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Match returns the first rule matching the document, or nil.
// A rule whose expression errors at runtime is treated as not matching;
// the error is logged but never decides access by surprise.
func (s *Set) Match(path string, meta map[string]any) *Rule {
	if s == nil {
		return nil
	}
	if meta == nil {
		meta = map[string]any{}
	}
	for i := range s.rules {
		r := &s.rules[i]
		out, err := expr.Run(r.compiled, map[string]any{
			"path": path,
			"meta": meta,
		})
		if err != nil {
			log.Warn().Str("rule", r.Name).Err(err).Msg("visibility rule evaluation failed")
			continue
		}
		if matched, ok := out.(bool); ok && matched {
			return r
		}
	}
	return nil
}
