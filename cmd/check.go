package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pagegate/pagegate/internal/access"
	"github.com/pagegate/pagegate/internal/core"
)

var (
	checkOrg     string
	checkPrivate bool
	checkVis     string
	checkTeams   []string
	checkStrict  bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a document's access rules locally",
	Long: `Evaluate the access decision for a document with the given repository
privacy and declared visibility, once for each kind of caller. No server or
GitHub round-trip is involved; membership facts are simulated per caller.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		visibility := core.ParseVisibility(checkVis, checkStrict)
		if string(visibility) != checkVis && checkVis != "" {
			fmt.Println(color.New(color.Faint).Sprintf(
				"visibility %q is unknown, evaluating as %q", checkVis, visibility))
		}

		repo := &core.RepositoryDescriptor{
			Org:       checkOrg,
			Name:      "docs",
			Ref:       "main",
			IsPrivate: checkPrivate,
		}
		doc := &core.DocumentMetadata{
			Path:         "docs/example.md",
			Visibility:   visibility,
			AllowedTeams: checkTeams,
		}

		memberTeams := checkTeams
		if len(memberTeams) == 0 {
			memberTeams = []string{"engineering"}
		}

		callers := []struct {
			name      string
			principal core.Principal
			verifier  matrixVerifier
		}{
			{"anonymous", core.Anonymous(), matrixVerifier{}},
			{"authenticated outsider", core.Authenticated("outsider", "-"), matrixVerifier{}},
			{"org member", core.Authenticated("member", "-"), matrixVerifier{member: true}},
			{"team member", core.Authenticated("insider", "-"), matrixVerifier{member: true, teams: memberTeams}},
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Caller", "Verdict", "Reason", "Status"})

		bold := color.New(color.Bold).SprintFunc()
		for _, caller := range callers {
			engine := access.NewEngine(caller.verifier)
			decision := engine.Evaluate(context.Background(), caller.principal, repo, doc)

			verdict := greenCheck + " allow"
			if !decision.Allowed {
				verdict = redCross + " deny"
			}
			t.AppendRow(table.Row{
				bold(caller.name),
				verdict,
				decision.Reason,
				decision.Status,
			})
		}

		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	},
}

// matrixVerifier answers membership questions from fixed facts.
type matrixVerifier struct {
	member bool
	teams  []string
}

func (v matrixVerifier) IsMember(context.Context, core.Principal, string) (bool, error) {
	return v.member, nil
}

func (v matrixVerifier) TeamSlugs(context.Context, core.Principal, string) ([]string, error) {
	return v.teams, nil
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkOrg, "org", "example", "organization owning the repository")
	checkCmd.Flags().BoolVar(&checkPrivate, "private", false, "treat the repository as private")
	checkCmd.Flags().StringVar(&checkVis, "visibility", "public", "declared document visibility")
	checkCmd.Flags().StringSliceVar(&checkTeams, "teams", nil,
		"allowed team slugs for restricted visibility (comma-separated)")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "coerce unknown visibility values to restricted")
}
