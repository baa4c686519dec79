package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pagegate/pagegate/pkg/client"
)

var (
	getOrg  string
	getRepo string
	getRef  string
	getRaw  bool
)

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Fetch a document from a Pagegate server",
	Example: `  # fetch a document from the server's configured site
  pagegate --server http://localhost:8080 get guides/setup.md

  # fetch from another repository at a specific ref
  pagegate get guides/setup.md --org acme --repo handbook --ref v2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		doc, correlation, err := cli.GetDocument(cmd.Context(), args[0], client.DocumentOptions{
			Org:  getOrg,
			Repo: getRepo,
			Ref:  getRef,
		})
		if err != nil {
			var apiErr client.APIError
			if errors.As(err, &apiErr) && apiErr.Reason != "" {
				log.Error().Msgf("%s access denied: %s (reason: %s, correlation: %s)",
					redCross, apiErr.Message, apiErr.Reason, correlation)
				return BeQuietError{}
			}
			return err
		}

		if getRaw {
			fmt.Print(doc.Content)
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		fmt.Println(bold(args[0]))
		if doc.Author != nil {
			fmt.Println(faint(fmt.Sprintf("last edited by %s on %s",
				doc.Author.AuthorName, doc.Author.AuthorDate.Format("2006-01-02"))))
		}
		fmt.Println()
		fmt.Print(doc.Content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVar(&getOrg, "org", "", "organization (defaults to the server's site)")
	getCmd.Flags().StringVar(&getRepo, "repo", "", "repository (defaults to the server's site)")
	getCmd.Flags().StringVar(&getRef, "ref", "", "git ref (defaults to the server's site)")
	getCmd.Flags().BoolVar(&getRaw, "raw", false, "print only the document body")
}
