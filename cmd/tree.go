package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pagegate/pagegate/pkg/client"
)

var (
	treeOrg    string
	treeRepo   string
	treeRef    string
	treePrefix string
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "List the documents of a repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		paths, _, err := cli.ListTree(cmd.Context(), client.TreeOptions{
			Org:    treeOrg,
			Repo:   treeRepo,
			Ref:    treeRef,
			Prefix: treePrefix,
		})
		if err != nil {
			return err
		}

		for _, path := range paths {
			fmt.Println(path)
		}
		fmt.Println(color.New(color.Faint).Sprintf("%d documents", len(paths)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().StringVar(&treeOrg, "org", "", "organization (defaults to the server's site)")
	treeCmd.Flags().StringVar(&treeRepo, "repo", "", "repository (defaults to the server's site)")
	treeCmd.Flags().StringVar(&treeRef, "ref", "", "git ref (defaults to the server's site)")
	treeCmd.Flags().StringVar(&treePrefix, "prefix", "", "directory prefix filter")
}
