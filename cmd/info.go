package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pagegate/pagegate/internal/buildinfo"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about the Pagegate installation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString(ServerAddrKey) == "" {
			printInfo(buildinfo.GetBuildInfo())
			return nil
		}

		cli, err := getClient()
		if err != nil {
			return err
		}
		info, _, err := cli.Info(cmd.Context())
		if err != nil {
			return err
		}
		printInfo(*info)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printInfo(info buildinfo.Info) {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Println(bold("\n── Pagegate Build Information ──"))
	fmt.Printf("  %s:    %s\n", faint("Service"), info.Service)
	fmt.Printf("  %s:    %s\n", faint("Version"), info.Version)
	fmt.Printf("  %s:     %s\n", faint("Commit"), info.CommitHash)
	fmt.Printf("  %s:      %s\n", faint("About"), info.About)
}
