package cmd

import (
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pagegate/pagegate/internal/cliconfig"
)

var loginGitHubToken bool

var loginCmd = &cobra.Command{
	Use:   "login <token>",
	Short: "Store a credential for a Pagegate server",
	Long: `Stores a session token (issued by the identity layer in front of the
server) or, with --github-token, a raw GitHub access token. The credential is
saved locally and sent with future requests to that server.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := args[0]
		if token == "" {
			return fmt.Errorf("token cannot be empty")
		}

		server := viper.GetString(ServerAddrKey)
		if server == "" {
			return fmt.Errorf("server address not configured, provide via --server or env")
		}
		u, err := url.Parse(server)
		if err != nil {
			return fmt.Errorf("parsing server URL: %w", err)
		}

		cfg, err := cliconfig.Load()
		if err != nil {
			cfg = &cliconfig.CLIConfig{}
		}
		if err := cfg.SetCredential(server, &cliconfig.Credential{
			Token:       token,
			GitHubToken: loginGitHubToken,
		}); err != nil {
			return err
		}
		if err := cliconfig.Save(cfg); err != nil {
			return fmt.Errorf("saving credential: %w", err)
		}

		log.Info().Msgf("%s credential stored for %q", greenCheck, u.Host)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().BoolVar(&loginGitHubToken, "github-token", false,
		"store the token as a raw GitHub access token instead of a session token")
}
