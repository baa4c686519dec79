package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/viper"

	"github.com/pagegate/pagegate/internal/cliconfig"
	"github.com/pagegate/pagegate/pkg/client"
)

var (
	greenCheck = color.GreenString("✓")
	redCross   = color.RedString("✗")
)

// BeQuietError signals that the error has already been reported to the user.
type BeQuietError struct{}

func (BeQuietError) Error() string {
	return "command failed"
}

func getClient() (*client.Client, error) {
	// we need the user to provide some server address first
	server := viper.GetString(ServerAddrKey)
	if server == "" {
		return nil, fmt.Errorf("server address not configured, provide via --server or env")
	}

	cfg, err := cliconfig.Load()
	if err != nil {
		// a missing CLI config just means no stored credential
		return client.New(server), nil
	}

	credential, err := cfg.GetCredential(server)
	if err != nil {
		if !errors.Is(err, cliconfig.ErrCredentialNotFound) {
			return nil, err
		}
		return client.New(server), nil
	}

	if credential.GitHubToken {
		return client.New(server, client.WithGitHubToken(credential.Token)), nil
	}
	return client.New(server, client.WithSessionToken(credential.Token)), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
