package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pagegate/pagegate/internal/access"
	"github.com/pagegate/pagegate/internal/api"
	"github.com/pagegate/pagegate/internal/config"
	"github.com/pagegate/pagegate/internal/service"
	"github.com/pagegate/pagegate/internal/session"
	"github.com/pagegate/pagegate/internal/source"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Pagegate server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if addr == "" {
			addr = cfg.Server.Addr
		}

		log.Info().
			Str("site", cfg.Site.Owner+"/"+cfg.Site.Repo).
			Str("ref", cfg.Site.Ref).
			Int("visibility_rules", cfg.RuleSet().Len()).
			Msg("Initializing upstream resolvers...")

		hub := source.NewHub(cfg.GitHub, cfg.RuleSet(), cfg.Access.StrictUnknownVisibility)
		engine := access.NewEngine(hub)
		docs := service.NewDocumentService(hub, hub, engine, hub, hub, hub, cfg.Upstream.Timeout)
		sessions := session.NewVerifier([]byte(cfg.Auth.SessionSecret), hub)

		srv := api.NewServer(docs, sessions, cfg.Site)

		server := &http.Server{
			Addr:    addr,
			Handler: srv.Routes(),
		}

		go func() {
			log.Info().Msgf("Starting server on %s...", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "address to listen on (defaults to server.addr from config)")
}
