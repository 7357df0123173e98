package cmd

import (
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"solrizer/internal/server"
	"solrizer/pkg/version"
)

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the indexing web service",
		Long: `Start the HTTP service that converts repository resources to Solr
index documents on request. The service runs until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApplication()
			if err != nil {
				return err
			}
			if listen != "" {
				app.cfg.ListenAddress = listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app.log.Info("starting solrizer", "version", version.Short())
			srv := server.New(app.cfg, app.repo, app.registry, app.log)
			if err := srv.Run(ctx); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides SOLRIZER_LISTEN_ADDRESS)")

	return cmd
}
