// Package cmd provides the CLI commands for solrizer.
package cmd

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"solrizer/internal/config"
	"solrizer/internal/faceters"
	"solrizer/internal/indexers"
	"solrizer/internal/logging"
	"solrizer/internal/repo"
	"solrizer/pkg/version"
)

// NewRootCmd creates the root command for the solrizer CLI.
func NewRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "solrizer",
		Short: "Generate Solr index documents from repository resources",
		Long: `Solrizer converts RDF resource descriptions from a Fedora
repository into Solr index documents, using a configurable pipeline of
indexers to build the document fields.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if envFile != "" {
				return godotenv.Load(envFile)
			}
			// Missing default .env file is not an error.
			_ = godotenv.Load()
			return nil
		},
	}

	cmd.SetVersionTemplate("solrizer version {{.Version}}\n")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newDocCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		return err
	}
	return nil
}

// application bundles the pieces every command needs: configuration,
// logger, repository client, and the indexer registry.
type application struct {
	cfg      *config.Config
	log      *slog.Logger
	repo     *repo.Client
	registry *indexers.Registry
}

func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(log)

	repoCfg := repo.Config{
		Endpoint:  cfg.FcrepoEndpoint,
		JWTSecret: cfg.FcrepoJWTSecret,
	}
	if cfg.CacheEnabled {
		repoCfg.CacheSize = cfg.CacheSize
		repoCfg.CacheTTL = cfg.CacheExpireAfter
	}

	return &application{
		cfg:      cfg,
		log:      log,
		repo:     repo.NewClient(repoCfg),
		registry: indexers.DefaultRegistry(faceters.Default()),
	}, nil
}
