package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"solrizer/configs"
)

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Write starter configuration files",
		Long: `Write a starter .env file and example indexer configuration files
into the given directory (default: the current directory). Existing
files are left alone unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			templates := []struct {
				name    string
				content string
			}{
				{".env", configs.EnvTemplate},
				{"solrizer-indexers.yml", configs.IndexersTemplate},
				{"solrizer-indexer-settings.yml", configs.IndexerSettingsTemplate},
			}
			for _, tmpl := range templates {
				path := filepath.Join(dir, tmpl.name)
				if !force {
					if _, err := os.Stat(path); err == nil {
						fmt.Fprintf(cmd.OutOrStdout(), "skipping %s (already exists)\n", path)
						continue
					}
				}
				if err := os.WriteFile(path, []byte(tmpl.content), 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}
