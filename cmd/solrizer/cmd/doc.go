package cmd

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"solrizer/internal/indexers"
	"solrizer/internal/rdf"
)

// newDocCmd creates the doc command.
func newDocCmd() *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "doc URI",
		Short: "Generate the index document for a single resource",
		Long: `Fetch the resource at the given repository URI, run the configured
indexer pipeline over it, and write the resulting Solr index document
as JSON to standard output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication()
			if err != nil {
				return err
			}

			doc, err := buildDoc(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(doc)
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "Write compact JSON instead of indented")

	return cmd
}

// buildDoc runs the indexer pipeline for the resource at uri.
func buildDoc(ctx context.Context, app *application, uri string) (indexers.Doc, error) {
	res, err := app.repo.Get(ctx, uri)
	if err != nil {
		return nil, err
	}

	model, err := rdf.GuessModel(res.Graph, res.URI)
	if err != nil {
		return nil, err
	}
	app.log.Info("determined content model", "uri", uri, "model", model.Name)

	pipeline := &indexers.Pipeline{
		Registry: app.registry,
		Settings: app.cfg.IndexerSettings,
	}
	ic := &indexers.Context{
		Repo:     app.repo,
		Resource: res,
		Model:    model,
		Doc:      indexers.Doc{"id": uri},
		Config:   app.cfg.IndexerConfig(),
		Log:      app.log,
	}

	result, err := pipeline.Run(ctx, ic, app.cfg.IndexersFor(model.Name))
	if err != nil {
		return nil, err
	}
	for _, f := range result.Failures {
		app.log.Error("indexer did not complete", "indexer", f.Indexer, "error", f.Err)
	}
	return result.Doc, nil
}
