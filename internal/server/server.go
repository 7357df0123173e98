// Package server exposes the indexing pipeline as a web service. The
// main endpoint, GET /doc, turns a repository resource into a Solr
// index document, optionally wrapped as an add command or converted to
// an atomic update against the live Solr index.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"solrizer/internal/config"
	"solrizer/internal/errors"
	"solrizer/internal/indexers"
	"solrizer/internal/rdf"
	"solrizer/internal/solr"
	"solrizer/pkg/version"
)

// Server wires the repository, the indexer pipeline, and the HTTP
// routes together.
type Server struct {
	cfg        *config.Config
	repo       indexers.Repo
	pipeline   *indexers.Pipeline
	httpClient *http.Client
	log        *slog.Logger
	startTime  time.Time
}

// New builds a Server. The pipeline's settings come from the
// configuration's indexer settings.
func New(cfg *config.Config, repo indexers.Repo, registry *indexers.Registry, log *slog.Logger) *Server {
	return &Server{
		cfg:  cfg,
		repo: repo,
		pipeline: &indexers.Pipeline{
			Registry: registry,
			Settings: cfg.IndexerSettings,
		},
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
		startTime:  time.Now(),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(s.requestLogger(), gin.Recovery())

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.GET("/doc", s.handleDoc)

	return router
}

// Run serves HTTP on the configured listen address until the context
// is canceled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddress,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "address", s.cfg.ListenAddress)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.RequestURI(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

const landingPage = `<html>
  <head>
    <title>Solrizer</title>
  </head>
  <body>
    <h1>Solrizer</h1>
    <form method="get" action="/doc">
      <label>URI: <input name="uri" type="text" size="80"/></label>
      <select name="command">
        <option value=""></option>
        <option value="add">add</option>
        <option value="update">update</option>
      </select>
      <button type="submit">Submit</button>
    </form>
    <hr/>
    <p id="version">%s</p>
  </body>
</html>
`

func (s *Server) handleRoot(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(fmt.Sprintf(landingPage, version.Short())))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"uptime":  time.Since(s.startTime).String(),
		"version": version.Short(),
	})
}

func (s *Server) handleDoc(c *gin.Context) {
	uri := c.Query("uri")
	if uri == "" {
		s.problem(c, http.StatusBadRequest, "No resource requested",
			"No resource URL or path was provided as part of this request.")
		return
	}

	command := c.Query("command")
	switch command {
	case "", "add", "update":
	default:
		s.problem(c, http.StatusBadRequest, "Unknown command",
			fmt.Sprintf("%q is not a recognized command.", command))
		return
	}
	if command == "update" && s.cfg.SolrQueryEndpoint == "" {
		s.log.Error("the update command requires SOLRIZER_SOLR_QUERY_ENDPOINT to be set")
		s.problem(c, http.StatusInternalServerError, "Configuration error",
			"The service is not configured to generate atomic updates.")
		return
	}

	start := time.Now()
	doc, err := s.buildDoc(c.Request.Context(), uri)
	if err != nil {
		switch errors.GetCode(err) {
		case errors.ErrCodeResourceNotAvailable, errors.ErrCodeGraphParse, errors.ErrCodeUnknownModel:
			s.problem(c, http.StatusNotFound, "Resource is not available",
				fmt.Sprintf("Resource at %q is not available from the repository.", uri))
		default:
			s.problem(c, http.StatusInternalServerError, "Indexing error",
				fmt.Sprintf("Error while processing %q for indexing.", uri))
		}
		return
	}
	s.log.Info("created index document",
		"uri", uri, "duration_ms", time.Since(start).Milliseconds())

	switch command {
	case "add":
		c.JSON(http.StatusOK, gin.H{"add": gin.H{"doc": doc}})
	case "update":
		update, err := solr.CreateAtomicUpdate(c.Request.Context(), s.httpClient,
			s.cfg.SolrQueryEndpoint, doc)
		if err != nil {
			s.log.Error("cannot generate atomic update", "uri", uri, "error", err)
			s.problem(c, http.StatusInternalServerError, "Indexing error",
				"Cannot generate Solr atomic update.")
			return
		}
		c.JSON(http.StatusOK, []map[string]any{update})
	default:
		c.JSON(http.StatusOK, doc)
	}
}

// buildDoc fetches the resource, determines its content model, and
// runs the configured indexer pipeline.
func (s *Server) buildDoc(ctx context.Context, uri string) (map[string]any, error) {
	res, err := s.repo.Get(ctx, uri)
	if err != nil {
		return nil, err
	}

	model, err := rdf.GuessModel(res.Graph, res.URI)
	if err != nil {
		s.log.Error("unable to determine content model", "uri", uri)
		return nil, err
	}
	s.log.Info("determined content model", "uri", uri, "model", model.Name)

	ic := &indexers.Context{
		Repo:     s.repo,
		Resource: res,
		Model:    model,
		Doc:      indexers.Doc{"id": uri},
		Config:   s.cfg.IndexerConfig(),
		Log:      s.log,
	}

	names := s.cfg.IndexersFor(model.Name)
	s.log.Info("running indexers", "uri", uri, "indexers", names)

	result, err := s.pipeline.Run(ctx, ic, names)
	if err != nil {
		return nil, err
	}
	for _, f := range result.Failures {
		s.log.Error("indexer did not complete", "uri", uri, "indexer", f.Indexer, "error", f.Err)
	}
	return result.Doc, nil
}

// problem writes an RFC 9457 problem detail response.
func (s *Server) problem(c *gin.Context, status int, title, details string) {
	c.Header("Content-Type", "application/problem+json")
	c.JSON(status, gin.H{
		"status":  status,
		"title":   title,
		"details": details,
	})
}
