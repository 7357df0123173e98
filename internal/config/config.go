// Package config loads the application configuration from SOLRIZER_*
// environment variables and the indexer configuration files they point
// at.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"solrizer/internal/errors"
)

// EnvPrefix is the prefix shared by every configuration environment
// variable.
const EnvPrefix = "SOLRIZER_"

// DefaultIndexers is the indexer list used when neither a model entry
// nor a __default__ entry is configured.
var DefaultIndexers = []string{"content_model"}

// Config is the application configuration.
type Config struct {
	// FcrepoEndpoint is the base URL of the repository REST API.
	FcrepoEndpoint string
	// FcrepoJWTSecret signs the bearer tokens used to authenticate to
	// the repository.
	FcrepoJWTSecret string

	// HandleProxyPrefix is the base URL of the handle resolver proxy.
	HandleProxyPrefix string

	// IIIFIdentifierPrefix is prepended to IIIF identifiers derived
	// from repository paths.
	IIIFIdentifierPrefix string
	// IIIFManifestsURLPattern is the URI template for manifest links.
	IIIFManifestsURLPattern string
	// IIIFThumbnailURLPattern is the URI template for thumbnail links.
	IIIFThumbnailURLPattern string

	// SolrQueryEndpoint is the Solr URL queried for current documents
	// when generating atomic updates.
	SolrQueryEndpoint string

	// CacheEnabled turns on caching of fetched resource graphs.
	CacheEnabled bool
	// CacheSize is the maximum number of cached graphs.
	CacheSize int
	// CacheExpireAfter is the cache entry lifetime.
	CacheExpireAfter time.Duration

	// ListenAddress is the host:port the web service binds to.
	ListenAddress string

	// LogLevel and LogFormat configure the application logger.
	LogLevel  string
	LogFormat string

	// Indexers maps content model names to the indexer lists run for
	// resources of that model. The __default__ entry applies to models
	// with no entry of their own.
	Indexers map[string][]string

	// IndexerSettings maps indexer names to their settings.
	IndexerSettings map[string]map[string]any
}

// Load reads the configuration from the environment. The
// SOLRIZER_INDEXERS_FILE and SOLRIZER_INDEXER_SETTINGS_FILE variables
// name files whose contents are loaded, with ${NAME} references
// substituted from the environment.
func Load() (*Config, error) {
	return load(environment())
}

func load(env map[string]string) (*Config, error) {
	cfg := &Config{
		FcrepoEndpoint:          env["FCREPO_ENDPOINT"],
		FcrepoJWTSecret:         env["FCREPO_JWT_SECRET"],
		HandleProxyPrefix:       env["HANDLE_PROXY_PREFIX"],
		IIIFIdentifierPrefix:    env["IIIF_IDENTIFIER_PREFIX"],
		IIIFManifestsURLPattern: env["IIIF_MANIFESTS_URL_PATTERN"],
		IIIFThumbnailURLPattern: env["IIIF_THUMBNAIL_URL_PATTERN"],
		SolrQueryEndpoint:       env["SOLR_QUERY_ENDPOINT"],
		ListenAddress:           env["LISTEN_ADDRESS"],
		LogLevel:                env["LOG_LEVEL"],
		LogFormat:               env["LOG_FORMAT"],
		CacheEnabled:            boolValue(env["CACHE_ENABLED"]),
		CacheSize:               intValue(env["CACHE_SIZE"], 1024),
		CacheExpireAfter:        time.Duration(intValue(env["CACHE_EXPIRE_AFTER"], 120)) * time.Second,
		Indexers:                make(map[string][]string),
		IndexerSettings:         make(map[string]map[string]any),
	}
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = ":5000"
	}

	if file := env["INDEXERS_FILE"]; file != "" {
		var indexers map[string][]string
		if err := loadFile(file, env, &indexers); err != nil {
			return nil, err
		}
		cfg.Indexers = indexers
	}
	if file := env["INDEXER_SETTINGS_FILE"]; file != "" {
		var settings map[string]map[string]any
		if err := loadFile(file, env, &settings); err != nil {
			return nil, err
		}
		cfg.IndexerSettings = settings
	}

	if _, ok := cfg.Indexers["__default__"]; !ok {
		cfg.Indexers["__default__"] = DefaultIndexers
	}

	if cfg.FcrepoEndpoint == "" {
		return nil, errors.Newf(errors.ErrCodeConfigInvalid,
			"%sFCREPO_ENDPOINT must be set", EnvPrefix)
	}

	return cfg, nil
}

// IndexersFor returns the indexer list for the named content model,
// falling back to the __default__ entry.
func (c *Config) IndexersFor(modelName string) []string {
	if indexers, ok := c.Indexers[modelName]; ok {
		return indexers
	}
	return c.Indexers["__default__"]
}

// IndexerConfig returns the application-level values the indexers
// read through their context.
func (c *Config) IndexerConfig() map[string]string {
	return map[string]string{
		"iiif_identifier_prefix":     c.IIIFIdentifierPrefix,
		"iiif_manifests_url_pattern": c.IIIFManifestsURLPattern,
		"iiif_thumbnail_url_pattern": c.IIIFThumbnailURLPattern,
	}
}

// environment collects the SOLRIZER_* variables, keyed without the
// prefix.
func environment() map[string]string {
	env := make(map[string]string)
	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		env[strings.TrimPrefix(key, EnvPrefix)] = value
	}
	return env
}

// loadFile reads a configuration file into out. The format follows the
// file extension: .json, .yml, .yaml, or .toml. ${NAME} references in
// the file are substituted from env before decoding.
func loadFile(path string, env map[string]string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New(errors.ErrCodeConfigNotFound,
			"config file "+path+" not found", err)
	}
	data = []byte(envsubst(string(data), env))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, out)
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, out)
	case ".toml":
		err = toml.Unmarshal(data, out)
	default:
		return errors.Newf(errors.ErrCodeConfigInvalid,
			"cannot load a config file with suffix %q", filepath.Ext(path))
	}
	if err != nil {
		return errors.New(errors.ErrCodeConfigInvalid,
			"cannot parse config file "+path, err)
	}
	return nil
}

var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// envsubst replaces ${NAME} references with values from env. Unknown
// names are left untouched.
func envsubst(s string, env map[string]string) string {
	return envRefPattern.ReplaceAllStringFunc(s, func(ref string) string {
		name := ref[2 : len(ref)-1]
		if value, ok := env[name]; ok {
			return value
		}
		return ref
	})
}

func boolValue(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func intValue(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
