// Package configs provides embedded configuration templates for
// solrizer. Templates are embedded at build time with //go:embed so
// they are available in every distribution of the binary. The
// `solrizer init` command writes them out as starting points.
package configs

import _ "embed"

// EnvTemplate is the template for the .env file read at startup. It
// lists every SOLRIZER_* variable with its default value.
//
//go:embed env.example
var EnvTemplate string

// IndexersTemplate is the template for the per-model indexer pipeline
// configuration named by SOLRIZER_INDEXERS_FILE.
//
//go:embed indexers.example.yml
var IndexersTemplate string

// IndexerSettingsTemplate is the template for per-indexer settings
// named by SOLRIZER_INDEXER_SETTINGS_FILE.
//
//go:embed indexer-settings.example.yml
var IndexerSettingsTemplate string
