// Package main provides the entry point for the solrizer CLI.
package main

import (
	"os"

	"solrizer/cmd/solrizer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
