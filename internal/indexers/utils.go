package indexers

import (
	"fmt"
	"time"
)

// datetimeLayouts are the accepted input formats, tried in order. A
// value without a zone is treated as UTC.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// solrDateTime parses an ISO 8601 timestamp and renders it in UTC with
// the "Z" zone marker that Solr expects. The input must carry at least
// a full date.
func solrDateTime(s string) (string, error) {
	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return t.UTC().Format("2006-01-02T15:04:05Z"), nil
	}
	return "", fmt.Errorf("cannot parse %q as an ISO 8601 timestamp", s)
}
