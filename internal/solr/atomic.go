// Package solr builds Solr atomic-update structures by diffing a newly
// generated index document against the one currently in the index.
package solr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
)

// Copy these keys verbatim into the atomic update.
var copyKeys = map[string]bool{"id": true, "_root_": true}

// Skip these keys when creating the atomic update.
var skipKeys = map[string]bool{"_version_": true}

// AtomicDiff creates a Solr atomic-update structure describing the
// changes from oldDoc to newDoc. Changed and added fields become
// {"set": value} operations; removed fields become {"set": null}.
func AtomicDiff(oldDoc, newDoc map[string]any) map[string]any {
	diff := make(map[string]any)
	for key, oldValue := range oldDoc {
		switch {
		case copyKeys[key]:
			diff[key] = oldValue
		case skipKeys[key]:
			continue
		default:
			newValue, ok := newDoc[key]
			if !ok {
				diff[key] = map[string]any{"set": nil}
			} else if !reflect.DeepEqual(oldValue, newValue) {
				diff[key] = map[string]any{"set": newValue}
			}
		}
	}
	for key, newValue := range newDoc {
		if _, seen := oldDoc[key]; seen || skipKeys[key] {
			continue
		}
		if copyKeys[key] {
			diff[key] = newValue
		} else {
			diff[key] = map[string]any{"set": newValue}
		}
	}
	return diff
}

// CreateAtomicUpdate fetches the current document for newDoc's id from
// the Solr query endpoint and diffs newDoc against it.
func CreateAtomicUpdate(ctx context.Context, client *http.Client, queryEndpoint string, newDoc map[string]any) (map[string]any, error) {
	id, ok := newDoc["id"].(string)
	if !ok {
		return nil, fmt.Errorf("document has no id field")
	}

	current, err := fetchCurrentDoc(ctx, client, queryEndpoint, id)
	if err != nil {
		return nil, err
	}
	return AtomicDiff(current, newDoc), nil
}

func fetchCurrentDoc(ctx context.Context, client *http.Client, queryEndpoint, id string) (map[string]any, error) {
	u, err := url.Parse(queryEndpoint)
	if err != nil {
		return nil, fmt.Errorf("bad Solr query endpoint: %w", err)
	}
	q := u.Query()
	q.Set("ids", id)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying Solr: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Response struct {
			Docs []map[string]any `json:"docs"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding Solr query response: %w", err)
	}
	if len(body.Response.Docs) == 0 {
		return map[string]any{}, nil
	}
	return body.Response.Docs[0], nil
}
