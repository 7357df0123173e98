package indexers

import (
	"context"
	"strings"

	"github.com/yosida95/uritemplate/v3"

	"solrizer/internal/errors"
)

// Configuration keys used by the iiif_links indexer.
const (
	ConfigIIIFIdentifierPrefix  = "iiif_identifier_prefix"
	ConfigIIIFManifestsPattern  = "iiif_manifests_url_pattern"
	ConfigIIIFThumbnailsPattern = "iiif_thumbnail_url_pattern"
)

// IIIFIdentifier converts a repository path to a IIIF identifier:
// the leading slash is dropped, remaining slashes become colons, and
// the prefix is prepended.
func IIIFIdentifier(repoPath, prefix string) string {
	return prefix + strings.ReplaceAll(strings.TrimPrefix(repoPath, "/"), "/", ":")
}

// IIIFLinksFields generates the IIIF manifest link for the resource
// and thumbnail links for each of its pages in sequence order. URL
// patterns are RFC 6570 URI templates taking an "id" variable;
// identifiers contain colons, so patterns should use the reserved
// expansion form "{+id}" to keep them unencoded.
func IIIFLinksFields(_ context.Context, ic *Context) (Doc, error) {
	manifestTemplate, err := uritemplate.New(ic.ConfigValue(ConfigIIIFManifestsPattern))
	if err != nil {
		return nil, errors.ConfigError("invalid IIIF manifest URL pattern", err)
	}
	thumbnailTemplate, err := uritemplate.New(ic.ConfigValue(ConfigIIIFThumbnailsPattern))
	if err != nil {
		return nil, errors.ConfigError("invalid IIIF thumbnail URL pattern", err)
	}
	prefix := ic.ConfigValue(ConfigIIIFIdentifierPrefix)

	identifier := IIIFIdentifier(ic.Resource.Path, prefix)
	manifestURI, err := manifestTemplate.Expand(uritemplate.Values{
		"id": uritemplate.String(identifier),
	})
	if err != nil {
		return nil, errors.ConfigError("cannot expand IIIF manifest URL pattern", err)
	}

	var thumbnailIdentifiers []any
	var thumbnailURIs []any
	for _, page := range NewPageSequence(ic).Pages() {
		files := childDocs(page["page__has_file"])
		if len(files) == 0 {
			continue
		}
		fileURI, ok := files[0]["id"].(string)
		if !ok {
			continue
		}
		thumbnailID := IIIFIdentifier(ic.Repo.Path(fileURI), prefix)
		thumbnailURI, err := thumbnailTemplate.Expand(uritemplate.Values{
			"id": uritemplate.String(thumbnailID),
		})
		if err != nil {
			return nil, errors.ConfigError("cannot expand IIIF thumbnail URL pattern", err)
		}
		thumbnailIdentifiers = append(thumbnailIdentifiers, thumbnailID)
		thumbnailURIs = append(thumbnailURIs, thumbnailURI)
	}

	return Doc{
		"iiif_manifest__id":                   identifier,
		"iiif_manifest__uri":                  manifestURI,
		"iiif_thumbnail_identifier__sequence": thumbnailIdentifiers,
		"iiif_thumbnail_uri__sequence":        thumbnailURIs,
	}, nil
}
