package indexers

import (
	"context"

	"solrizer/internal/errors"
	"solrizer/internal/rdf"
)

// maxAncestorDepth bounds the membership walk so a cycle in the
// repository data cannot loop forever.
const maxAncestorDepth = 32

// RootField adds the _root_ field Solr uses to group nested documents.
// Top-level resources produce no field. For everything else the field
// holds the URI of the top-level ancestor, found by following the
// member_of or file_of property upward.
func RootField(ctx context.Context, ic *Context) (Doc, error) {
	if ic.Model.IsTopLevel {
		return Doc{}, nil
	}

	uri, err := findTopLevelURI(ctx, ic.Repo, ic.Resource.Graph, ic.Resource.URI, ic.Model, 0)
	if err != nil {
		return nil, err
	}
	return Doc{"_root_": uri}, nil
}

func findTopLevelURI(ctx context.Context, repo Repo, g *rdf.Graph, subject string, model *rdf.Model, depth int) (string, error) {
	if depth >= maxAncestorDepth {
		return "", errors.Newf(errors.ErrCodeIndexerFailed,
			"membership chain of %s is too deep, possible cycle", subject)
	}

	parent, ok := g.Object(subject, rdf.NSPcdm+"memberOf")
	if !ok {
		parent, ok = g.Object(subject, rdf.NSPcdm+"fileOf")
	}
	if !ok {
		return "", errors.Newf(errors.ErrCodeIndexerFailed,
			"unable to determine top-level parent of %s", subject)
	}

	res, err := repo.Get(ctx, parent.Value)
	if err != nil {
		return "", err
	}
	parentModel, err := rdf.GuessModel(res.Graph, res.URI)
	if err != nil {
		return "", err
	}
	if parentModel.IsTopLevel {
		return res.URI, nil
	}
	return findTopLevelURI(ctx, repo, res.Graph, res.URI, parentModel, depth+1)
}
