package rdf

import "strings"

// Namespace IRIs used by the content models and indexers.
const (
	NSRdf     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSRdfs    = "http://www.w3.org/2000/01/rdf-schema#"
	NSOwl     = "http://www.w3.org/2002/07/owl#"
	NSXsd     = "http://www.w3.org/2001/XMLSchema#"
	NSDcterms = "http://purl.org/dc/terms/"
	NSDce     = "http://purl.org/dc/elements/1.1/"
	NSBibo    = "http://purl.org/ontology/bibo/"
	NSEdm     = "http://www.europeana.eu/schemas/edm/"
	NSPcdm    = "http://pcdm.org/models#"
	NSPcdmUse = "http://pcdm.org/use#"
	NSOre     = "http://www.openarchives.org/ore/terms/"
	NSIana    = "http://www.iana.org/assignments/relation/"
	NSRel     = "http://id.loc.gov/vocabulary/relators/"
	NSEbucore = "http://www.ebu.ch/metadata/ontologies/ebucore/ebucore#"
	NSFedora  = "http://fedora.info/definitions/v4/repository#"

	NSUmdModel  = "http://vocab.lib.umd.edu/model#"
	NSUmdAccess = "http://vocab.lib.umd.edu/access#"
	NSUmdType   = "http://vocab.lib.umd.edu/datatype#"
	NSUmdRights = "http://vocab.lib.umd.edu/rightsStatement#"
)

// Frequently used terms.
const (
	RDFType   = NSRdf + "type"
	RDFSLabel = NSRdfs + "label"
	OwlSameAs = NSOwl + "sameAs"

	TypePublished              = NSUmdAccess + "Published"
	TypeHidden                 = NSUmdAccess + "Hidden"
	TypeExtractedText          = NSPcdmUse + "ExtractedText"
	TypePreservationMasterFile = NSPcdmUse + "PreservationMasterFile"

	DatatypeHandle          = NSUmdType + "handle"
	DatatypeAccessionNumber = NSUmdType + "accessionNumber"

	XsdInt      = NSXsd + "int"
	XsdInteger  = NSXsd + "integer"
	XsdLong     = NSXsd + "long"
	XsdDateTime = NSXsd + "dateTime"
)

// prefixTable maps namespace IRIs to CURIE prefixes. Kept as an ordered
// slice so shortening is deterministic when namespaces share a prefix
// of each other.
var prefixTable = []struct {
	ns     string
	prefix string
}{
	{NSRdf, "rdf"},
	{NSRdfs, "rdfs"},
	{NSOwl, "owl"},
	{NSXsd, "xsd"},
	{NSDcterms, "dcterms"},
	{NSDce, "dc"},
	{NSBibo, "bibo"},
	{NSEdm, "edm"},
	{NSPcdmUse, "pcdmuse"},
	{NSPcdm, "pcdm"},
	{NSOre, "ore"},
	{NSIana, "iana"},
	{NSRel, "rel"},
	{NSEbucore, "ebucore"},
	{NSFedora, "fedora"},
	{NSUmdModel, "umd"},
	{NSUmdAccess, "umdaccess"},
	{NSUmdType, "umdtype"},
}

// CURIE shortens the IRI using the namespace table. IRIs with no known
// namespace are returned unchanged.
func CURIE(uri string) string {
	for _, entry := range prefixTable {
		if rest, ok := strings.CutPrefix(uri, entry.ns); ok && rest != "" {
			return entry.prefix + ":" + rest
		}
	}
	return uri
}
