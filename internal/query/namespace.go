package query

import "strings"

const (
	// BaseNamespace is the namespace of catalog resources in the local store.
	BaseNamespace = "http://nama-kelompok.org/data/"
	// VocabNamespace holds the catalog's predicates.
	VocabNamespace = "http://nama-kelompok.org/vocab#"
)

const localPrefixes = `PREFIX : <http://nama-kelompok.org/data/>
PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX v: <http://nama-kelompok.org/vocab#>
PREFIX wd: <http://www.wikidata.org/entity/>
PREFIX xsd: <http://www.w3.org/2001/XMLSchema#>
`

const wikidataPrefixes = `PREFIX wd: <http://www.wikidata.org/entity/>
PREFIX wdt: <http://www.wikidata.org/prop/direct/>
PREFIX p: <http://www.wikidata.org/prop/>
PREFIX ps: <http://www.wikidata.org/prop/statement/>
PREFIX pq: <http://www.wikidata.org/prop/qualifier/>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX wikibase: <http://wikiba.se/ontology#>
PREFIX bd: <http://www.bigdata.com/rdf#>
`

// ExpandID qualifies a local identifier against BaseNamespace. Values that
// are already absolute http(s) IRIs are returned unchanged.
func ExpandID(id string) string {
	if strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://") {
		return id
	}
	return BaseNamespace + strings.TrimPrefix(id, "/")
}

// LocalID strips BaseNamespace from a catalog IRI, for building links.
func LocalID(iri string) string {
	return strings.TrimPrefix(iri, BaseNamespace)
}
