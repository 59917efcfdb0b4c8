package query

import "fmt"

// ListSeparator joins multi-valued attributes in the detail query.
const ListSeparator = ", "

// Variables projected by Detail, in projection order.
const (
	VarMovie              = "movies"
	VarTitle              = "title"
	VarDirector           = "director"
	VarGenres             = "genres"
	VarRating             = "rating"
	VarMetaScore          = "metaScore"
	VarInformation        = "information"
	VarPosterLink         = "posterLink"
	VarPosterLinkWiki     = "posterLinkWikipedia"
	VarReleaseYear        = "releaseYear"
	VarRunningTime        = "runningTime"
	VarStars              = "stars"
	VarVotes              = "votes"
	VarWikidataURI        = "wikidataUri"
	VarDistributor        = "distributor"
	VarBudget             = "budget"
	VarCertificate        = "certificate"
	VarDomesticOpening    = "domesticOpening"
	VarDomesticSales      = "domesticSales"
	VarInternationalSales = "internationalSales"
	VarLicense            = "license"
	VarReleaseDate        = "releaseDate"
)

const detailTemplate = `%s
SELECT ?movies ?title ?director
       (GROUP_CONCAT(DISTINCT ?genre; separator="%s") AS ?genres)
       ?rating ?metaScore ?information
       (SAMPLE(?poster) AS ?posterLink)
       (SAMPLE(?posterWikipedia) AS ?posterLinkWikipedia)
       ?releaseYear ?runningTime
       (GROUP_CONCAT(DISTINCT ?star; separator="%s") AS ?stars)
       ?votes ?wikidataUri ?distributor
       ?budget ?certificate ?domesticOpening ?domesticSales
       ?internationalSales ?license ?releaseDate
WHERE {
  VALUES ?movies { %s }
  ?movies rdf:type :Movie .
  ?movies rdfs:label ?title .
  OPTIONAL { ?movies v:director ?director . }
  OPTIONAL { ?movies v:distributor ?distributor . }
  OPTIONAL { ?movies v:genre ?genre . }
  OPTIONAL { ?movies v:imdbRating ?rating . }
  OPTIONAL { ?movies v:metaScore ?metaScore . }
  OPTIONAL { ?movies v:movieInfo ?information . }
  OPTIONAL { ?movies v:posterLink ?poster . }
  OPTIONAL { ?movies v:posterLinkWikipedia ?posterWikipedia . }
  OPTIONAL { ?movies v:releaseYear ?releaseYear . }
  OPTIONAL { ?movies v:runningTime ?runningTime . }
  OPTIONAL { ?movies v:star ?star . }
  OPTIONAL { ?movies v:votes ?votes . }
  OPTIONAL { ?movies v:wikidataUri ?wikidataUri . }
  OPTIONAL { ?movies v:budget ?budget . }
  OPTIONAL { ?movies v:certificate ?certificate . }
  OPTIONAL { ?movies v:domesticOpening ?domesticOpening . }
  OPTIONAL { ?movies v:domesticSales ?domesticSales . }
  OPTIONAL { ?movies v:internationalSales ?internationalSales . }
  OPTIONAL { ?movies v:license ?license . }
  OPTIONAL { ?movies v:releaseDate ?releaseDate . }
}
GROUP BY ?movies ?title ?director ?rating ?metaScore ?information
         ?releaseYear ?runningTime ?votes ?wikidataUri ?distributor
         ?budget ?certificate ?domesticOpening ?domesticSales
         ?internationalSales ?license ?releaseDate
LIMIT 1
`

// Detail builds the single-movie query for the catalog IRI uri.
func Detail(uri string) (string, error) {
	ref, err := iriRef(uri)
	if err != nil {
		return "", fmt.Errorf("detail query for %q: %w", uri, err)
	}
	return fmt.Sprintf(detailTemplate, localPrefixes, ListSeparator, ListSeparator, ref), nil
}

// Exists asks whether uri names a catalog movie.
func Exists(uri string) (string, error) {
	ref, err := iriRef(uri)
	if err != nil {
		return "", err
	}
	return localPrefixes + "\nASK { " + ref + " rdf:type :Movie . }\n", nil
}
