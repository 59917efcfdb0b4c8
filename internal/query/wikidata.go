package query

import "fmt"

// Property is a Wikidata property identifier.
type Property string

const (
	PropCastMember         Property = "P161"
	PropDirector           Property = "P57"
	PropScreenwriter       Property = "P58"
	PropDistributedBy      Property = "P750"
	PropDirectorOfPhoto    Property = "P344"
	PropFilmEditor         Property = "P1040"
	PropProductionDesigner Property = "P2554"
	PropCostumeDesigner    Property = "P2515"
	PropComposer           Property = "P86"
	PropProducer           Property = "P162"
	PropCountryOfOrigin    Property = "P495"
	PropAwardReceived      Property = "P166"
	PropFilmingLocation    Property = "P915"
	PropImage              Property = "P18"
	PropReviewScore        Property = "P444"
	PropReviewScoreBy      Property = "P447"
)

const defaultWikidataLanguage = "en"

// Variables projected by the Wikidata queries.
const (
	VarItem        = "item"
	VarItemLabel   = "itemLabel"
	VarImage       = "image"
	VarScore       = "score"
	VarSourceLabel = "sourceLabel"
)

// PropertyValues lists the entities linked from entity through prop, with
// their English labels.
func PropertyValues(entity string, prop Property) (string, error) {
	ref, err := iriRef(entity)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`%s
SELECT DISTINCT ?item ?itemLabel WHERE {
  %s wdt:%s ?item .
  SERVICE wikibase:label { bd:serviceParam wikibase:language "%s". }
}
ORDER BY ?itemLabel
`, wikidataPrefixes, ref, prop, defaultWikidataLanguage), nil
}

// EntityByLabel finds the entity linked from entity through prop whose label
// equals label, ignoring case.
func EntityByLabel(entity string, prop Property, label string) (string, error) {
	ref, err := iriRef(entity)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`%s
SELECT ?item WHERE {
  %s wdt:%s ?item .
  ?item rdfs:label ?label .
  FILTER(LCASE(STR(?label)) = LCASE("%s"))
}
LIMIT 1
`, wikidataPrefixes, ref, prop, EscapeLiteral(label)), nil
}

// EntityImage selects one image of entity.
func EntityImage(entity string) (string, error) {
	ref, err := iriRef(entity)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`%s
SELECT ?image WHERE {
  %s wdt:%s ?image .
}
LIMIT 1
`, wikidataPrefixes, ref, PropImage), nil
}

// ReviewScores lists review score statements of entity with the label of
// the reviewing source.
func ReviewScores(entity string) (string, error) {
	ref, err := iriRef(entity)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`%s
SELECT ?score ?sourceLabel WHERE {
  %s p:%s ?statement .
  ?statement ps:%s ?score .
  OPTIONAL { ?statement pq:%s ?source . }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "%s". }
}
`, wikidataPrefixes, ref, PropReviewScore, PropReviewScore, PropReviewScoreBy, defaultWikidataLanguage), nil
}
