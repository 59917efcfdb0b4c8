package query

import (
	"fmt"
	"strings"
)

// PageSize is the number of movies surfaced per search page. Queries ask for
// one more row to learn whether a next page exists.
const PageSize = 20

// SortKey selects the ORDER BY clause of a search.
type SortKey string

const (
	SortNameAsc    SortKey = "name_asc"
	SortNameDesc   SortKey = "name_desc"
	SortBudgetDesc SortKey = "budget_desc"
	SortYearDesc   SortKey = "year_desc"
	SortRatingDesc SortKey = "rating_desc"
	SortSalesDesc  SortKey = "sales_desc"
)

type sortSpec struct {
	pattern   string
	aggregate string
	order     string
}

var sortSpecs = map[SortKey]sortSpec{
	SortNameAsc:  {order: "ORDER BY ?movieName"},
	SortNameDesc: {order: "ORDER BY DESC(?movieName)"},
	SortYearDesc: {order: "ORDER BY DESC(?releaseYear) ?movieName"},
	SortBudgetDesc: {
		pattern:   "OPTIONAL { ?movieId v:budget ?budget . }",
		aggregate: "(MAX(xsd:integer(?budget)) AS ?sortValue)",
		order:     "ORDER BY DESC(?sortValue) ?movieName",
	},
	SortRatingDesc: {
		pattern:   "OPTIONAL { ?movieId v:imdbRating ?imdbRating . }",
		aggregate: "(MAX(xsd:decimal(?imdbRating)) AS ?sortValue)",
		order:     "ORDER BY DESC(?sortValue) ?movieName",
	},
	SortSalesDesc: {
		pattern:   "OPTIONAL { ?movieId v:internationalSales ?internationalSales . }",
		aggregate: "(MAX(xsd:integer(?internationalSales)) AS ?sortValue)",
		order:     "ORDER BY DESC(?sortValue) ?movieName",
	},
}

// ParseSortKey maps user input onto a known key, defaulting to SortNameAsc.
func ParseSortKey(raw string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := sortSpecs[key]; ok {
		return key
	}
	return SortNameAsc
}

// OrderClause returns the ORDER BY clause for raw.
func OrderClause(raw string) string {
	return sortSpecs[ParseSortKey(raw)].order
}

// SearchParams are the user-facing search filters.
type SearchParams struct {
	Text  string
	Genre string
	Sort  string
	Page  int
}

// Offset returns the row offset for page (pages start at 1).
func Offset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

// Search builds the paginated movie search query.
func Search(p SearchParams) string {
	spec := sortSpecs[ParseSortKey(p.Sort)]

	var b strings.Builder
	b.WriteString(localPrefixes)
	b.WriteString("\nSELECT ?movieId ?movieName (SAMPLE(?posterLink) AS ?uniquePosterLink) ?releaseYear")
	if spec.aggregate != "" {
		b.WriteString(" ")
		b.WriteString(spec.aggregate)
	}
	b.WriteString(" WHERE {\n")
	b.WriteString("  ?movieId rdf:type :Movie .\n")
	b.WriteString("  ?movieId rdfs:label ?movieName .\n")
	b.WriteString("  OPTIONAL { ?movieId v:posterLink ?posterLink . }\n")
	b.WriteString("  OPTIONAL { ?movieId v:releaseYear ?releaseYear . }\n")
	if spec.pattern != "" {
		b.WriteString("  ")
		b.WriteString(spec.pattern)
		b.WriteString("\n")
	}
	if text := strings.TrimSpace(p.Text); text != "" {
		fmt.Fprintf(&b, "  FILTER(REGEX(STR(?movieName), \"%s\", \"i\"))\n", RegexLiteral(text))
	}
	if genre := strings.TrimSpace(p.Genre); genre != "" {
		b.WriteString("  ?movieId v:genre ?genre .\n")
		fmt.Fprintf(&b, "  FILTER(REGEX(STR(?genre), \"%s\", \"i\"))\n", RegexLiteral(genre))
	}
	b.WriteString("}\n")
	b.WriteString("GROUP BY ?movieId ?movieName ?releaseYear\n")
	b.WriteString(spec.order)
	b.WriteString("\n")
	fmt.Fprintf(&b, "OFFSET %d\nLIMIT %d\n", Offset(p.Page), PageSize+1)
	return b.String()
}
