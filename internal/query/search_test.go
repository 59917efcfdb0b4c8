package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPagination(t *testing.T) {
	tests := []struct {
		page       int
		wantOffset string
	}{
		{1, "OFFSET 0\n"},
		{2, "OFFSET 20\n"},
		{7, "OFFSET 120\n"},
		{0, "OFFSET 0\n"},
	}
	for _, tt := range tests {
		q := Search(SearchParams{Page: tt.page})
		assert.Contains(t, q, tt.wantOffset, "page %d", tt.page)
		assert.Contains(t, q, "LIMIT 21\n", "page %d", tt.page)
	}
}

func TestOffset(t *testing.T) {
	for p := 1; p <= 50; p++ {
		assert.Equal(t, (p-1)*PageSize, Offset(p))
	}
	assert.Equal(t, 0, Offset(-3))
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"name_asc", "ORDER BY ?movieName"},
		{"name_desc", "ORDER BY DESC(?movieName)"},
		{"budget_desc", "ORDER BY DESC(?sortValue) ?movieName"},
		{"year_desc", "ORDER BY DESC(?releaseYear) ?movieName"},
		{"rating_desc", "ORDER BY DESC(?sortValue) ?movieName"},
		{"sales_desc", "ORDER BY DESC(?sortValue) ?movieName"},
		{" BUDGET_DESC ", "ORDER BY DESC(?sortValue) ?movieName"},
		{"", "ORDER BY ?movieName"},
		{"popularity", "ORDER BY ?movieName"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderClause(tt.key))
		})
	}
}

func TestSearchSortBindsSortValue(t *testing.T) {
	tests := map[string]string{
		"budget_desc": "v:budget ?budget",
		"rating_desc": "v:imdbRating ?imdbRating",
		"sales_desc":  "v:internationalSales ?internationalSales",
	}
	for key, pattern := range tests {
		q := Search(SearchParams{Sort: key, Page: 1})
		assert.Contains(t, q, pattern, key)
		assert.Contains(t, q, "AS ?sortValue)", key)
	}
	assert.NotContains(t, Search(SearchParams{Page: 1}), "?sortValue")
}

func TestSearchFilters(t *testing.T) {
	q := Search(SearchParams{Text: "dark knight", Genre: "Action", Page: 1})
	assert.Contains(t, q, `FILTER(REGEX(STR(?movieName), "dark knight", "i"))`)
	assert.Contains(t, q, "?movieId v:genre ?genre .")
	assert.Contains(t, q, `FILTER(REGEX(STR(?genre), "Action", "i"))`)
	assert.Contains(t, q, "GROUP BY ?movieId ?movieName ?releaseYear")
	assert.Contains(t, q, "(SAMPLE(?posterLink) AS ?uniquePosterLink)")

	q = Search(SearchParams{Page: 1})
	assert.NotContains(t, q, "FILTER")
	assert.NotContains(t, q, "v:genre")
}

func TestSearchEscapesUserText(t *testing.T) {
	q := Search(SearchParams{Text: `x" . } DROP ALL #`, Genre: `a.*(b`, Page: 1})
	assert.Contains(t, q, `REGEX(STR(?movieName), "x\" \\. \\} DROP ALL #", "i")`)
	assert.Contains(t, q, `REGEX(STR(?genre), "a\\.\\*\\(b", "i")`)
	assert.Equal(t, 1, strings.Count(q, "}\nGROUP BY"))
}

func TestEscapeLiteral(t *testing.T) {
	assert.Equal(t, `a\\b\"c\nd\re\tf`, EscapeLiteral("a\\b\"c\nd\re\tf"))
	assert.Equal(t, "plain", EscapeLiteral("plain"))
}

func TestValidIRI(t *testing.T) {
	valid := []string{
		"http://nama-kelompok.org/data/inception",
		"https://www.wikidata.org/entity/Q25188",
		"http://www.wikidata.org/entity/Q25188",
	}
	for _, v := range valid {
		assert.True(t, ValidIRI(v), v)
	}
	invalid := []string{
		"",
		"inception",
		"http://x.org/a> } DROP ALL {",
		"http://x.org/a b",
		"ftp://x.org/a",
		"http:///nohost",
		"http://x.org/\"quote",
	}
	for _, v := range invalid {
		assert.False(t, ValidIRI(v), v)
	}
}

func TestExpandID(t *testing.T) {
	assert.Equal(t, BaseNamespace+"inception", ExpandID("inception"))
	assert.Equal(t, BaseNamespace+"inception", ExpandID("/inception"))
	assert.Equal(t, "http://other.org/x", ExpandID("http://other.org/x"))
	assert.Equal(t, "https://other.org/x", ExpandID("https://other.org/x"))
	assert.Equal(t, "inception", LocalID(BaseNamespace+"inception"))
}

func TestDetail(t *testing.T) {
	q, err := Detail(BaseNamespace + "inception")
	require.NoError(t, err)
	assert.Contains(t, q, "VALUES ?movies { <http://nama-kelompok.org/data/inception> }")
	assert.Contains(t, q, `(GROUP_CONCAT(DISTINCT ?genre; separator=", ") AS ?genres)`)
	assert.Contains(t, q, `(GROUP_CONCAT(DISTINCT ?star; separator=", ") AS ?stars)`)
	assert.Contains(t, q, "LIMIT 1")
	assert.Equal(t, 20, strings.Count(q, "OPTIONAL {"))

	_, err = Detail("http://x.org/a> } ; DROP ALL")
	assert.ErrorIs(t, err, ErrInvalidIRI)
}

func TestExists(t *testing.T) {
	q, err := Exists(BaseNamespace + "inception")
	require.NoError(t, err)
	assert.Contains(t, q, "ASK { <http://nama-kelompok.org/data/inception> rdf:type :Movie . }")

	_, err = Exists("not an iri")
	assert.ErrorIs(t, err, ErrInvalidIRI)
}

func TestWikidataQueries(t *testing.T) {
	const entity = "http://www.wikidata.org/entity/Q25188"

	q, err := PropertyValues(entity, PropDistributedBy)
	require.NoError(t, err)
	assert.Contains(t, q, "<"+entity+"> wdt:P750 ?item .")

	q, err = EntityByLabel(entity, PropCastMember, `Leonardo "Leo" DiCaprio`)
	require.NoError(t, err)
	assert.Contains(t, q, "wdt:P161 ?item")
	assert.Contains(t, q, `LCASE("Leonardo \"Leo\" DiCaprio")`)

	q, err = EntityImage(entity)
	require.NoError(t, err)
	assert.Contains(t, q, "wdt:P18 ?image")

	q, err = ReviewScores(entity)
	require.NoError(t, err)
	assert.Contains(t, q, "p:P444 ?statement")
	assert.Contains(t, q, "pq:P447 ?source")

	_, err = EntityImage("Tidak ada")
	assert.ErrorIs(t, err, ErrInvalidIRI)
}
