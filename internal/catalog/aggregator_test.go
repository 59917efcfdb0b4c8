package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clark-Hu/filmgraph/internal/domain"
	"github.com/Clark-Hu/filmgraph/internal/sparql"
)

const (
	inceptionEntity = "http://www.wikidata.org/entity/Q25188"
	dicaprioEntity  = "http://www.wikidata.org/entity/Q38111"
	nolanEntity     = "http://www.wikidata.org/entity/Q25191"
)

func mappedInception(t *testing.T) domain.MovieDetail {
	t.Helper()
	m, err := MapDetail(row(toRow(fullDetailRow())...))
	require.NoError(t, err)
	return m
}

func labelRows(labels ...string) []sparql.Row {
	rows := make([]sparql.Row, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, row("item", "http://www.wikidata.org/entity/"+l, "itemLabel", l))
	}
	return rows
}

func wikidataFake() *fakeClient {
	f := &fakeClient{}
	f.on([]sparql.Row{row("item", dicaprioEntity)}, "wdt:P161 ?item", `LCASE("Leonardo DiCaprio")`)
	f.on([]sparql.Row{row("image", "https://commons/dicaprio.jpg")}, "<"+dicaprioEntity+"> wdt:P18")
	f.on([]sparql.Row{row("item", nolanEntity)}, "wdt:P57 ?item", `LCASE("Christopher Nolan")`)
	f.on([]sparql.Row{row("image", "https://commons/nolan.jpg")}, "<"+nolanEntity+"> wdt:P18")
	f.on([]sparql.Row{row("item", nolanEntity, "itemLabel", "Christopher Nolan")}, "wdt:P58 ?item")
	f.on(labelRows("Warner Bros."), "wdt:P750 ?item")
	f.on(labelRows("Wally Pfister"), "wdt:P344 ?item")
	f.on(labelRows("Lee Smith"), "wdt:P1040 ?item")
	f.on(labelRows("Guy Hendrix Dyas"), "wdt:P2554 ?item")
	f.on(labelRows("Jeffrey Kurland"), "wdt:P2515 ?item")
	f.on(labelRows("Hans Zimmer"), "wdt:P86 ?item")
	f.on(labelRows("Emma Thomas", "Christopher Nolan"), "wdt:P162 ?item")
	f.on([]sparql.Row{
		row("score", "87%", "sourceLabel", "Rotten Tomatoes"),
		row("score", "74/100", "sourceLabel", "Metacritic"),
		row("score", "9/10"),
	}, "p:P444 ?statement")
	f.on(labelRows("United States of America", "United Kingdom"), "wdt:P495 ?item")
	f.on(labelRows("Academy Award for Best Cinematography"), "wdt:P166 ?item")
	f.on(labelRows("Tangier", "Paris"), "wdt:P915 ?item")
	return f
}

func TestAggregatorEnrich(t *testing.T) {
	m := mappedInception(t)
	agg := NewAggregator(wikidataFake(), fakeRatings{agg: domain.RatingAggregate{Average: 4.5, Count: 2}}, discardLogger())

	agg.Enrich(context.Background(), &m)

	require.Len(t, m.Stars, 2)
	assert.Equal(t, domain.Person{Name: "Leonardo DiCaprio", ExternalURI: dicaprioEntity, ImageURL: "https://commons/dicaprio.jpg"}, m.Stars[0])
	assert.Equal(t, domain.Person{Name: "Elliot Page"}, m.Stars[1])
	assert.Equal(t, domain.Person{Name: "Christopher Nolan", ExternalURI: nolanEntity, ImageURL: "https://commons/nolan.jpg"}, m.Director)
	assert.Equal(t, []domain.Person{{Name: "Christopher Nolan", ExternalURI: nolanEntity, ImageURL: "https://commons/nolan.jpg"}}, m.Screenwriters)
	assert.Equal(t, []string{"Warner Bros."}, m.Distributors)
	assert.Equal(t, []string{"Wally Pfister"}, m.Crew.Photography)
	assert.Equal(t, []string{"Lee Smith"}, m.Crew.Editor)
	assert.Equal(t, []string{"Guy Hendrix Dyas"}, m.Crew.ProductionDesign)
	assert.Equal(t, []string{"Jeffrey Kurland"}, m.Crew.CostumeDesign)
	assert.Equal(t, []string{"Hans Zimmer"}, m.Crew.Composer)
	assert.Equal(t, []string{"Emma Thomas", "Christopher Nolan"}, m.Crew.Producer)
	assert.Equal(t, []string{"United States of America", "United Kingdom"}, m.CountriesOfOrigin)
	assert.Equal(t, []string{"Academy Award for Best Cinematography"}, m.Awards)
	assert.Equal(t, []string{"Tangier", "Paris"}, m.FilmingLocations)
	assert.Equal(t, "2hours 28minutes", m.RunningTime)
	assert.Equal(t, "https://img/poster.jpg", m.PhotoURL)

	assert.Equal(t, []domain.Review{
		{Source: "Rotten Tomatoes", Score: "87%"},
		{Source: "Metacritic", Score: "74/100"},
		{Source: unknownReviewSource, Score: "9/10"},
		{Source: IMDbSource, Score: "8.8/10"},
		{Source: CommunitySource, Score: "4.5/5 (2 ratings)"},
	}, m.Reviews)
}

func TestAggregatorIsolatesFailingSteps(t *testing.T) {
	boom := errors.New("wikidata unreachable")
	remote := &fakeClient{}
	remote.fail(boom, "wdt:P161 ?item")
	remote.fail(boom, "wdt:P57 ?item")
	remote.fail(boom, "wdt:P750 ?item")
	for _, rule := range wikidataFake().rules {
		remote.rules = append(remote.rules, rule)
	}

	m := mappedInception(t)
	NewAggregator(remote, fakeRatings{err: boom}, discardLogger()).Enrich(context.Background(), &m)

	assert.Equal(t, []domain.Person{{Name: "Leonardo DiCaprio"}, {Name: "Elliot Page"}}, m.Stars)
	assert.Equal(t, domain.Person{Name: "Christopher Nolan"}, m.Director)
	assert.Equal(t, []string{}, m.Distributors)

	assert.Equal(t, []string{"Action", "Sci-Fi"}, m.Genres)
	assert.Equal(t, []string{"Hans Zimmer"}, m.Crew.Composer)
	assert.Len(t, m.Reviews, 4)
	assert.Equal(t, []string{"Tangier", "Paris"}, m.FilmingLocations)
	assert.Equal(t, "2hours 28minutes", m.RunningTime)
}

func TestAggregatorReviewsFallBackToLocalRating(t *testing.T) {
	remote := (&fakeClient{}).fail(errors.New("timeout"), "p:P444")
	m := mappedInception(t)
	NewAggregator(remote, nil, discardLogger()).Enrich(context.Background(), &m)

	assert.Equal(t, []domain.Review{{Source: IMDbSource, Score: "8.8/10"}}, m.Reviews)
}

func TestAggregatorWithoutWikidataEntity(t *testing.T) {
	r := fullDetailRow()
	delete(r, "wikidataUri")
	delete(r, "posterLink")
	m, err := MapDetail(row(toRow(r)...))
	require.NoError(t, err)

	remote := &fakeClient{}
	NewAggregator(remote, nil, discardLogger()).Enrich(context.Background(), &m)

	assert.Empty(t, remote.queries, "no remote query without an entity")
	assert.Equal(t, []domain.Person{{Name: "Leonardo DiCaprio"}, {Name: "Elliot Page"}}, m.Stars)
	assert.Equal(t, []string{}, m.Awards)
	assert.Equal(t, []domain.Review{{Source: IMDbSource, Score: "8.8/10"}}, m.Reviews)
	assert.Equal(t, "https://img/wiki.jpg", m.PhotoURL)
}

func TestAggregatorPersonWithoutImage(t *testing.T) {
	remote := &fakeClient{}
	remote.on([]sparql.Row{row("item", dicaprioEntity)}, "wdt:P161 ?item", `LCASE("Leonardo DiCaprio")`)

	m := mappedInception(t)
	NewAggregator(remote, nil, discardLogger()).Enrich(context.Background(), &m)

	assert.Equal(t, domain.Person{Name: "Leonardo DiCaprio", ExternalURI: dicaprioEntity}, m.Stars[0])
	assert.Equal(t, 1, remote.count("<"+dicaprioEntity+"> wdt:P18"))
}

func TestMergeInternalRating(t *testing.T) {
	existing := []domain.Review{{Source: "IMDb", Score: "8.8/10"}}
	assert.Equal(t, existing, mergeInternalRating(existing, "8.8"))
	assert.Empty(t, mergeInternalRating(nil, Placeholder("rating")))
	assert.Equal(t, []domain.Review{{Source: IMDbSource, Score: "7/10"}}, mergeInternalRating(nil, " 7 "))
}
