package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Clark-Hu/filmgraph/internal/domain"
	"github.com/Clark-Hu/filmgraph/internal/query"
	"github.com/Clark-Hu/filmgraph/internal/sparql"
)

const (
	// PlaceholderPoster is the static asset used when a movie has no poster.
	PlaceholderPoster = "/static/user/images/placeholder.svg"
	// UnknownYear is shown in search results without a release year.
	UnknownYear = "Unknown"

	placeholderPrefix = "No data for "
)

// Variables projected by the search query.
const (
	varMovieID      = "movieId"
	varMovieName    = "movieName"
	varUniquePoster = "uniquePosterLink"
)

// Placeholder returns the user-facing text for a missing attribute.
func Placeholder(attr string) string {
	return placeholderPrefix + attr
}

// IsPlaceholder reports whether s was produced by Placeholder.
func IsPlaceholder(s string) bool {
	return strings.HasPrefix(s, placeholderPrefix)
}

// MapSummary converts one search row into a MovieSummary.
func MapSummary(row sparql.Row) (domain.MovieSummary, error) {
	id, ok := row.Value(varMovieID)
	if !ok || id == "" {
		return domain.MovieSummary{}, fmt.Errorf("%w: missing %s", ErrMalformedRow, varMovieID)
	}
	name, ok := row.Value(varMovieName)
	if !ok {
		return domain.MovieSummary{}, fmt.Errorf("%w: missing %s", ErrMalformedRow, varMovieName)
	}
	return domain.MovieSummary{
		ID:          id,
		Name:        name,
		PosterURL:   valueOr(row, varUniquePoster, PlaceholderPoster),
		ReleaseYear: valueOr(row, query.VarReleaseYear, UnknownYear),
	}, nil
}

// detailRow reads optional attributes of the detail row, substituting
// placeholders for anything unbound.
type detailRow sparql.Row

func (r detailRow) text(attr string) string {
	return valueOr(sparql.Row(r), attr, Placeholder(attr))
}

func (r detailRow) number(attr string) domain.Value {
	raw, ok := sparql.Row(r).Value(attr)
	if !ok {
		return domain.TextValue(Placeholder(attr))
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
		return domain.IntValue(n)
	}
	return domain.TextValue(raw)
}

func (r detailRow) date(attr string) string {
	raw, ok := sparql.Row(r).Value(attr)
	if !ok {
		return Placeholder(attr)
	}
	return unwrapTypedLiteral(raw)
}

func (r detailRow) list(attr string) []string {
	raw, ok := sparql.Row(r).Value(attr)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, query.ListSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MapDetail converts the primary detail row into a MovieDetail. Facets that
// come from the knowledge graph are left at their defaults for the
// Aggregator to fill.
func MapDetail(row sparql.Row) (domain.MovieDetail, error) {
	id, ok := row.Value(query.VarMovie)
	if !ok || id == "" {
		return domain.MovieDetail{}, fmt.Errorf("%w: missing %s", ErrMalformedRow, query.VarMovie)
	}
	title, ok := row.Value(query.VarTitle)
	if !ok {
		return domain.MovieDetail{}, fmt.Errorf("%w: missing %s", ErrMalformedRow, query.VarTitle)
	}

	r := detailRow(row)
	genres := r.list(query.VarGenres)
	if len(genres) == 0 {
		genres = []string{Placeholder(query.VarGenres)}
	}
	runningTime := r.text(query.VarRunningTime)

	m := domain.MovieDetail{
		ID:                 id,
		Title:              title,
		DirectorName:       r.text(query.VarDirector),
		Genres:             genres,
		Rating:             r.text(query.VarRating),
		MetaScore:          r.text(query.VarMetaScore),
		Synopsis:           r.text(query.VarInformation),
		PosterURL:          r.text(query.VarPosterLink),
		PosterURLWikipedia: r.text(query.VarPosterLinkWiki),
		ReleaseYear:        r.text(query.VarReleaseYear),
		RunningTimeMinutes: r.number(query.VarRunningTime),
		RunningTime:        runningTime,
		StarNames:          r.list(query.VarStars),
		Votes:              r.number(query.VarVotes),
		WikidataURI:        r.text(query.VarWikidataURI),
		Distributor:        r.text(query.VarDistributor),
		Budget:             r.number(query.VarBudget),
		Certificate:        r.text(query.VarCertificate),
		DomesticOpening:    r.number(query.VarDomesticOpening),
		DomesticSales:      r.number(query.VarDomesticSales),
		InternationalSales: r.number(query.VarInternationalSales),
		License:            r.text(query.VarLicense),
		ReleaseDate:        r.date(query.VarReleaseDate),
	}
	applyFacetDefaults(&m)
	return m, nil
}

// applyFacetDefaults gives every enriched facet its empty or name-only value,
// which is what the page shows when enrichment fails.
func applyFacetDefaults(m *domain.MovieDetail) {
	m.Director = domain.Person{Name: m.DirectorName}
	m.Stars = make([]domain.Person, 0, len(m.StarNames))
	for _, name := range m.StarNames {
		m.Stars = append(m.Stars, domain.Person{Name: name})
	}
	m.Distributors = []string{}
	m.Screenwriters = []domain.Person{}
	m.Crew = domain.Crew{
		Photography:      []string{},
		Editor:           []string{},
		ProductionDesign: []string{},
		CostumeDesign:    []string{},
		Composer:         []string{},
		Producer:         []string{},
	}
	m.Reviews = []domain.Review{}
	m.CountriesOfOrigin = []string{}
	m.Awards = []string{}
	m.FilmingLocations = []string{}
	m.PhotoURL = ResolvePoster(m.PosterURL, m.PosterURLWikipedia)
}

// unwrapTypedLiteral turns `"2010-07-16"^^xsd:date` into `2010-07-16`.
func unwrapTypedLiteral(raw string) string {
	lexical, _, _ := strings.Cut(raw, "^^")
	return strings.Trim(lexical, `"`)
}

func valueOr(row sparql.Row, name, fallback string) string {
	if v, ok := row.Value(name); ok {
		return v
	}
	return fallback
}
