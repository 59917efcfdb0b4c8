package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Clark-Hu/filmgraph/internal/domain"
	"github.com/Clark-Hu/filmgraph/internal/query"
	"github.com/Clark-Hu/filmgraph/internal/sparql"
)

// RatingSource supplies community ratings for the reviews facet.
type RatingSource interface {
	Aggregate(ctx context.Context, movieID string) (domain.RatingAggregate, error)
}

// Aggregator fills the knowledge-graph facets of a MovieDetail. Steps run
// one after another; a failing step leaves its facet at the default set by
// MapDetail and never stops the others.
type Aggregator struct {
	remote  sparql.Client
	ratings RatingSource
	logger  *slog.Logger
}

// NewAggregator builds an Aggregator over the knowledge-graph client.
// ratings may be nil.
func NewAggregator(remote sparql.Client, ratings RatingSource, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{remote: remote, ratings: ratings, logger: logger}
}

type step struct {
	name string
	run  func(ctx context.Context, m *domain.MovieDetail) error
}

func (a *Aggregator) steps() []step {
	return []step{
		{"stars", a.enrichStars},
		{"distributors", a.listFacet(query.PropDistributedBy, func(m *domain.MovieDetail, v []string) { m.Distributors = v })},
		{"director", a.enrichDirector},
		{"screenwriters", a.enrichScreenwriters},
		{"crew", a.enrichCrew},
		{"runningTime", formatRunningTimeStep},
		{"reviews", a.enrichReviews},
		{"countries", a.listFacet(query.PropCountryOfOrigin, func(m *domain.MovieDetail, v []string) { m.CountriesOfOrigin = v })},
		{"awards", a.listFacet(query.PropAwardReceived, func(m *domain.MovieDetail, v []string) { m.Awards = v })},
		{"filmingLocations", a.listFacet(query.PropFilmingLocation, func(m *domain.MovieDetail, v []string) { m.FilmingLocations = v })},
		{"photo", resolvePhotoStep},
	}
}

// Enrich runs every step against m.
func (a *Aggregator) Enrich(ctx context.Context, m *domain.MovieDetail) {
	for _, s := range a.steps() {
		if err := s.run(ctx, m); err != nil {
			a.logger.Warn("enrichment step failed", "movie", m.ID, "step", s.name, "error", err)
		}
	}
}

// errNoEntity marks movies without a usable knowledge-graph identifier;
// remote steps treat it as "keep defaults" rather than a failure.
var errNoEntity = errors.New("catalog: movie has no knowledge-graph entity")

func entityOf(m *domain.MovieDetail) (string, error) {
	if IsPlaceholder(m.WikidataURI) || !query.ValidIRI(m.WikidataURI) {
		return "", errNoEntity
	}
	return m.WikidataURI, nil
}

func (a *Aggregator) listFacet(prop query.Property, assign func(*domain.MovieDetail, []string)) func(context.Context, *domain.MovieDetail) error {
	return func(ctx context.Context, m *domain.MovieDetail) error {
		entity, err := entityOf(m)
		if err != nil {
			return nil
		}
		labels, err := a.labels(ctx, entity, prop)
		if err != nil {
			return err
		}
		assign(m, labels)
		return nil
	}
}

func (a *Aggregator) enrichStars(ctx context.Context, m *domain.MovieDetail) error {
	entity, err := entityOf(m)
	if err != nil {
		return nil
	}
	stars := make([]domain.Person, 0, len(m.StarNames))
	var errs []error
	for _, name := range m.StarNames {
		p, err := a.person(ctx, entity, query.PropCastMember, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("star %q: %w", name, err))
		}
		stars = append(stars, p)
	}
	m.Stars = stars
	return errors.Join(errs...)
}

func (a *Aggregator) enrichDirector(ctx context.Context, m *domain.MovieDetail) error {
	if IsPlaceholder(m.DirectorName) {
		return nil
	}
	entity, err := entityOf(m)
	if err != nil {
		return nil
	}
	p, err := a.person(ctx, entity, query.PropDirector, m.DirectorName)
	m.Director = p
	return err
}

func (a *Aggregator) enrichScreenwriters(ctx context.Context, m *domain.MovieDetail) error {
	entity, err := entityOf(m)
	if err != nil {
		return nil
	}
	q, err := query.PropertyValues(entity, query.PropScreenwriter)
	if err != nil {
		return err
	}
	res, err := a.remote.Query(ctx, q)
	if err != nil {
		return err
	}
	writers := make([]domain.Person, 0, len(res.Rows))
	var errs []error
	for _, row := range res.Rows {
		uri, _ := row.Value(query.VarItem)
		name, _ := row.Value(query.VarItemLabel)
		p := domain.Person{Name: name, ExternalURI: uri}
		if img, err := a.image(ctx, uri); err != nil {
			errs = append(errs, fmt.Errorf("screenwriter %q image: %w", name, err))
		} else {
			p.ImageURL = img
		}
		writers = append(writers, p)
	}
	m.Screenwriters = writers
	return errors.Join(errs...)
}

func (a *Aggregator) enrichCrew(ctx context.Context, m *domain.MovieDetail) error {
	entity, err := entityOf(m)
	if err != nil {
		return nil
	}
	roles := []struct {
		prop query.Property
		dst  *[]string
	}{
		{query.PropDirectorOfPhoto, &m.Crew.Photography},
		{query.PropFilmEditor, &m.Crew.Editor},
		{query.PropProductionDesigner, &m.Crew.ProductionDesign},
		{query.PropCostumeDesigner, &m.Crew.CostumeDesign},
		{query.PropComposer, &m.Crew.Composer},
		{query.PropProducer, &m.Crew.Producer},
	}
	var errs []error
	for _, role := range roles {
		labels, err := a.labels(ctx, entity, role.prop)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", role.prop, err))
			continue
		}
		*role.dst = labels
	}
	return errors.Join(errs...)
}

func (a *Aggregator) enrichReviews(ctx context.Context, m *domain.MovieDetail) error {
	reviews := make([]domain.Review, 0, 4)
	var errs []error

	if entity, err := entityOf(m); err == nil {
		remote, err := a.reviewScores(ctx, entity)
		if err != nil {
			errs = append(errs, err)
		}
		reviews = append(reviews, remote...)
	}
	reviews = mergeInternalRating(reviews, m.Rating)

	if a.ratings != nil {
		agg, err := a.ratings.Aggregate(ctx, m.ID)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("community rating: %w", err))
		case agg.Count > 0:
			reviews = append(reviews, domain.Review{
				Source: CommunitySource,
				Score:  fmt.Sprintf("%.1f/5 (%d ratings)", agg.Average, agg.Count),
			})
		}
	}

	m.Reviews = reviews
	return errors.Join(errs...)
}

func formatRunningTimeStep(_ context.Context, m *domain.MovieDetail) error {
	m.RunningTime = FormatRunningTime(m.RunningTime)
	return nil
}

func resolvePhotoStep(_ context.Context, m *domain.MovieDetail) error {
	m.PhotoURL = ResolvePoster(m.PosterURL, m.PosterURLWikipedia)
	return nil
}
