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

// Service answers search and detail requests from the local catalog,
// enriching details through the Aggregator.
type Service struct {
	local      sparql.Client
	aggregator *Aggregator
	logger     *slog.Logger
}

// NewService wires a Service. aggregator may be nil to skip enrichment.
func NewService(local sparql.Client, aggregator *Aggregator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{local: local, aggregator: aggregator, logger: logger}
}

// Search runs a paginated search. The query asks for one row beyond the page
// size; its presence sets HasNextPage and the row itself is dropped.
func (s *Service) Search(ctx context.Context, params query.SearchParams) (domain.SearchPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}

	res, err := s.local.Query(ctx, query.Search(params))
	if err != nil {
		return domain.SearchPage{}, fmt.Errorf("search movies: %w", err)
	}

	rows := res.Rows
	page := domain.SearchPage{CurrentPage: params.Page}
	if len(rows) > query.PageSize {
		page.HasNextPage = true
		rows = rows[:query.PageSize]
	}

	page.Movies = make([]domain.MovieSummary, 0, len(rows))
	for _, row := range rows {
		movie, err := MapSummary(row)
		if err != nil {
			return domain.SearchPage{}, err
		}
		page.Movies = append(page.Movies, movie)
	}
	return page, nil
}

// Detail loads one movie by local id or full IRI and assembles its view
// model. Zero rows yields ErrNotFound.
func (s *Service) Detail(ctx context.Context, id string) (domain.MovieDetail, error) {
	uri := query.ExpandID(id)
	q, err := query.Detail(uri)
	if err != nil {
		if errors.Is(err, query.ErrInvalidIRI) {
			return domain.MovieDetail{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
		return domain.MovieDetail{}, err
	}

	res, err := s.local.Query(ctx, q)
	if err != nil {
		return domain.MovieDetail{}, fmt.Errorf("load movie %s: %w", uri, err)
	}
	if res.Empty() {
		return domain.MovieDetail{}, ErrNotFound
	}

	movie, err := MapDetail(res.Rows[0])
	if err != nil {
		return domain.MovieDetail{}, err
	}

	if s.aggregator != nil {
		s.aggregator.Enrich(ctx, &movie)
	} else {
		movie.RunningTime = FormatRunningTime(movie.RunningTime)
	}
	s.logger.Debug("movie detail assembled", "movie", movie.ID, "stars", len(movie.Stars), "reviews", len(movie.Reviews))
	return movie, nil
}

// Resolve expands id to a movie IRI and confirms the movie exists.
func (s *Service) Resolve(ctx context.Context, id string) (string, error) {
	uri := query.ExpandID(id)
	q, err := query.Exists(uri)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	res, err := s.local.Query(ctx, q)
	if err != nil {
		return "", fmt.Errorf("check movie %s: %w", uri, err)
	}
	if res.Boolean == nil || !*res.Boolean {
		return "", ErrNotFound
	}
	return uri, nil
}
