package catalog

import (
	"context"
	"strings"

	"github.com/Clark-Hu/filmgraph/internal/domain"
	"github.com/Clark-Hu/filmgraph/internal/query"
)

const (
	// IMDbSource labels the rating stored in the local catalog.
	IMDbSource = "IMDb"
	// CommunitySource labels the average of visitor ratings.
	CommunitySource = "Community"

	unknownReviewSource = "Unknown source"
)

// person resolves name to a knowledge-graph entity among the values of prop,
// then to an image. Each stage that finds nothing leaves the remaining
// fields empty.
func (a *Aggregator) person(ctx context.Context, entity string, prop query.Property, name string) (domain.Person, error) {
	p := domain.Person{Name: name}

	q, err := query.EntityByLabel(entity, prop, name)
	if err != nil {
		return p, err
	}
	uri, err := a.first(ctx, q, query.VarItem)
	if err != nil || uri == "" {
		return p, err
	}
	p.ExternalURI = uri

	img, err := a.image(ctx, uri)
	if err != nil {
		return p, err
	}
	p.ImageURL = img
	return p, nil
}

func (a *Aggregator) image(ctx context.Context, entity string) (string, error) {
	if !query.ValidIRI(entity) {
		return "", nil
	}
	q, err := query.EntityImage(entity)
	if err != nil {
		return "", err
	}
	return a.first(ctx, q, query.VarImage)
}

func (a *Aggregator) labels(ctx context.Context, entity string, prop query.Property) ([]string, error) {
	q, err := query.PropertyValues(entity, prop)
	if err != nil {
		return nil, err
	}
	res, err := a.remote.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return res.Values(query.VarItemLabel), nil
}

// first returns the value of name in the first row, or "" when no row
// matched.
func (a *Aggregator) first(ctx context.Context, q, name string) (string, error) {
	res, err := a.remote.Query(ctx, q)
	if err != nil {
		return "", err
	}
	if res.Empty() {
		return "", nil
	}
	v, _ := res.Rows[0].Value(name)
	return v, nil
}

func (a *Aggregator) reviewScores(ctx context.Context, entity string) ([]domain.Review, error) {
	q, err := query.ReviewScores(entity)
	if err != nil {
		return nil, err
	}
	res, err := a.remote.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	reviews := make([]domain.Review, 0, len(res.Rows))
	for _, row := range res.Rows {
		score, ok := row.Value(query.VarScore)
		if !ok || score == "" {
			continue
		}
		source, ok := row.Value(query.VarSourceLabel)
		if !ok || source == "" {
			source = unknownReviewSource
		}
		reviews = append(reviews, domain.Review{Source: source, Score: score})
	}
	return reviews, nil
}

// mergeInternalRating appends the catalog's IMDb rating unless a review
// from IMDb is already present.
func mergeInternalRating(reviews []domain.Review, rating string) []domain.Review {
	rating = strings.TrimSpace(rating)
	if rating == "" || IsPlaceholder(rating) {
		return reviews
	}
	for _, r := range reviews {
		if strings.Contains(strings.ToLower(r.Source), strings.ToLower(IMDbSource)) {
			return reviews
		}
	}
	return append(reviews, domain.Review{Source: IMDbSource, Score: rating + "/10"})
}
