package domain

import "time"

// Rating represents a single visitor's rating for a movie. MovieID is the
// movie's IRI in the local catalog.
type Rating struct {
	MovieID   string
	RaterID   string
	Value     float32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatingAggregate provides average and count for a movie's ratings.
type RatingAggregate struct {
	Average float32
	Count   int64
}
