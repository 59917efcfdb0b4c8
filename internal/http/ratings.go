package httpserver

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Clark-Hu/filmgraph/internal/repository"
)

var allowedRatings = map[float32]struct{}{
	0.5: {}, 1.0: {}, 1.5: {}, 2.0: {}, 2.5: {},
	3.0: {}, 3.5: {}, 4.0: {}, 4.5: {}, 5.0: {},
}

type ratingRequest struct {
	Rating float32 `json:"rating"`
}

type ratingResponse struct {
	MovieID string  `json:"movieId"`
	RaterID string  `json:"raterId"`
	Rating  float32 `json:"rating"`
}

type ratingAggregateResponse struct {
	MovieID string  `json:"movieId"`
	Average float32 `json:"average"`
	Count   int64   `json:"count"`
}

// resolveMovie maps the {id} route parameter to a known movie IRI, writing
// the error response itself when it cannot.
func (s *Server) resolveMovie(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	uri, err := s.catalog.Resolve(r.Context(), id)
	if err != nil {
		s.respondCatalogError(w, id, err)
		return "", false
	}
	return uri, true
}

func raterID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Rater-Id"))
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	rater := raterID(r)
	if rater == "" {
		s.respondError(w, http.StatusUnauthorized, "missing X-Rater-Id header")
		return
	}

	uri, ok := s.resolveMovie(w, r)
	if !ok {
		return
	}

	var req ratingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if _, ok := allowedRatings[req.Rating]; !ok {
		s.respondError(w, http.StatusUnprocessableEntity, "rating must be one of {0.5, 1.0, ..., 5.0}")
		return
	}

	rating, inserted, err := s.ratings.Upsert(r.Context(), repository.RatingUpsertParams{
		MovieID: uri,
		RaterID: rater,
		Value:   req.Rating,
	})
	if err != nil {
		s.logger.Error("upsert rating failed", "movie", uri, "rater", rater, "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to process rating")
		return
	}

	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	s.respondJSON(w, status, ratingResponse{
		MovieID: rating.MovieID,
		RaterID: rating.RaterID,
		Rating:  rating.Value,
	})
}

func (s *Server) handleDeleteRating(w http.ResponseWriter, r *http.Request) {
	rater := raterID(r)
	if rater == "" {
		s.respondError(w, http.StatusUnauthorized, "missing X-Rater-Id header")
		return
	}

	uri, ok := s.resolveMovie(w, r)
	if !ok {
		return
	}

	if err := s.ratings.Delete(r.Context(), uri, rater); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "not found")
			return
		}
		s.logger.Error("delete rating failed", "movie", uri, "rater", rater, "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to delete rating")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetRating(w http.ResponseWriter, r *http.Request) {
	uri, ok := s.resolveMovie(w, r)
	if !ok {
		return
	}

	agg, err := s.ratings.Aggregate(r.Context(), uri)
	if err != nil {
		s.logger.Error("aggregate rating failed", "movie", uri, "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to fetch rating")
		return
	}

	s.respondJSON(w, http.StatusOK, ratingAggregateResponse{
		MovieID: uri,
		Average: roundToOneDecimal(agg.Average),
		Count:   agg.Count,
	})
}

func roundToOneDecimal(value float32) float32 {
	return float32(math.Round(float64(value)*10) / 10.0)
}
