package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Clark-Hu/filmgraph/internal/catalog"
	"github.com/Clark-Hu/filmgraph/internal/query"
)

const maxRequestBody = 1 << 20 // 1 MiB

var errInvalidPage = errors.New("invalid page")

type errorResponse struct {
	Error string `json:"error"`
}

type movieIDResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.render(w, "landing.html", nil)
}

func (s *Server) handleMain(w http.ResponseWriter, r *http.Request) {
	s.render(w, "main.html", mainPage{Search: strings.TrimSpace(r.URL.Query().Get("search"))})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := buildSearchParams(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := s.catalog.Search(r.Context(), params)
	if err != nil {
		s.logger.Error("search movies failed", "text", params.Text, "genre", params.Genre, "page", params.Page, "error", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, page)
}

// buildSearchParams reads movie, genre, sort and page from the query string.
// An absent page means the first one.
func buildSearchParams(values url.Values) (query.SearchParams, error) {
	params := query.SearchParams{
		Text:  strings.TrimSpace(values.Get("movie")),
		Genre: strings.TrimSpace(values.Get("genre")),
		Sort:  string(query.ParseSortKey(values.Get("sort"))),
		Page:  1,
	}
	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return params, errInvalidPage
		}
		params.Page = page
	}
	return params, nil
}

// handleMovie sends browsers to the detail page and answers other clients
// with the bare identifier.
func (s *Server) handleMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if isBrowser(r) {
		http.Redirect(w, r, "/movie/detail/"+url.PathEscape(id), http.StatusFound)
		return
	}
	s.respondJSON(w, http.StatusOK, movieIDResponse{ID: id})
}

func isBrowser(r *http.Request) bool {
	return strings.Contains(r.UserAgent(), "Mozilla")
}

func (s *Server) handleMovieDetail(w http.ResponseWriter, r *http.Request) {
	id, err := detailIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	movie, err := s.catalog.Detail(r.Context(), id)
	if err != nil {
		s.respondCatalogError(w, id, err)
		return
	}

	if wantsJSON(r) {
		s.respondJSON(w, http.StatusOK, movie)
		return
	}
	s.render(w, "detail_movie.html", movie)
}

func detailIDParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "*")
	if raw == "" {
		return "", fmt.Errorf("missing movie id")
	}
	id, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("invalid movie id")
	}
	return id, nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (s *Server) respondCatalogError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, catalog.ErrInvalidID):
		s.respondError(w, http.StatusBadRequest, "invalid movie id")
	default:
		s.logger.Error("load movie failed", "movie", id, "error", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error("failed to encode response", "error", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusUnprocessableEntity, "malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusUnprocessableEntity, "request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "unable to parse request body")
	}
}
