package catalog

import "errors"

var (
	// ErrNotFound indicates the primary movie query matched nothing.
	ErrNotFound = errors.New("catalog: movie not found")
	// ErrInvalidID indicates a movie id that cannot be turned into an IRI.
	ErrInvalidID = errors.New("catalog: invalid movie id")
	// ErrMalformedRow indicates a result row without its mandatory bindings.
	ErrMalformedRow = errors.New("catalog: malformed result row")
)
