package catalog

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/Clark-Hu/filmgraph/internal/domain"
	"github.com/Clark-Hu/filmgraph/internal/sparql"
)

// fakeClient answers queries with the first rule whose fragments all appear
// in the query text. Unmatched queries return empty results.
type fakeClient struct {
	mu      sync.Mutex
	rules   []fakeRule
	queries []string
}

type fakeRule struct {
	fragments []string
	rows      []sparql.Row
	boolean   *bool
	err       error
}

func (f *fakeClient) on(rows []sparql.Row, fragments ...string) *fakeClient {
	f.rules = append(f.rules, fakeRule{fragments: fragments, rows: rows})
	return f
}

func (f *fakeClient) ask(answer bool, fragments ...string) *fakeClient {
	f.rules = append(f.rules, fakeRule{fragments: fragments, boolean: &answer})
	return f
}

func (f *fakeClient) fail(err error, fragments ...string) *fakeClient {
	f.rules = append(f.rules, fakeRule{fragments: fragments, err: err})
	return f
}

func (f *fakeClient) Query(_ context.Context, q string) (*sparql.Results, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	for _, rule := range f.rules {
		if containsAll(q, rule.fragments) {
			if rule.err != nil {
				return nil, rule.err
			}
			return &sparql.Results{Rows: rule.rows, Boolean: rule.boolean}, nil
		}
	}
	return &sparql.Results{Rows: []sparql.Row{}}, nil
}

func (f *fakeClient) count(fragment string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, q := range f.queries {
		if strings.Contains(q, fragment) {
			n++
		}
	}
	return n
}

func containsAll(s string, fragments []string) bool {
	for _, f := range fragments {
		if !strings.Contains(s, f) {
			return false
		}
	}
	return true
}

func row(pairs ...string) sparql.Row {
	r := make(sparql.Row, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		r[pairs[i]] = sparql.Term{Type: "literal", Value: pairs[i+1]}
	}
	return r
}

type fakeRatings struct {
	agg domain.RatingAggregate
	err error
}

func (f fakeRatings) Aggregate(context.Context, string) (domain.RatingAggregate, error) {
	return f.agg, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
