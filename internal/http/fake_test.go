package httpserver

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/Clark-Hu/filmgraph/internal/sparql"
)

// fakeSPARQL answers with the first rule whose fragments all occur in the
// query. Unmatched SELECTs return no rows and unmatched ASKs answer false.
type fakeSPARQL struct {
	mu    sync.Mutex
	rules []fakeRule
	calls int
}

type fakeRule struct {
	fragments []string
	rows      []sparql.Row
	boolean   *bool
	err       error
}

func (f *fakeSPARQL) on(rows []sparql.Row, fragments ...string) *fakeSPARQL {
	f.rules = append(f.rules, fakeRule{fragments: fragments, rows: rows})
	return f
}

func (f *fakeSPARQL) ask(answer bool, fragments ...string) *fakeSPARQL {
	f.rules = append(f.rules, fakeRule{fragments: fragments, boolean: &answer})
	return f
}

func (f *fakeSPARQL) fail(err error, fragments ...string) *fakeSPARQL {
	f.rules = append(f.rules, fakeRule{fragments: fragments, err: err})
	return f
}

func (f *fakeSPARQL) Query(_ context.Context, q string) (*sparql.Results, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, rule := range f.rules {
		if matches(q, rule.fragments) {
			if rule.err != nil {
				return nil, rule.err
			}
			return &sparql.Results{Rows: rule.rows, Boolean: rule.boolean}, nil
		}
	}
	if strings.Contains(q, "ASK") {
		no := false
		return &sparql.Results{Rows: []sparql.Row{}, Boolean: &no}, nil
	}
	return &sparql.Results{Rows: []sparql.Row{}}, nil
}

func matches(q string, fragments []string) bool {
	for _, f := range fragments {
		if !strings.Contains(q, f) {
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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
