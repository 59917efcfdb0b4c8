package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCanned(t *testing.T) []cannedResponse {
	t.Helper()
	file, err := os.ReadFile("testdata/mock-sparql.json")
	require.NoError(t, err)
	var canned []cannedResponse
	require.NoError(t, json.Unmarshal(file, &canned))
	return canned
}

func post(h http.Handler, query string) *httptest.ResponseRecorder {
	form := url.Values{"query": {query}}
	req := httptest.NewRequest(http.MethodPost, "/repositories/movies", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCannedResponses(t *testing.T) {
	h := newHandler(loadCanned(t))

	rec := post(h, "SELECT ... VALUES ?movies { <http://nama-kelompok.org/data/inception> } ...")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, resultsContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"Inception"`)

	rec = post(h, "SELECT ... VALUES ?movies { <http://nama-kelompok.org/data/unknown> } ...")
	assert.Contains(t, rec.Body.String(), `"bindings": []`)

	rec = post(h, "SELECT ?item WHERE { <x> wdt:P166 ?item . }")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUnmatchedQueries(t *testing.T) {
	h := newHandler(nil)

	rec := post(h, "ASK {}")
	assert.JSONEq(t, string(askTrue), rec.Body.String())

	rec = post(h, "SELECT ?s WHERE { ?s ?p ?o }")
	assert.JSONEq(t, string(emptySelect), rec.Body.String())

	rec = post(h, "   ")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
