package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const resultsContentType = "application/sparql-results+json"

// cannedResponse is returned for any query containing every fragment in Match.
type cannedResponse struct {
	Match  []string        `json:"match"`
	Status int             `json:"status,omitempty"`
	Result json.RawMessage `json:"result"`
}

var (
	emptySelect = json.RawMessage(`{"head":{"vars":[]},"results":{"bindings":[]}}`)
	askTrue     = json.RawMessage(`{"head":{},"boolean":true}`)
)

func main() {
	var (
		port    = flag.String("port", "7200", "port to listen on")
		data    = flag.String("data", "cmd/sparql-mock/testdata/mock-sparql.json", "path to canned responses")
		logReqs = flag.Bool("log", false, "enable request logging")
	)
	flag.Parse()

	file, err := os.ReadFile(*data)
	if err != nil {
		log.Fatalf("read mock data: %v", err)
	}

	var canned []cannedResponse
	if err := json.Unmarshal(file, &canned); err != nil {
		log.Fatalf("parse mock data: %v", err)
	}

	r := chi.NewRouter()
	if *logReqs {
		r.Use(middleware.Logger)
	}
	r.Handle("/repositories/{repo}", newHandler(canned))
	r.Handle("/sparql", newHandler(canned))

	addr := ":" + *port
	log.Printf("mock sparql endpoint listening on %s with %d canned responses", addr, len(canned))
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func newHandler(canned []cannedResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		query := r.Form.Get("query")
		if strings.TrimSpace(query) == "" {
			http.Error(w, "missing query parameter", http.StatusBadRequest)
			return
		}

		status, body := lookup(canned, query)
		w.Header().Set("Content-Type", resultsContentType)
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}
}

// lookup returns the first canned response matching query. Unmatched ASK
// queries answer true so health checks and existence checks pass.
func lookup(canned []cannedResponse, query string) (int, []byte) {
	for _, c := range canned {
		if matchesAll(query, c.Match) {
			status := c.Status
			if status == 0 {
				status = http.StatusOK
			}
			return status, c.Result
		}
	}
	if strings.Contains(query, "ASK") {
		return http.StatusOK, askTrue
	}
	return http.StatusOK, emptySelect
}

func matchesAll(query string, fragments []string) bool {
	for _, f := range fragments {
		if !strings.Contains(query, f) {
			return false
		}
	}
	return true
}
