package sparql

// Term is one bound value in a SPARQL 1.1 JSON result row.
type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// Row maps variable names to their bound terms. Unbound variables are absent.
type Row map[string]Term

// Value returns the lexical value of name and whether it is bound.
func (r Row) Value(name string) (string, bool) {
	t, ok := r[name]
	if !ok {
		return "", false
	}
	return t.Value, true
}

// Results is a decoded SPARQL 1.1 JSON results document.
type Results struct {
	Vars    []string
	Rows    []Row
	Boolean *bool
}

// Empty reports whether a SELECT returned no rows.
func (r *Results) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// Values collects the bound values of name across all rows, skipping
// unbound ones and duplicates while preserving order.
func (r *Results) Values(name string) []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(r.Rows))
	out := make([]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		v, ok := row.Value(name)
		if !ok || v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

type resultsPayload struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results *struct {
		Bindings []Row `json:"bindings"`
	} `json:"results"`
	Boolean *bool `json:"boolean"`
}

func convertPayload(p resultsPayload) *Results {
	res := &Results{Vars: p.Head.Vars, Boolean: p.Boolean}
	if p.Results != nil {
		res.Rows = p.Results.Bindings
	}
	if res.Rows == nil {
		res.Rows = []Row{}
	}
	return res
}
