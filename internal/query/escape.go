package query

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidIRI is returned when a value cannot be safely written as an IRI
// reference in query text.
var ErrInvalidIRI = errors.New("query: invalid IRI")

var literalReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// EscapeLiteral escapes s for use inside a double-quoted SPARQL string.
func EscapeLiteral(s string) string {
	return literalReplacer.Replace(s)
}

// RegexLiteral turns free text into a quoted-safe pattern that matches the
// text literally inside a SPARQL REGEX call.
func RegexLiteral(s string) string {
	return EscapeLiteral(regexp.QuoteMeta(s))
}

// ValidIRI reports whether s is an absolute http(s) IRI free of the
// characters that would terminate an IRIREF.
func ValidIRI(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r <= 0x20 || strings.ContainsRune("<>\"{}|^`\\", r) {
			return false
		}
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func iriRef(s string) (string, error) {
	if !ValidIRI(s) {
		return "", ErrInvalidIRI
	}
	return "<" + s + ">", nil
}
