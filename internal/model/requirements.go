package model

import "encoding/json"

// Requirements describes a mock's expectations about an incoming request.
// Every field is optional ("don't care" when empty/nil); a request matches a
// mock iff every facet the mock sets passes its matcher (see package
// internal/matching). Fields that logically belong to the same facet (e.g.
// BodyContains and BodyMatches) may be set simultaneously — each becomes its
// own matcher and all of them must pass.
type Requirements struct {
	// Method is the exact HTTP method to require (e.g. "GET"). Empty = don't care.
	Method string

	// Path is the exact path to require. Empty = don't care.
	Path string
	// PathContains lists substrings that must all appear in the path.
	PathContains []string
	// PathMatches lists regex patterns that must all match the path.
	PathMatches []string

	// Query lists (name, value) pairs that must all be present among the
	// request's query parameters. Additional query parameters are allowed.
	Query []KV

	// Headers lists (name, value) pairs that must all be present among the
	// request's headers. Names are matched case-insensitively.
	Headers []KV

	// Cookies lists (name, value) pairs that must all be present in the
	// cookies parsed from the request's Cookie header.
	Cookies []KV

	// BodyEquals requires the body to equal this string exactly.
	BodyEquals *string
	// BodyContains lists substrings that must all appear in the body.
	BodyContains []string
	// BodyMatches lists regex patterns that must all match the body.
	BodyMatches []string
	// BodyJSONEquals requires the body, parsed as JSON, to be structurally
	// equal to this JSON document.
	BodyJSONEquals json.RawMessage
	// BodyJSONIncludes requires the body, parsed as JSON, to contain this
	// JSON document as a deep subset (every key present with an equal value;
	// arrays compared positionally).
	BodyJSONIncludes json.RawMessage
}

// IsZero reports whether no facet has been set — such a Requirements matches
// every request.
func (r *Requirements) IsZero() bool {
	if r == nil {
		return true
	}
	return r.Method == "" &&
		r.Path == "" && len(r.PathContains) == 0 && len(r.PathMatches) == 0 &&
		len(r.Query) == 0 && len(r.Headers) == 0 && len(r.Cookies) == 0 &&
		r.BodyEquals == nil && len(r.BodyContains) == 0 && len(r.BodyMatches) == 0 &&
		len(r.BodyJSONEquals) == 0 && len(r.BodyJSONIncludes) == 0
}
