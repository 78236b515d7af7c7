package matching

import (
	"fmt"
	"strings"

	"github.com/utkarshgupta137/httpmock/internal/model"
)

// genericMatchScalar matches a single required value against a single
// actual value with an "equals" comparator. It is the Source/Target/
// Comparator triple collapsed to its simplest case: one source, one target,
// one comparator.
func genericMatchScalar(title, expected, actual string) compare {
	return compareEquals(title, expected, actual)
}

// genericMatchSet runs one comparator (contains or matches) over every
// element of a required set against a single actual value. Every element
// must pass, and every element's result is kept so a Rejection can report a
// separate Mismatch per failing item.
func genericMatchSet(title string, needles []string, actual string, op func(title, needle, actual string) compare) []compare {
	results := make([]compare, 0, len(needles))
	for _, needle := range needles {
		results = append(results, op(title, needle, actual))
	}
	return results
}

// genericMatchKV matches a required set of (name, value) pairs against an
// actual ordered list of (name, value) pairs: every required pair must be
// present in actual by name (optionally case-insensitively), with an equal
// value. Extra entries in actual that were not required are ignored.
func genericMatchKV(title string, required, actual []model.KV, nameEqual func(a, b string) bool) []compare {
	results := make([]compare, 0, len(required))
	for _, want := range required {
		var found bool
		var gotValue string
		for _, have := range actual {
			if nameEqual(want.Name, have.Name) {
				found = true
				gotValue = have.Value
				if have.Value == want.Value {
					break
				}
			}
		}
		if !found {
			results = append(results, compare{Mismatch: &model.Mismatch{
				Title:   title,
				Message: fmt.Sprintf("%s %q: expected %q, but it was not present", title, want.Name, want.Value),
				Reason: &model.SimpleDiffResult{
					Expected: want.Value, Actual: "(missing)", OperationName: "equals",
				},
				Score: 100,
			}})
			continue
		}
		results = append(results, compareEquals(fmt.Sprintf("%s %q", title, want.Name), want.Value, gotValue))
	}
	return results
}

// FacetResult is the outcome of matching one named facet (method, path,
// query, ...) of a Requirements against a Request.
type FacetResult struct {
	Facet      string
	Mismatches []model.Mismatch
}

// MatchRequirements evaluates every facet requirements sets against r
// without short-circuiting (so a Rejection can report every failing facet,
// not just the first), and reports whether every facet passed.
func MatchRequirements(req *model.Requirements, r *model.Request) (matched bool, facets []FacetResult) {
	matched = true

	add := func(facet string, results ...compare) {
		var mismatches []model.Mismatch
		for _, res := range results {
			if !res.Matched {
				matched = false
				mismatches = append(mismatches, *res.Mismatch)
			}
		}
		if len(mismatches) > 0 {
			facets = append(facets, FacetResult{Facet: facet, Mismatches: mismatches})
		}
	}

	if req.Method != "" {
		add("method", genericMatchScalar("method", req.Method, r.Method))
	}
	if req.Path != "" {
		add("path", genericMatchScalar("path", req.Path, r.Path))
	}
	if len(req.PathContains) > 0 {
		add("path_contains", genericMatchSet("path_contains", req.PathContains, r.Path, compareContains)...)
	}
	if len(req.PathMatches) > 0 {
		add("path_matches", genericMatchSet("path_matches", req.PathMatches, r.Path, compareMatches)...)
	}
	if len(req.Query) > 0 {
		add("query", genericMatchKV("query", req.Query, r.Query, func(a, b string) bool { return a == b })...)
	}
	if len(req.Headers) > 0 {
		add("headers", genericMatchKV("header", req.Headers, r.Headers, strings.EqualFold)...)
	}
	if len(req.Cookies) > 0 {
		cookies := DecodeCookies(r.Header("Cookie"))
		add("cookies", genericMatchKV("cookie", req.Cookies, cookies, strings.EqualFold)...)
	}
	if req.BodyEquals != nil {
		add("body_equals", genericMatchScalar("body", *req.BodyEquals, r.BodyString()))
	}
	if len(req.BodyContains) > 0 {
		add("body_contains", genericMatchSet("body_contains", req.BodyContains, r.BodyString(), compareContains)...)
	}
	if len(req.BodyMatches) > 0 {
		add("body_matches", genericMatchSet("body_matches", req.BodyMatches, r.BodyString(), compareMatches)...)
	}
	if len(req.BodyJSONEquals) > 0 {
		add("body_json_equals", compareJSONEquals("body", req.BodyJSONEquals, r.Body()))
	}
	if len(req.BodyJSONIncludes) > 0 {
		add("body_json_includes", compareJSONIncludes("body", req.BodyJSONIncludes, r.Body()))
	}

	return matched, facets
}
