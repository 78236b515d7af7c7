package matching

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/utkarshgupta137/httpmock/internal/model"
)

// compare is what every comparator returns: whether the facet passed, and,
// when it did not, the Mismatch explaining why. Matched comparators never
// allocate a Mismatch (invariant I4: a matched facet scores 0 and carries no
// diff).
type compare struct {
	Matched  bool
	Mismatch *model.Mismatch
}

// compareEquals implements the "equals" comparator: exact string equality.
func compareEquals(title, expected, actual string) compare {
	if expected == actual {
		return compare{Matched: true}
	}
	return compare{Mismatch: &model.Mismatch{
		Title:   title,
		Message: fmt.Sprintf("%s: expected %q, got %q", title, expected, actual),
		Reason: &model.SimpleDiffResult{
			Expected: expected, Actual: actual, OperationName: "equals",
		},
		Detailed: detailIfShort(expected, actual),
		Score:    distanceFor(expected, actual),
	}}
}

// compareContains implements the "contains" comparator: actual must contain
// needle as a substring.
func compareContains(title, needle, actual string) compare {
	if strings.Contains(actual, needle) {
		return compare{Matched: true}
	}
	return compare{Mismatch: &model.Mismatch{
		Title:   title,
		Message: fmt.Sprintf("%s: expected to contain %q, got %q", title, needle, actual),
		Reason: &model.SimpleDiffResult{
			Expected: needle, Actual: actual, OperationName: "contains",
		},
		Detailed: detailIfShort(needle, actual),
		Score:    distanceFor(needle, actual),
	}}
}

// compareMatches implements the "matches" comparator: actual must match the
// regex pattern. An invalid pattern never matches — it is reported as part
// of the Mismatch rather than failing the whole request (malformed mock
// configuration surfaces at registration time as a ValidationError; a
// pattern that somehow slipped past that check degrades to an always-miss
// here instead of panicking the engine).
func compareMatches(title, pattern, actual string) compare {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return compare{Mismatch: &model.Mismatch{
			Title:   title,
			Message: fmt.Sprintf("%s: pattern %q does not compile: %s", title, pattern, err),
			Reason: &model.SimpleDiffResult{
				Expected: pattern, Actual: actual, OperationName: "matches",
			},
			Score: 100,
		}}
	}
	if re.MatchString(actual) {
		return compare{Matched: true}
	}
	return compare{Mismatch: &model.Mismatch{
		Title:   title,
		Message: fmt.Sprintf("%s: expected to match %q, got %q", title, pattern, actual),
		Reason: &model.SimpleDiffResult{
			Expected: pattern, Actual: actual, OperationName: "matches",
		},
		Detailed: detailIfShort(pattern, actual),
		Score:    distanceFor(pattern, actual),
	}}
}

// compareJSONEquals implements "equals_json": the body, parsed as JSON, must
// be structurally equal to expected.
func compareJSONEquals(title string, expected []byte, actualBody []byte) compare {
	expVal, expErr := DecodeJSON(expected)
	actVal, actErr := DecodeJSON(actualBody)
	if expErr != nil || actErr != nil {
		return jsonDecodeMismatch(title, "equals_json", actualBody, actErr)
	}
	if jsonEqual(expVal, actVal) {
		return compare{Matched: true}
	}
	expStr, actStr := string(expected), string(actualBody)
	return compare{Mismatch: &model.Mismatch{
		Title:   title,
		Message: fmt.Sprintf("%s: JSON body did not equal expected document", title),
		Reason: &model.SimpleDiffResult{
			Expected: expStr, Actual: actStr, OperationName: "equals_json",
		},
		Detailed: detailIfShort(expStr, actStr),
		Score:    distanceFor(expStr, actStr),
	}}
}

// compareJSONIncludes implements "includes_json": the body, parsed as JSON,
// must contain expected as a deep subset.
func compareJSONIncludes(title string, expected []byte, actualBody []byte) compare {
	expVal, expErr := DecodeJSON(expected)
	actVal, actErr := DecodeJSON(actualBody)
	if expErr != nil || actErr != nil {
		return jsonDecodeMismatch(title, "includes_json", actualBody, actErr)
	}
	if jsonIncludes(expVal, actVal) {
		return compare{Matched: true}
	}
	expStr, actStr := string(expected), string(actualBody)
	return compare{Mismatch: &model.Mismatch{
		Title:   title,
		Message: fmt.Sprintf("%s: JSON body did not include expected subset", title),
		Reason: &model.SimpleDiffResult{
			Expected: expStr, Actual: actStr, OperationName: "includes_json",
		},
		Detailed: detailIfShort(expStr, actStr),
		Score:    distanceFor(expStr, actStr),
	}}
}

// jsonDecodeMismatch reports a non-fatal decode failure (malformed JSON on
// either side) as a Mismatch rather than aborting the match — per the
// DecodeError policy, a body that fails to parse as JSON simply never
// satisfies a JSON comparator.
func jsonDecodeMismatch(title, op string, actualBody []byte, actErr error) compare {
	msg := fmt.Sprintf("%s: expected JSON document is not valid JSON", title)
	if actErr != nil {
		msg = fmt.Sprintf("%s: request body is not valid JSON: %s", title, actErr)
	}
	return compare{Mismatch: &model.Mismatch{
		Title:   title,
		Message: msg,
		Reason: &model.SimpleDiffResult{
			Expected: "<valid json>", Actual: string(actualBody), OperationName: op,
		},
		Score: 100,
	}}
}

// jsonEqual compares two decoded JSON values for structural equality: object
// key order does not matter, but array element order does (arrays are
// compared positionally).
func jsonEqual(a, b interface{}) bool {
	return reflect.DeepEqual(normalizeJSON(a), normalizeJSON(b))
}

// jsonIncludes reports whether actual contains expected as a deep subset:
// every object key in expected must be present in actual with an equal
// value (recursively), and every element of an expected array must appear,
// in order, as a prefix match of actual's elements at the same positions.
func jsonIncludes(expected, actual interface{}) bool {
	switch exp := expected.(type) {
	case map[string]interface{}:
		act, ok := actual.(map[string]interface{})
		if !ok {
			return false
		}
		for k, v := range exp {
			av, present := act[k]
			if !present || !jsonIncludes(v, av) {
				return false
			}
		}
		return true
	case []interface{}:
		act, ok := actual.([]interface{})
		if !ok || len(act) < len(exp) {
			return false
		}
		for i, v := range exp {
			if !jsonIncludes(v, act[i]) {
				return false
			}
		}
		return true
	default:
		return jsonEqual(expected, actual)
	}
}

// normalizeJSON makes reflect.DeepEqual comparisons between values decoded
// from two independent parses well-defined: map types and numeric types can
// otherwise differ in ways that are immaterial to JSON equality.
func normalizeJSON(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, e := range val {
			out[k] = normalizeJSON(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, e := range val {
			out[i] = normalizeJSON(e)
		}
		return out
	case int64:
		return float64(val)
	default:
		return val
	}
}
