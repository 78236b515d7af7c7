package admin

import (
	"encoding/json"
	"time"

	"github.com/utkarshgupta137/httpmock/internal/model"
)

// kvWire is the wire shape of an model.KV pair.
type kvWire struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func toKVWire(kvs []model.KV) []kvWire {
	if len(kvs) == 0 {
		return nil
	}
	out := make([]kvWire, len(kvs))
	for i, kv := range kvs {
		out[i] = kvWire{Name: kv.Name, Value: kv.Value}
	}
	return out
}

func fromKVWire(kvs []kvWire) []model.KV {
	if len(kvs) == 0 {
		return nil
	}
	out := make([]model.KV, len(kvs))
	for i, kv := range kvs {
		out[i] = model.KV{Name: kv.Name, Value: kv.Value}
	}
	return out
}

// requirementsWire is the wire shape of the "request" half of a mock
// definition posted to POST /__mocks.
type requirementsWire struct {
	Method           string          `json:"method,omitempty"`
	Path             string          `json:"path,omitempty"`
	PathContains     []string        `json:"path_contains,omitempty"`
	PathMatches      []string        `json:"path_matches,omitempty"`
	Query            []kvWire        `json:"query,omitempty"`
	Headers          []kvWire        `json:"headers,omitempty"`
	Cookies          []kvWire        `json:"cookies,omitempty"`
	BodyEquals       *string         `json:"body_equals,omitempty"`
	BodyContains     []string        `json:"body_contains,omitempty"`
	BodyMatches      []string        `json:"body_matches,omitempty"`
	BodyJSONEquals   json.RawMessage `json:"body_json_equals,omitempty"`
	BodyJSONIncludes json.RawMessage `json:"body_json_includes,omitempty"`
}

func (w requirementsWire) toModel() model.Requirements {
	return model.Requirements{
		Method:           w.Method,
		Path:             w.Path,
		PathContains:     w.PathContains,
		PathMatches:      w.PathMatches,
		Query:            fromKVWire(w.Query),
		Headers:          fromKVWire(w.Headers),
		Cookies:          fromKVWire(w.Cookies),
		BodyEquals:       w.BodyEquals,
		BodyContains:     w.BodyContains,
		BodyMatches:      w.BodyMatches,
		BodyJSONEquals:   rawOrNil(w.BodyJSONEquals),
		BodyJSONIncludes: rawOrNil(w.BodyJSONIncludes),
	}
}

// rawOrNil treats an explicit JSON null the same as an omitted field. A
// json.RawMessage field decoded from `"body_json_equals": null` holds the
// four bytes "null", which would otherwise register as a requirement that
// the body be the JSON null literal.
func rawOrNil(m json.RawMessage) json.RawMessage {
	if len(m) == 0 || string(m) == "null" {
		return nil
	}
	return m
}

func requirementsToWire(r model.Requirements) requirementsWire {
	return requirementsWire{
		Method:           r.Method,
		Path:             r.Path,
		PathContains:     r.PathContains,
		PathMatches:      r.PathMatches,
		Query:            toKVWire(r.Query),
		Headers:          toKVWire(r.Headers),
		Cookies:          toKVWire(r.Cookies),
		BodyEquals:       r.BodyEquals,
		BodyContains:     r.BodyContains,
		BodyMatches:      r.BodyMatches,
		BodyJSONEquals:   r.BodyJSONEquals,
		BodyJSONIncludes: r.BodyJSONIncludes,
	}
}

// responseWire is the wire shape of the "response" half of a mock
// definition. DelayMS is milliseconds because a time.Duration doesn't round
// trip through JSON cleanly.
type responseWire struct {
	Status  int      `json:"status"`
	Headers []kvWire `json:"headers,omitempty"`
	Body    string   `json:"body,omitempty"`
	DelayMS int64    `json:"delay_ms,omitempty"`
}

func (w responseWire) toModel() model.Response {
	return model.Response{
		Status:  w.Status,
		Headers: fromKVWire(w.Headers),
		Body:    []byte(w.Body),
		Delay:   time.Duration(w.DelayMS) * time.Millisecond,
	}
}

func responseToWire(r model.Response) responseWire {
	return responseWire{
		Status:  r.Status,
		Headers: toKVWire(r.Headers),
		Body:    string(r.Body),
		DelayMS: r.Delay.Milliseconds(),
	}
}

// definitionWire is the wire shape of POST /__mocks's request body.
type definitionWire struct {
	Request  requirementsWire `json:"request"`
	Response responseWire     `json:"response"`
}

func (w definitionWire) toModel() model.Definition {
	return model.Definition{
		Requirements: w.Request.toModel(),
		Response:     w.Response.toModel(),
	}
}

func definitionToWire(d model.Definition) definitionWire {
	return definitionWire{
		Request:  requirementsToWire(d.Requirements),
		Response: responseToWire(d.Response),
	}
}

// activeMockWire is the wire shape of GET /__mocks/{id}'s response body.
type activeMockWire struct {
	ID         int            `json:"id"`
	Definition definitionWire `json:"definition"`
	CallCount  uint64         `json:"call_count"`
}

func activeMockToWire(m model.ActiveMock) activeMockWire {
	return activeMockWire{
		ID:         m.ID,
		Definition: definitionToWire(m.Definition),
		CallCount:  m.CallCount,
	}
}
