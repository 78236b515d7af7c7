// Package httpmock is a library for registering expected HTTP request shapes
// ("mock definitions") together with canned responses, and routing real
// incoming requests to the best-matching registration. When nothing matches,
// it explains precisely why every candidate failed.
package httpmock

import (
	"net/http"

	"github.com/utkarshgupta137/httpmock/internal/model"
)

// KV is an ordered name/value pair. It is used both for the query and header
// pairs carried on a Request and for the required pairs a Requirements
// carries for those same facets.
type KV = model.KV

// Request is a normalized, read-only view of an inbound HTTP request. It is
// built once per request and is safe to share across goroutines: all fields
// are immutable after construction, with the exception of the lazily decoded
// body string, which is computed at most once behind a sync.Once.
type Request = model.Request

// NewRequest builds a normalized Request from method, path, ordered query and
// header pairs, and a raw body.
func NewRequest(method, path string, query, headers []KV, body []byte) *Request {
	return model.NewRequest(method, path, query, headers, body)
}

// FromHTTPRequest normalizes a *http.Request plus its already-drained body
// into a Request. Callers are expected to have read and restored r.Body
// themselves (the matching engine never consumes the request body).
func FromHTTPRequest(r *http.Request, body []byte) *Request {
	return model.FromHTTPRequest(r, body)
}
