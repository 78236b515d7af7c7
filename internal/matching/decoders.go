package matching

import (
	"net/http"

	"github.com/ohler55/ojg/oj"
	"github.com/utkarshgupta137/httpmock/internal/model"
)

// DecodeCookies parses Cookie header values into ordered KV pairs using
// net/http.Request.Cookies, which skips a segment it cannot parse rather
// than aborting the whole header. A malformed cookie therefore never becomes
// a 500 or a separate decode error; it is simply absent, and a requirement
// on it fails as an ordinary missing-cookie Mismatch.
func DecodeCookies(headerValues []string) []model.KV {
	var out []model.KV
	for _, raw := range headerValues {
		req := &http.Request{Header: http.Header{"Cookie": []string{raw}}}
		for _, c := range req.Cookies() {
			out = append(out, model.KV{Name: c.Name, Value: c.Value})
		}
	}
	return out
}

// DecodeJSON parses raw bytes into a generic JSON value (map, slice, string,
// int64 or float64, bool, or nil). A parse failure is reported, not panicked; callers
// turn it into a Mismatch titled with a decode-error reason rather than
// failing the whole request.
func DecodeJSON(body []byte) (interface{}, error) {
	return oj.Parse(body)
}
