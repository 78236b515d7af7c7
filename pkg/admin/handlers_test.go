package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarshgupta137/httpmock/internal/registry"
)

func newTestAPI() (*API, *http.ServeMux) {
	reg := registry.New()
	api := New(reg, nil)
	mux := http.NewServeMux()
	api.Register(mux)
	return api, mux
}

func TestHandleCreate_ValidDefinitionReturns201WithID(t *testing.T) {
	_, mux := newTestAPI()

	body := `{"request":{"method":"GET","path":"/widgets"},"response":{"status":200,"body":"ok"}}`
	req := httptest.NewRequest(http.MethodPost, "/__mocks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":1`)
}

func TestHandleCreate_MalformedJSONReturns500(t *testing.T) {
	_, mux := newTestAPI()

	req := httptest.NewRequest(http.MethodPost, "/__mocks", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleCreate_InvalidRegexFailsValidationWith500(t *testing.T) {
	_, mux := newTestAPI()

	body := `{"request":{"path_matches":["(unterminated"]},"response":{"status":200}}`
	req := httptest.NewRequest(http.MethodPost, "/__mocks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleCreate_InvalidStatusCodeFailsValidation(t *testing.T) {
	_, mux := newTestAPI()

	body := `{"request":{"method":"GET"},"response":{"status":9999}}`
	req := httptest.NewRequest(http.MethodPost, "/__mocks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// A response with no "status" field at all unmarshals to the zero value,
// which must still be accepted: the front-end treats status 0 as "default to
// 200" rather than as an explicitly invalid code.
func TestHandleCreate_OmittedStatusDefaultsAndPassesValidation(t *testing.T) {
	_, mux := newTestAPI()

	body := `{"request":{"method":"GET"},"response":{"body":"ok"}}`
	req := httptest.NewRequest(http.MethodPost, "/__mocks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

// A client that marshals a definition struct with unset json.RawMessage
// fields sends explicit nulls; those must read as "facet not set", not as a
// requirement that the body be the JSON null literal.
func TestHandleCreate_ExplicitNullJSONFacetsAreUnset(t *testing.T) {
	api, mux := newTestAPI()

	body := `{"request":{"method":"GET","body_json_equals":null,"body_json_includes":null},"response":{"status":200}}`
	req := httptest.NewRequest(http.MethodPost, "/__mocks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	m, err := api.reg.Read(1)
	require.NoError(t, err)
	assert.Nil(t, m.Definition.Requirements.BodyJSONEquals)
	assert.Nil(t, m.Definition.Requirements.BodyJSONIncludes)
}

func TestHandleGet_UnknownIDReturns404(t *testing.T) {
	_, mux := newTestAPI()

	req := httptest.NewRequest(http.MethodGet, "/__mocks/42", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGet_KnownIDReturns200WithDefinition(t *testing.T) {
	_, mux := newTestAPI()

	createBody := `{"request":{"method":"GET","path":"/widgets"},"response":{"status":200}}`
	createReq := httptest.NewRequest(http.MethodPost, "/__mocks", strings.NewReader(createBody))
	createRec := httptest.NewRecorder()
	mux.ServeHTTP(createRec, createReq)
	assert.Equal(t, http.StatusCreated, createRec.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/__mocks/1", nil)
	getRec := httptest.NewRecorder()
	mux.ServeHTTP(getRec, getReq)

	assert.Equal(t, http.StatusOK, getRec.Code)
	assert.Contains(t, getRec.Body.String(), `"path":"/widgets"`)
}

func TestHandleDelete_UnknownIDReturns404(t *testing.T) {
	_, mux := newTestAPI()

	req := httptest.NewRequest(http.MethodDelete, "/__mocks/7", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDelete_KnownIDReturns202(t *testing.T) {
	_, mux := newTestAPI()

	createBody := `{"request":{"method":"GET"},"response":{"status":200}}`
	createReq := httptest.NewRequest(http.MethodPost, "/__mocks", strings.NewReader(createBody))
	createRec := httptest.NewRecorder()
	mux.ServeHTTP(createRec, createReq)

	req := httptest.NewRequest(http.MethodDelete, "/__mocks/1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestHandleDeleteAll_Returns202(t *testing.T) {
	_, mux := newTestAPI()

	req := httptest.NewRequest(http.MethodDelete, "/__mocks", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
}
