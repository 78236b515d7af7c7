package httpmock

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, method, url string, headers map[string]string, body []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func kvListWire(kvs []KV) []map[string]string {
	if len(kvs) == 0 {
		return nil
	}
	out := make([]map[string]string, len(kvs))
	for i, kv := range kvs {
		out[i] = map[string]string{"name": kv.Name, "value": kv.Value}
	}
	return out
}

// createMock submits def through the management API, translating it into
// the wire's snake_case field names (the model types themselves carry no
// json tags — only the wire types admin decodes against do).
func createMock(t *testing.T, baseURL string, def Definition) int {
	t.Helper()

	req := def.Requirements
	resp := def.Response

	payload, err := json.Marshal(map[string]any{
		"request": map[string]any{
			"method":             req.Method,
			"path":               req.Path,
			"path_contains":      req.PathContains,
			"path_matches":       req.PathMatches,
			"query":              kvListWire(req.Query),
			"headers":            kvListWire(req.Headers),
			"cookies":            kvListWire(req.Cookies),
			"body_equals":        req.BodyEquals,
			"body_contains":      req.BodyContains,
			"body_matches":       req.BodyMatches,
			"body_json_equals":   req.BodyJSONEquals,
			"body_json_includes": req.BodyJSONIncludes,
		},
		"response": map[string]any{
			"status":   resp.Status,
			"headers":  kvListWire(resp.Headers),
			"body":     string(resp.Body),
			"delay_ms": resp.Delay.Milliseconds(),
		},
	})
	require.NoError(t, err)

	httpResp, body := doRequest(t, http.MethodPost, baseURL+"/__mocks", map[string]string{"Content-Type": "application/json"}, payload)
	require.Equal(t, http.StatusCreated, httpResp.StatusCode)

	var id Identification
	require.NoError(t, json.Unmarshal(body, &id))
	return id.ID
}

// S1: exact method + path, with the hit and the rejection explanation
// exercised end to end through the real HTTP surface.
func TestServer_S1_ExactMethodAndPath(t *testing.T) {
	s := NewServer()
	defer s.Close()

	createMock(t, s.URL(), Definition{Requirements: Requirements{Method: "GET", Path: "/a"}, Response: Response{Status: 200}})

	resp, _ := doRequest(t, http.MethodGet, s.URL()+"/a", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, http.MethodPost, s.URL()+"/a", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "mock 1")
}

// S2: substring + regex body requirements, with a precise rejection when
// only one of the two sub-facets is satisfied.
func TestServer_S2_SubstringAndRegexBody(t *testing.T) {
	s := NewServer()
	defer s.Close()

	createMock(t, s.URL(), Definition{
		Requirements: Requirements{
			BodyContains: []string{"foo"},
			BodyMatches:  []string{"^h.*o$"},
		},
		Response: Response{Status: 200},
	})

	resp, _ := doRequest(t, http.MethodPost, s.URL()+"/", nil, []byte("hello foo"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, http.MethodPost, s.URL()+"/", nil, []byte("hello"))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "body_contains")
}

// S3: among multiple full matches, the lowest registered id always wins and
// only its counter advances.
func TestServer_S3_FirstRegisteredWins(t *testing.T) {
	s := NewServer()
	defer s.Close()

	id1 := createMock(t, s.URL(), Definition{Requirements: Requirements{Path: "/x"}, Response: Response{Status: 200}})
	id2 := createMock(t, s.URL(), Definition{Requirements: Requirements{Path: "/x"}, Response: Response{Status: 200}})

	resp, _ := doRequest(t, http.MethodGet, s.URL()+"/x", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	m1, ok1 := s.Read(id1)
	m2, ok2 := s.Read(id2)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, uint64(1), m1.CallCount)
	assert.Equal(t, uint64(0), m2.CallCount)
}

// S4: cookie names match case-insensitively.
func TestServer_S4_CookieNamesCaseInsensitive(t *testing.T) {
	s := NewServer()
	defer s.Close()

	createMock(t, s.URL(), Definition{
		Requirements: Requirements{Cookies: []KV{{Name: "Session", Value: "abc"}}},
		Response:     Response{Status: 200},
	})

	resp, _ := doRequest(t, http.MethodGet, s.URL()+"/", map[string]string{"Cookie": "SESSION=abc"}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// S5: partial JSON body match, with a character-level diff on a miss since
// the bodies share no whitespace to tokenize on.
func TestServer_S5_JSONPartialMatch(t *testing.T) {
	s := NewServer()
	defer s.Close()

	createMock(t, s.URL(), Definition{
		Requirements: Requirements{BodyJSONIncludes: json.RawMessage(`{"a":1}`)},
		Response:     Response{Status: 200},
	})

	resp, _ := doRequest(t, http.MethodPost, s.URL()+"/", nil, []byte(`{"a":1,"b":2}`))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, http.MethodPost, s.URL()+"/", nil, []byte(`{"a":2}`))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "body_json_includes")
}

// S6 over HTTP: mocks registered one after another through the management
// API get distinct ids, and concurrent requests against them never lose a
// call count. The concurrent add-then-find variant is in
// internal/registry's TestRegistry_ConcurrentAddAndFindForEachOwnMock.
func TestServer_S6_ConcurrentFind(t *testing.T) {
	s := NewServer()
	defer s.Close()

	const n = 100
	ids := make([]int, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		path := pathFor(i)
		ids[i] = createMock(t, s.URL(), Definition{Requirements: Requirements{Path: path}, Response: Response{Status: 200}})
	}

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			resp, _ := doRequest(t, http.MethodGet, s.URL()+pathFor(i), nil, nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool, n)
	var totalCalls uint64
	for _, id := range ids {
		assert.False(t, seen[id], "expected distinct ids")
		seen[id] = true

		m, ok := s.Read(id)
		require.True(t, ok)
		totalCalls += m.CallCount
	}
	assert.Equal(t, uint64(n), totalCalls)
}

func pathFor(i int) string {
	return "/concurrent/" + string(rune('a'+i%26)) + string(rune('0'+i/26))
}

// The in-process API mirrors the HTTP surface: the same registry operations
// plus FindFor, with no JSON in between.
func TestEngine_InProcessFindFor(t *testing.T) {
	e := NewEngine(nil)

	id := e.Add(Definition{Requirements: Requirements{Method: "GET", Path: "/a"}, Response: Response{Status: 200}})

	m, rejection := e.FindFor(NewRequest("GET", "/a", nil, nil, nil))
	require.NotNil(t, m)
	assert.Nil(t, rejection)
	assert.Equal(t, id, m.ID)
	assert.Equal(t, uint64(1), m.CallCount)

	m, rejection = e.FindFor(NewRequest("POST", "/a", nil, nil, nil))
	assert.Nil(t, m)
	require.NotNil(t, rejection)
	require.Len(t, rejection.Candidates, 1)
	assert.Equal(t, id, rejection.Candidates[0].MockID)
}

func TestRenderRejection_ListsClosestMatchThenOtherCandidates(t *testing.T) {
	e := NewEngine(nil)
	e.Add(Definition{Requirements: Requirements{Method: "GET", Path: "/gadgets"}, Response: Response{Status: 200}})
	e.Add(Definition{Requirements: Requirements{Method: "POST", Path: "/widgets"}, Response: Response{Status: 200}})

	_, rejection := e.FindFor(NewRequest("DELETE", "/gadgets", nil, nil, nil))
	require.NotNil(t, rejection)

	text := renderRejection(rejection)
	assert.Contains(t, text, "closest match is mock 1")
	assert.Contains(t, text, "[method]")
	assert.Contains(t, text, "other candidates:")
	assert.Contains(t, text, "mock 2:")
}

func TestRenderRejection_EmptyRegistry(t *testing.T) {
	e := NewEngine(nil)
	_, rejection := e.FindFor(NewRequest("GET", "/", nil, nil, nil))
	assert.Equal(t, "no mocks are registered", renderRejection(rejection))
}
