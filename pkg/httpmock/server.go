package httpmock

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/utkarshgupta137/httpmock/internal/matching"
	"github.com/utkarshgupta137/httpmock/internal/model"
	"github.com/utkarshgupta137/httpmock/internal/registry"
	"github.com/utkarshgupta137/httpmock/pkg/admin"
	"github.com/utkarshgupta137/httpmock/pkg/logging"
)

// maxRequestBodySize bounds how much of an inbound request body the engine
// will read before matching against it, to avoid unbounded memory use from
// a test accidentally pointing a huge upload at a mock.
const maxRequestBodySize = 10 << 20 // 10MB

// Engine owns a mock Registry and the http.Handler that serves both the
// /__mocks management API and, on every other path, the matching engine
// itself. It has no opinion on how it's exposed — Server wraps it in an
// httptest.Server for in-process tests; cmd/httpmockd wraps it in a real
// net/http.Server for standalone use.
type Engine struct {
	reg     *registry.Registry
	log     *slog.Logger
	Handler http.Handler
}

// NewEngine builds an Engine with an empty registry.
func NewEngine(log *slog.Logger) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	reg := registry.New()
	e := &Engine{reg: reg, log: log}

	mux := http.NewServeMux()
	admin.New(reg, log).Register(mux)
	mux.HandleFunc("/", e.serveMock)
	e.Handler = withRequestID(log, mux)

	return e
}

// Add registers a new mock definition and returns its id.
func (e *Engine) Add(def Definition) int {
	return e.reg.Add(def)
}

// Read returns the current state of the mock with the given id.
func (e *Engine) Read(id int) (ActiveMock, bool) {
	m, err := e.reg.Read(id)
	return m, err == nil
}

// Delete removes the mock with the given id, reporting whether it existed.
func (e *Engine) Delete(id int) bool {
	return e.reg.Delete(id) == nil
}

// DeleteAll removes every registered mock and returns how many were removed.
func (e *Engine) DeleteAll() int {
	return e.reg.DeleteAll()
}

// Count returns the number of currently registered mocks.
func (e *Engine) Count() int {
	return len(e.reg.List())
}

// FindFor matches req against every registered mock. On a hit it returns
// the winner (with its call counter already bumped) and a nil Rejection; on
// a miss it returns a nil mock and the structured explanation. This is the
// in-process equivalent of sending req through the HTTP surface, minus the
// response writing and the declared delay.
func (e *Engine) FindFor(req *Request) (*ActiveMock, *Rejection) {
	return e.reg.FindFor(req)
}

// serveMock is the catch-all handler: every path other than /__mocks flows
// through the matching engine. On a hit it replays the winning mock's
// response verbatim, applying its declared delay only now — after the
// engine has already returned — never inside the engine itself. On a miss
// it returns 500 with a plain-text rendering of the rejection.
func (e *Engine) serveMock(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusInternalServerError)
		return
	}

	req := model.FromHTTPRequest(r, body)

	winner, rejection := e.reg.FindFor(req)
	if winner != nil {
		e.log.Debug("mock matched", "id", winner.ID, "method", req.Method, "path", req.Path)
		writeResponse(w, winner.Definition.Response)
		return
	}

	e.log.Debug("no mock matched", "method", req.Method, "path", req.Path)
	http.Error(w, renderRejection(rejection), http.StatusInternalServerError)
}

func writeResponse(w http.ResponseWriter, resp model.Response) {
	for _, kv := range resp.Headers {
		w.Header().Add(kv.Name, kv.Value)
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}
	w.WriteHeader(status)
	_, _ = w.Write(resp.Body)
}

// renderRejection serializes a Rejection as the plain-text body described by
// the management interface: the closest mock's explanation first, then a
// condensed summary of every other candidate.
func renderRejection(rej *matching.Rejection) string {
	if rej == nil || len(rej.Candidates) == 0 {
		return "no mocks are registered"
	}

	var b strings.Builder
	best := rej.Candidates[0]
	fmt.Fprintf(&b, "no mock matched this request; closest match is mock %d (score %d)\n", best.MockID, best.TotalScore)
	for _, facet := range best.Facets {
		for _, m := range facet.Mismatches {
			fmt.Fprintf(&b, "  [%s] %s\n", facet.Facet, m.Message)
		}
	}

	if len(rej.Candidates) > 1 {
		b.WriteString("other candidates:\n")
		for _, c := range rej.Candidates[1:] {
			fmt.Fprintf(&b, "  mock %d: score %d, %d failing facet(s)\n", c.MockID, c.TotalScore, len(c.Facets))
		}
	}

	return b.String()
}

// Server is an in-process HTTP mock server for tests: an Engine exposed
// over an httptest.Server. Callers register mocks via Add and point their
// code under test at URL().
type Server struct {
	*Engine
	httpServer *httptest.Server
}

// NewServer starts a Server backed by an in-process httptest.Server.
func NewServer() *Server {
	return NewServerWithLogger(logging.Nop())
}

// NewServerWithLogger starts a Server that logs through log.
func NewServerWithLogger(log *slog.Logger) *Server {
	e := NewEngine(log)
	return &Server{Engine: e, httpServer: httptest.NewServer(e.Handler)}
}

// URL returns the base URL test code should send requests to.
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close shuts down the underlying listener.
func (s *Server) Close() {
	s.httpServer.Close()
}
