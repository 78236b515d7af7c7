package httpmock

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader is set on every response so a caller can correlate a log
// line with the request that produced it, including a rejection's plain
// text explanation.
const requestIDHeader = "X-Request-Id"

// withRequestID assigns each inbound request a fresh correlation id, logs
// its arrival, and stamps the response header with it before delegating to
// next.
func withRequestID(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set(requestIDHeader, requestID)
		log.Debug("request received", "request_id", requestID, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
