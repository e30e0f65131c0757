package middleware

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type ctxKeyLog struct{}

// Logger attaches a request-scoped log entry carrying the method, path and
// request id, and emits one completion line per request.
func Logger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			entry := log.WithFields(logrus.Fields{
				"http.req.method": r.Method,
				"http.req.path":   r.URL.Path,
				"http.req.id":     r.Header.Get("X-Request-ID"),
			})

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := context.WithValue(r.Context(), ctxKeyLog{}, entry)
			next.ServeHTTP(ww, r.WithContext(ctx))

			entry.WithFields(logrus.Fields{
				"http.resp.status":  ww.Status(),
				"http.resp.bytes":   ww.BytesWritten(),
				"http.resp.took_ms": int64(time.Since(start) / time.Millisecond),
			}).Debug("request complete")
		})
	}
}

// Log returns the request-scoped entry, falling back to the standard logger
// when the middleware isn't installed (tests, bare handlers).
func Log(ctx context.Context) logrus.FieldLogger {
	if entry, ok := ctx.Value(ctxKeyLog{}).(logrus.FieldLogger); ok {
		return entry
	}
	return logrus.StandardLogger()
}
