package logger

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CorrelationHeader carries the request correlation id on the wire.
const CorrelationHeader = "X-Correlation-ID"

type ctxKeyCorrelationID struct{}

// CorrelationIDFromContext returns the correlation id for the request, or ""
// when the request did not pass through Middleware.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyCorrelationID{}).(string)
	return id
}

// Middleware assigns every request a correlation id. An id supplied by the
// caller in X-Correlation-ID is reused so ids survive across services; the id
// is echoed on the response either way.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(CorrelationHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(CorrelationHeader, id)

		ctx := context.WithValue(r.Context(), ctxKeyCorrelationID{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
