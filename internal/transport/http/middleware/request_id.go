package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"perfhub/internal/requestctx"
)

// RequestID honors an inbound X-Request-ID so ids stay stable across proxies,
// and mints a uuid otherwise. The id is echoed on the response and reused by
// the export audit trail.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		ctx := requestctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
