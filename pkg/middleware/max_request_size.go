package middleware

import "net/http"

// MaxRequestSize rejects request bodies larger than maxBytes.
// http.MaxBytesReader makes the body return an error once the limit is
// crossed, so oversized payloads fail during JSON decoding.
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
