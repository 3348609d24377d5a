package middleware

import "net/http"

// NewMaxBodySize returns a middleware that limits incoming request body
// sizes to limit bytes. Requests whose declared Content-Length exceeds the
// limit are rejected with 413 up front; bodies without a declared length are
// capped with http.MaxBytesReader, so an oversized chunked upload fails at
// read time inside the handler.
func NewMaxBodySize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge),
					http.StatusRequestEntityTooLarge)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
