package middleware

import (
	"net/http"

	"baseware/internal/message"
)

// Language resolves Accept-Language against the catalog and stores the
// result on the request context.
func Language(catalog *message.Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := catalog.Match(r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", tag.String())
			next.ServeHTTP(w, r.WithContext(message.WithLanguage(r.Context(), tag)))
		})
	}
}
