package server

import (
	"net/http"
	"strings"
)

// CORSMiddleware answers cross-origin requests from the sheet frontend.
// With an empty allow list the request origin is reflected, so any origin
// may call the API with credentials. Preflight requests end here with 200.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			allowed[o] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add(HeaderVary, HeaderOrigin)

			origin := r.Header.Get(HeaderOrigin)
			if origin != "" && originAllowed(allowed, origin) {
				h.Set(HeaderAllowOrigin, origin)
				h.Set(HeaderAllowCredentials, "true")
				h.Set(HeaderAllowMethods, CORSAllowedMethods)
				h.Set(HeaderAllowHeaders, CORSAllowedHeaders)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed map[string]struct{}, origin string) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}
