package middleware

import (
	"net/http"
	"strings"
)

// Observer receives one call per completed request.
type Observer interface {
	ObserveRequest(route string, status int)
}

// Observe reports each request to obs, labelled with the first entry of
// routes that equals or prefixes the path (entries ending in "/" match as a
// prefix). Unmatched paths are reported as "other" to bound label values.
func Observe(obs Observer, routes []string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := wrap(w)
			next.ServeHTTP(rec, r)
			obs.ObserveRequest(routeOf(r.URL.Path, routes), rec.code())
		})
	}
}

func routeOf(path string, routes []string) string {
	for _, rt := range routes {
		if path == rt || (strings.HasSuffix(rt, "/") && strings.HasPrefix(path, rt)) {
			return rt
		}
	}
	return "other"
}
