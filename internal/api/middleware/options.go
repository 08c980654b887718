package middleware

import (
	"net/http"
	"strings"
)

const allowedMethods = "GET,POST,PUT,PATCH,DELETE,OPTIONS"

// Options answers every preflight with 204 and the full method list, so
// no route needs its own OPTIONS handler.
func Options(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		if strings.EqualFold(r.Method, http.MethodOptions) {
			w.Header().Set("Allow", allowedMethods)
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusNoContent)

			return
		}

		next.ServeHTTP(w, r)
	})
}
