package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// CORS answers preflight requests and pins the allowed origin to the
// single configured host.
func CORS(allowedHost string) func(http.Handler) http.Handler {
	origin := "https://" + allowedHost
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,HEAD,PUT,PATCH,POST,DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RefererFilter rejects requests whose Referer header is missing,
// malformed or from a different host. OPTIONS requests pass so CORS
// preflights keep working.
func RefererFilter(allowedHost string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			referer := r.Header.Get("Referer")
			if referer == "" {
				logger.Warn("referer header missing")
				writeForbidden(w, "Forbidden: Referer header missing.")
				return
			}

			u, err := url.Parse(referer)
			if err != nil || u.Hostname() == "" {
				logger.Warn("malformed referer header", zap.String("referer", referer))
				writeForbidden(w, "Forbidden: Malformed Referer.")
				return
			}

			if u.Hostname() != allowedHost {
				logger.Warn("blocked request from disallowed referer", zap.String("referer", referer))
				writeForbidden(w, "Forbidden: Invalid Referer.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
