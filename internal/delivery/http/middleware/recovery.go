package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/icanh/registro-vehiculos/internal/pkg/logger"
)

// RecoveryMiddleware se recupera de panics y devuelve un error 500
func RecoveryMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("Panic recovered", map[string]interface{}{
						"error":       err,
						"stack":       string(debug.Stack()),
						"request_id":  GetRequestID(r.Context()),
						"method":      r.Method,
						"path":        r.URL.Path,
						"remote_addr": r.RemoteAddr,
					})

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"Error interno del servidor"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
