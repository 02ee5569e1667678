package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logging пишет строку журнала на каждый запрос
func Logging(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			requestID, _ := GetRequestID(r.Context())
			duration := time.Since(start)

			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("HTTP: method=%s, path=%s, status=%d, duration=%s, request_id=%s",
					r.Method, r.URL.Path, rec.status, duration, requestID)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("HTTP: method=%s, path=%s, status=%d, duration=%s, request_id=%s",
					r.Method, r.URL.Path, rec.status, duration, requestID)
			default:
				logger.Info("HTTP: method=%s, path=%s, status=%d, duration=%s, request_id=%s",
					r.Method, r.URL.Path, rec.status, duration, requestID)
			}
		})
	}
}
