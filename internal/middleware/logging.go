package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"fileadmin/internal/auth"
)

// responseWriter captures HTTP status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware tags each request with an ID and logs method, path,
// status and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Printf("[HTTP] %s %s %s %d %s from %s", requestID, r.Method, r.URL.Path, rw.statusCode, duration, r.RemoteAddr)
	})
}

// SessionMiddleware lifts the caller's bearer token and actor header into the
// request context. The console never validates the token itself; the upstream
// API is the authority and rejects stale or forged tokens on every call.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := auth.Session{
			Token:   auth.BearerFromHeader(r.Header.Get("Authorization")),
			ActorID: r.Header.Get("X-Actor-ID"),
		}
		next.ServeHTTP(w, r.WithContext(auth.ContextWithSession(r.Context(), session)))
	})
}
