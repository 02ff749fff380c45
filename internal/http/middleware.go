package http

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

// withSecurityHeaders applies baseline hardening headers. The API serves a
// local dashboard over plain HTTP, so this is the JSON-API subset rather
// than a full browser policy.
func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// requestID returns a short random hex token identifying one request.
func requestID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b[:])
}
