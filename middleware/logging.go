package middleware

import (
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

// RequestLogger logs every API request with the authenticated user when one
// is present.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		userID := "-"
		if c := GetClaims(r); c != nil {
			userID = c.UserID
		}
		log.Printf("[HTTP] %s %s user=%s ip=%s took=%s",
			r.Method, r.URL.Path, userID, clientIP(r), time.Since(start))
	})
}

// clientIP extracts the caller address from proxy headers or the socket.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.Split(ip, ",")[0]
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
