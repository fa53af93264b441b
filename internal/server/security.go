package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/veldra/planforge/internal/handler"
)

// Security header names and values applied to every response.
const (
	headerContentTypeOptions = "X-Content-Type-Options"
	headerFrameOptions       = "X-Frame-Options"
	headerReferrerPolicy     = "Referrer-Policy"

	headerValueNoSniff      = "nosniff"
	headerValueSameOrigin   = "SAMEORIGIN"
	headerValueStrictOrigin = "strict-origin-when-cross-origin"

	apiKeyHeader = "X-API-Key"
)

// SecurityHeadersMiddleware sets conservative browser-facing headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(headerContentTypeOptions, headerValueNoSniff)
			w.Header().Set(headerFrameOptions, headerValueSameOrigin)
			w.Header().Set(headerReferrerPolicy, headerValueStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request body size.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// APIKeyMiddleware guards admin routes with a constant-time key check.
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(apiKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				http.Error(w, handler.ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
