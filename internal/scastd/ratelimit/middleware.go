package ratelimit

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/slidecast/slidecast/api/types/v1alpha1"
)

// Middleware enforces the limit registered under limitType for every
// request passing through it. Responses carry standard RateLimit headers
// and over-budget requests get a 429 with Retry-After.
func Middleware(service *Service, logger *slog.Logger, limitType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := Key{Type: limitType, RemoteIP: realIP(r)}

			status, err := service.Allow(r.Context(), key)
			if limitErr, ok := err.(*ErrLimitExceeded); ok {
				setRateLimitHeaders(w, limitErr.Status)
				handleLimitExceeded(w, r, limitErr.Status, logger)
				return
			}
			if err != nil {
				logger.Error("rate limit check failed",
					"error", err,
					"requestId", middleware.GetReqID(r.Context()),
					"path", r.URL.Path,
				)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if status.Limit.Rate > 0 {
				setRateLimitHeaders(w, status)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func setRateLimitHeaders(w http.ResponseWriter, status Status) {
	remaining := status.Remaining
	if remaining < 0 {
		remaining = 0
	}
	w.Header().Set("RateLimit-Limit", strconv.Itoa(status.Limit.Rate))
	w.Header().Set("RateLimit-Remaining", strconv.Itoa(remaining))
	w.Header().Set("RateLimit-Reset", strconv.FormatInt(status.Reset.Unix(), 10))
}

func handleLimitExceeded(w http.ResponseWriter, r *http.Request, status Status, logger *slog.Logger) {
	retryAfter := int(time.Until(status.Reset).Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}

	logger.Warn("rate limit exceeded",
		"path", r.URL.Path,
		"method", r.Method,
		"remoteIP", realIP(r),
		"retryAfter", retryAfter,
	)

	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(v1alpha1.Error{
		Code:    "RATE_LIMITED",
		Message: "too many requests",
	})
}

// realIP extracts the client address, honoring proxy headers.
func realIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if parts := strings.Split(xff, ","); len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return host
}
