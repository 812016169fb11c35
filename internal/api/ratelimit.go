package api

import (
	"net"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// rateLimitToggles is a huma operation middleware for edge toggle routes.
// Authenticated callers are keyed by user ID, anonymous ones by client IP.
// Returns 429 Too Many Requests when the bucket is empty.
func (s *Server) rateLimitToggles(ctx huma.Context, next func(huma.Context)) {
	key := actorID(ctx.Context())
	if key == "" {
		key = "ip:" + clientIP(ctx)
	}

	if !s.toggleLimiter.Allow(key) {
		s.logger.Warn("Rate limit exceeded",
			"key", key,
			"path", ctx.URL().Path,
		)
		_ = huma.WriteErr(s.api, ctx, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	next(ctx)
}

// clientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP headers before falling back to RemoteAddr.
func clientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	addr := ctx.RemoteAddr()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
