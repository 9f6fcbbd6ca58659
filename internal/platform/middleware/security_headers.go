package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// SecurityHeadersConfig controls the headers that depend on how the clinic
// API is deployed.
type SecurityHeadersConfig struct {
	// HSTSMaxAge enables Strict-Transport-Security when positive. Only set
	// it when the API is served over TLS, otherwise local HTTP clients get
	// pinned to https.
	HSTSMaxAge int
	// CacheControl defaults to no-store so patient and doctor records never
	// land in shared caches.
	CacheControl string
}

// DefaultSecurityHeadersConfig is the development setup: no HSTS and no
// caching of any response.
func DefaultSecurityHeadersConfig() SecurityHeadersConfig {
	return SecurityHeadersConfig{CacheControl: "no-store"}
}

// SecurityHeaders sets the headers every clinic response carries, error
// bodies included, since they are written before the handler runs.
func SecurityHeaders(cfg SecurityHeadersConfig) echo.MiddlewareFunc {
	cacheControl := cfg.CacheControl
	if cacheControl == "" {
		cacheControl = "no-store"
	}
	var hsts string
	if cfg.HSTSMaxAge > 0 {
		hsts = fmt.Sprintf("max-age=%d; includeSubDomains", cfg.HSTSMaxAge)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			h.Set("Referrer-Policy", "no-referrer")
			h.Set(echo.HeaderCacheControl, cacheControl)
			if hsts != "" {
				h.Set(echo.HeaderStrictTransportSecurity, hsts)
			}
			return next(c)
		}
	}
}
