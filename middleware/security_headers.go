package middleware

import (
	"strings"

	"github.com/NomadCrew/nomad-crew-itinerary/config"
	"github.com/gin-gonic/gin"
)

// apiCSP locks JSON responses down completely. The Swagger UI serves its own
// scripts and styles, so it is exempt.
const apiCSP = "default-src 'none'; frame-ancestors 'none'"

// SecurityHeadersMiddleware hardens every response. Itineraries and task
// results are per caller, so /v1 responses are never cached. HSTS is only
// sent in production.
func SecurityHeadersMiddleware(cfg *config.Config) gin.HandlerFunc {
	hsts := cfg.IsProduction()
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		path := c.Request.URL.Path
		if !strings.HasPrefix(path, "/swagger/") {
			h.Set("Content-Security-Policy", apiCSP)
		}
		if strings.HasPrefix(path, "/v1/") {
			h.Set("Cache-Control", "no-store")
		}
		if hsts {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}
		c.Next()
	}
}
