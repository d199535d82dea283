package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ratekeeper/ratekeeper/internal/shared/constants"
)

// corsExposedHeaders lists the response headers browser clients may read.
// The rate-limit and throttle headers must be exposed or cross-origin
// callers cannot see their remaining quota.
const corsExposedHeaders = "Content-Length, X-Request-ID, " +
	constants.HeaderRateLimitLimit + ", " +
	constants.HeaderRateLimitRemaining + ", " +
	constants.HeaderRetryAfter + ", " +
	constants.HeaderThrottleType + ", " +
	constants.HeaderSuggestedDelayMs

// CORS returns a Gin middleware for handling Cross-Origin Resource Sharing.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		c.Header("Access-Control-Allow-Origin", getAllowedOrigin(origin, allowedOrigins))
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID, "+constants.HeaderAPIKey)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Expose-Headers", corsExposedHeaders)
		c.Header("Access-Control-Max-Age", "86400")

		// Preflight requests are answered here and never reach the
		// admission gate, so they consume no quota.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// getAllowedOrigin returns the allowed origin based on the request origin.
// An empty return leaves the browser to reject the response.
func getAllowedOrigin(origin string, allowedOrigins []string) string {
	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || origin == allowedOrigin {
			return allowedOrigin
		}
	}
	return ""
}
