package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ratekeeper/ratekeeper/internal/shared/constants"
	"github.com/ratekeeper/ratekeeper/internal/shared/id"
)

// HeaderRequestID carries the request correlation id. An inbound value is
// trusted and echoed; otherwise a fresh short id is generated.
const HeaderRequestID = "X-Request-ID"

// RequestID returns a middleware that ensures every request carries a
// correlation id, stored in the context and echoed in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = id.MustGenerate(id.DefaultLength)
		}

		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}
