package middleware

import (
	"net/http"
	"strings"

	"github.com/eduai-labs/eduai-backend/internal/reqctx"
	"github.com/eduai-labs/eduai-backend/internal/token"
	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// Auth validates a Bearer token, sets "userID" in the gin context, and
// attaches the user ID to the request context for logging.
func Auth(tokens *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set("userID", userID)
		c.Request = c.Request.WithContext(reqctx.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}
