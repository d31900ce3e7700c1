package middleware

import (
	"net/http"

	"github.com/alllin1/seo-blog-api/src/services"
	"github.com/gin-gonic/gin"
)

// APIKeyHeader is the header external platforms present their credential in
const APIKeyHeader = "x-api-key"

// RequireAPIKey validates the x-api-key header against stored active
// credentials. Missing key, unknown key and deactivated credential all
// produce the same response so callers cannot probe which check failed.
func RequireAPIKey(credentials *services.CredentialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(APIKeyHeader)

		if !credentials.ValidateAPIKey(c.Request.Context(), apiKey) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Invalid or missing API key",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
