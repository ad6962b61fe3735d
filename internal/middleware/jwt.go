package middleware

import (
	"net/http"
	"strings"

	"Shkuba/internal/auth"

	"github.com/gin-gonic/gin"
)

// JwtAuthMiddleware accepts "Authorization: Bearer <jwt>" or, for browser
// websockets that cannot set headers, "?token=<jwt>". The subject is stored
// under "player".
func JwtAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if h := c.GetHeader("Authorization"); h != "" {
			bearer, ok := strings.CutPrefix(h, "Bearer ")
			if !ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bad authorization header"})
				return
			}
			tokenStr = bearer
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		player, err := auth.ParseToken(secret, strings.TrimSpace(tokenStr))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("player", player)
		c.Next()
	}
}
