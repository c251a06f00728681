package middleware

import (
	"net/http"
	"strings"

	"alshifa-backend/utils"

	"github.com/gin-gonic/gin"
)

// extractToken pulls the credential from the Authorization header, falling
// back to the `token` cookie the login endpoint sets. The header wins when
// both are present.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie("token")
	if err != nil {
		return ""
	}
	return cookie
}

// AuthMiddleware rejects requests without a credential with 401 and
// requests with an invalid or expired credential with 403.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "يجب تسجيل الدخول أولاً"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "رمز الدخول غير صالح أو منتهي الصلاحية"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// AdminMiddleware requires the role claim set by AuthMiddleware to be "admin".
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "هذه العملية تتطلب صلاحيات المدير"})
			c.Abort()
			return
		}
		c.Next()
	}
}
