package middlewares

import (
	"net/http"
	"slices"
	"strings"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

// TokenFromRequest reads the auth-token header, falling back to a Bearer Authorization header.
func TokenFromRequest(c *gin.Context) string {
	if t := strings.TrimSpace(c.GetHeader("auth-token")); t != "" {
		return t
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// AuthMiddleware validates the token and, when roles are given, enforces one of them.
func AuthMiddleware(secret string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := TokenFromRequest(c)
		if tokenStr == "" {
			resp.Abort(c, http.StatusUnauthorized, "Please authenticate using a valid token")
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Abort(c, http.StatusUnauthorized, "Please authenticate using a valid token")
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)

		if len(requiredRoles) > 0 && !slices.Contains(requiredRoles, claims.Role) {
			resp.Abort(c, http.StatusForbidden, "forbidden")
			return
		}

		c.Next()
	}
}
