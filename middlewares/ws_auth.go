package middlewares

import (
	"net/http"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware accepts the token from the query string (browsers cannot set
// headers on a WebSocket handshake) or from the usual headers.
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			tokenStr = TokenFromRequest(c)
		}
		if tokenStr == "" {
			resp.Abort(c, http.StatusUnauthorized, "missing token")
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Abort(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}
