package middlewares

import (
	"net/http"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

// RequireSuperAdmin reloads the caller so a demoted account loses access immediately.
func RequireSuperAdmin(users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := users.FindByID(utils.CurrentUserID(c))
		if err != nil {
			if repository.IsNotFound(err) {
				resp.Abort(c, http.StatusUnauthorized, "User not found")
				return
			}
			resp.Abort(c, http.StatusInternalServerError, err.Error())
			return
		}
		if u.Role != entity.RoleSuperAdmin {
			resp.Abort(c, http.StatusForbidden, "Access denied. Super admin only.")
			return
		}
		c.Next()
	}
}
