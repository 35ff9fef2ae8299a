package middlewares

import (
	"errors"
	"net/http"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/services"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	ctxOwner      = "owner"
	ctxRestaurant = "restaurant"
)

// RequireOwnerRestaurant runs after AuthMiddleware and puts the caller's restaurant in the context.
func RequireOwnerRestaurant(owners *services.OwnerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, rest, err := owners.ResolveRestaurant(utils.CurrentUserID(c))
		if err != nil {
			var se *services.Error
			if errors.As(err, &se) {
				resp.Abort(c, http.StatusUnauthorized, se.Msg)
				return
			}
			resp.Abort(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.Set(ctxOwner, owner)
		c.Set(ctxRestaurant, rest)
		c.Next()
	}
}

func CurrentRestaurant(c *gin.Context) *entity.Restaurant {
	if v, ok := c.Get(ctxRestaurant); ok {
		if r, ok := v.(*entity.Restaurant); ok {
			return r
		}
	}
	return nil
}

func CurrentOwner(c *gin.Context) *entity.Owner {
	if v, ok := c.Get(ctxOwner); ok {
		if o, ok := v.(*entity.Owner); ok {
			return o
		}
	}
	return nil
}
