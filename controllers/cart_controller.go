package controllers

import (
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/services"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// POST /cart/add-to-cart
func (h *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cart, err := h.Svc.Add(utils.CurrentUserID(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"cart": cart})
}

// GET /cart/get-user-cart/:userId/:restaurantId
func (h *CartController) Get(c *gin.Context) {
	uid, ok := selfParam(c, "userId")
	if !ok {
		return
	}
	restID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	cart, err := h.Svc.Get(uid, restID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"cart": cart})
}

// cartLine reads the :userId/:itemId/:restaurantId triple shared by the delete routes.
func cartLine(c *gin.Context) (uid, itemID, restID uint, ok bool) {
	if uid, ok = selfParam(c, "userId"); !ok {
		return
	}
	if itemID, ok = paramID(c, "itemId"); !ok {
		return
	}
	restID, ok = paramID(c, "restaurantId")
	return
}

// DELETE /cart/remove-from-cart/:userId/:itemId/:restaurantId
func (h *CartController) RemoveOne(c *gin.Context) {
	uid, itemID, restID, ok := cartLine(c)
	if !ok {
		return
	}
	cart, err := h.Svc.RemoveOne(uid, itemID, restID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"cart": cart})
}

// DELETE /cart/remove-all-items-from-cart/:userId/:itemId/:restaurantId
func (h *CartController) RemoveLine(c *gin.Context) {
	uid, itemID, restID, ok := cartLine(c)
	if !ok {
		return
	}
	cart, err := h.Svc.RemoveLine(uid, itemID, restID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"cart": cart})
}
