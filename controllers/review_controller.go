package controllers

import (
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/services"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

type ReviewController struct{ Svc *services.ReviewService }

func NewReviewController(s *services.ReviewService) *ReviewController { return &ReviewController{Svc: s} }

// POST /review/create-review
func (h *ReviewController) Create(c *gin.Context) {
	var req services.CreateReviewIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rv, err := h.Svc.Create(utils.CurrentUserID(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.Created(c, gin.H{"review": rv})
}

// GET /review/get-restaurant-reviews/:restaurantId
func (h *ReviewController) ForRestaurant(c *gin.Context) {
	id, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	list, err := h.Svc.ListForRestaurant(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"reviews": list})
}

// GET /review/get-item-rating/:foodItemId
func (h *ReviewController) ItemRating(c *gin.Context) {
	id, ok := paramID(c, "foodItemId")
	if !ok {
		return
	}
	r, err := h.Svc.ItemRating(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, r)
}
