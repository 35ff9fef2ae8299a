package controllers

import (
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/middlewares"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/services"

	"github.com/gin-gonic/gin"
)

type CategoryController struct{ Svc *services.CategoryService }

func NewCategoryController(s *services.CategoryService) *CategoryController {
	return &CategoryController{Svc: s}
}

type categoryReq struct {
	Name string `json:"name"`
}

// POST /category/create-category
func (h *CategoryController) Create(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := h.Svc.Create(middlewares.CurrentRestaurant(c).ID, req.Name)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.Created(c, gin.H{"category": cat})
}

// PUT /category/update-category/:id
func (h *CategoryController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := h.Svc.Update(middlewares.CurrentRestaurant(c).ID, id, req.Name)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"category": cat})
}

// GET /category/getallcategories
func (h *CategoryController) List(c *gin.Context) {
	cats, err := h.Svc.List(middlewares.CurrentRestaurant(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"categories": cats})
}

// DELETE /category/delete-category/:id
func (h *CategoryController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(middlewares.CurrentRestaurant(c).ID, id); err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Category deleted"})
}
