package controllers

import (
	"net/http"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/middlewares"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/storage"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/services"

	"github.com/gin-gonic/gin"
)

type ItemController struct {
	Svc     *services.ItemService
	Cats    *services.CategoryService
	Storage storage.Uploader
}

func NewItemController(s *services.ItemService, cats *services.CategoryService, up storage.Uploader) *ItemController {
	return &ItemController{Svc: s, Cats: cats, Storage: up}
}

// ----- Owner -----

// POST /item/create-item (multipart)
func (h *ItemController) Create(c *gin.Context) {
	var in services.ItemIn
	if err := c.ShouldBind(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	restID := middlewares.CurrentRestaurant(c).ID
	if _, _, err := h.Svc.CheckCreate(restID, in); err != nil {
		respondErr(c, err)
		return
	}
	url, ok := uploadImage(c, h.Storage, "image", "items", true)
	if !ok {
		return
	}
	it, err := h.Svc.Create(restID, in, url)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.Created(c, gin.H{"item": it})
}

// GET /item/get-all-items/:restaurantId
func (h *ItemController) ListOwn(c *gin.Context) {
	id, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	if middlewares.CurrentRestaurant(c).ID != id {
		resp.Forbidden(c, "forbidden")
		return
	}
	items, err := h.Svc.ListForRestaurant(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// PUT /item/update-item/:itemId (multipart)
func (h *ItemController) Update(c *gin.Context) {
	id, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	var in services.ItemIn
	if err := c.ShouldBind(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	url, ok := uploadImage(c, h.Storage, "image", "items", false)
	if !ok {
		return
	}
	it, err := h.Svc.Update(middlewares.CurrentRestaurant(c).ID, id, in, url)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"item": it})
}

// DELETE /item/delete-item/:id
func (h *ItemController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(middlewares.CurrentRestaurant(c).ID, id); err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Item deleted"})
}

// GET /item/filter-items/:categoryId
func (h *ItemController) ByCategory(c *gin.Context) {
	id, ok := paramID(c, "categoryId")
	if !ok {
		return
	}
	items, err := h.Svc.ListByCategory(middlewares.CurrentRestaurant(c).ID, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /item/check-item/:restaurantId/:categoryId
func (h *ItemController) CheckCategoryItems(c *gin.Context) {
	restID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	catID, ok := paramID(c, "categoryId")
	if !ok {
		return
	}
	if middlewares.CurrentRestaurant(c).ID != restID {
		resp.Forbidden(c, "forbidden")
		return
	}
	has, err := h.Cats.HasItems(restID, catID)
	if err != nil {
		respondErr(c, err)
		return
	}
	if has {
		resp.Unauthorized(c, "Can't delete this category because it has items.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ----- Public -----

// GET /item/get-restaurant-items/:restaurantId
func (h *ItemController) Menu(c *gin.Context) {
	id, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	m, err := h.Svc.Menu(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, m)
}

// GET /item/get-search-item/:restaurantId/:searchItem
func (h *ItemController) Search(c *gin.Context) {
	id, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	items, err := h.Svc.Search(id, c.Param("searchItem"))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /item/get-restaurant-items-by-rating/:restaurantId
func (h *ItemController) ByRating(c *gin.Context) {
	id, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	items, err := h.Svc.ByRating(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /item/get-popular-items
func (h *ItemController) Popular(c *gin.Context) {
	items, err := h.Svc.Popular()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"popularItems": items})
}
