package controllers

import (
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/middlewares"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/storage"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/services"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	Svc     *services.RestaurantService
	Storage storage.Uploader
}

func NewRestaurantController(s *services.RestaurantService, up storage.Uploader) *RestaurantController {
	return &RestaurantController{Svc: s, Storage: up}
}

// POST /auth/restaurant/create (multipart)
func (h *RestaurantController) Create(c *gin.Context) {
	var in services.RestaurantIn
	if err := c.ShouldBind(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ownerID := utils.CurrentUserID(c)
	if err := h.Svc.CheckCreate(ownerID, in); err != nil {
		respondErr(c, err)
		return
	}
	url, ok := uploadImage(c, h.Storage, "image", "restaurants", true)
	if !ok {
		return
	}
	rest, err := h.Svc.Create(ownerID, in, url)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.Created(c, gin.H{"restaurant": rest})
}

// GET /auth/restaurant/fetch-restaurant/:id
func (h *RestaurantController) Fetch(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if own := middlewares.CurrentRestaurant(c); own == nil || own.ID != id {
		resp.Forbidden(c, "forbidden")
		return
	}
	rest, err := h.Svc.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurant": rest})
}

// PUT /auth/restaurant/manage-restaurant/:id (multipart)
func (h *RestaurantController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.RestaurantIn
	if err := c.ShouldBind(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	url, ok := uploadImage(c, h.Storage, "image", "restaurants", false)
	if !ok {
		return
	}
	rest, err := h.Svc.Update(middlewares.CurrentRestaurant(c).ID, id, in, url)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurant": rest})
}

// GET /auth/restaurant/get-all-restaurants/:city
func (h *RestaurantController) ListByCity(c *gin.Context) {
	list, err := h.Svc.ListByCity(c.Param("city"), "")
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurants": list})
}

// GET /auth/restaurant/get-search-restaurants/:city/:searchRestaurant
func (h *RestaurantController) Search(c *gin.Context) {
	list, err := h.Svc.Search(c.Param("city"), c.Param("searchRestaurant"))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurants": list})
}

// GET /auth/restaurant/get-filtered-restaurants/:city/:sortBy
func (h *RestaurantController) Filter(c *gin.Context) {
	list, err := h.Svc.ListByCity(c.Param("city"), c.Param("sortBy"))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurants": list})
}

// GET /auth/restaurant/check-restaurant-creation-status/:restaurantId
func (h *RestaurantController) CreationStatus(c *gin.Context) {
	id, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	st, err := h.Svc.CreationStatus(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, st)
}

// GET /auth/restaurant/get-popular-restaurants/:city
func (h *RestaurantController) Popular(c *gin.Context) {
	list, err := h.Svc.Popular(c.Param("city"))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"popularRestaurants": list})
}

// GET /auth/restaurant/get-restaurant-dashboard-overview/:restaurantId
func (h *RestaurantController) Dashboard(c *gin.Context) {
	id, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	if middlewares.CurrentRestaurant(c).ID != id {
		resp.Forbidden(c, "forbidden")
		return
	}
	d, err := h.Svc.Dashboard(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, d)
}
