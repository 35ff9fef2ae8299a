package controllers

import (
	"net/http"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/storage"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/services"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

type SuperAdminController struct {
	Svc     *services.SuperAdminService
	Storage storage.Uploader
}

func NewSuperAdminController(s *services.SuperAdminService, up storage.Uploader) *SuperAdminController {
	return &SuperAdminController{Svc: s, Storage: up}
}

// GET /superadmin/restaurant-creation-requests
func (h *SuperAdminController) CreationRequests(c *gin.Context) {
	list, err := h.Svc.CreationRequests()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurantRequests": list})
}

// PUT /superadmin/update-restaurant-status/:restaurantId
func (h *SuperAdminController) UpdateRestaurantStatus(c *gin.Context) {
	id, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.UpdateRestaurantStatus(id, req.Status); err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Restaurant status updated to " + req.Status + " successfully!"})
}

// GET /superadmin/get-all-restaurants
func (h *SuperAdminController) Restaurants(c *gin.Context) {
	list, err := h.Svc.Restaurants()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurants": list})
}

// GET /superadmin/get-all-users
func (h *SuperAdminController) Users(c *gin.Context) {
	list, err := h.Svc.Users()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"users": list})
}

// GET /superadmin/get-all-restaurant-admins
func (h *SuperAdminController) Owners(c *gin.Context) {
	list, err := h.Svc.Owners()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurantAdmins": list})
}

// GET /superadmin/get-all-delivery-partners
func (h *SuperAdminController) DeliveryPartners(c *gin.Context) {
	list, err := h.Svc.DeliveryPartners()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deliveryPartners": list})
}

// GET /superadmin/dashboard-overview
func (h *SuperAdminController) Dashboard(c *gin.Context) {
	d, err := h.Svc.Dashboard()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, d)
}

// GET /superadmin/get-revenue-overview
func (h *SuperAdminController) RevenueOverview(c *gin.Context) {
	d, err := h.Svc.RevenueOverview()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, d)
}

// GET /superadmin/get-payouts-overview
func (h *SuperAdminController) PayoutsOverview(c *gin.Context) {
	d, err := h.Svc.PayoutsOverview()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, d)
}

// GET /superadmin/get-commission-overview/:city/:dateRange
func (h *SuperAdminController) CommissionOverview(c *gin.Context) {
	d, err := h.Svc.CommissionOverview(c.Param("city"), c.Param("dateRange"))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, d)
}

// POST /superadmin/add-city (multipart)
func (h *SuperAdminController) AddCity(c *gin.Context) {
	url, ok := uploadImage(c, h.Storage, "cityImage", "cities", false)
	if !ok {
		return
	}
	city, err := h.Svc.AddCity(c.PostForm("city"), url)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "City added successfully!", "cityName": city.City})
}

// GET /superadmin/get-all-cities
func (h *SuperAdminController) Cities(c *gin.Context) {
	list, err := h.Svc.Cities()
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"cities": list})
}

// GET /superadmin/check-super-admin
func (h *SuperAdminController) Check(c *gin.Context) {
	if utils.CurrentRole(c) != entity.RoleSuperAdmin {
		resp.Unauthorized(c, "Access denied. Super admin only.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PUT /superadmin/complete-payout-now
func (h *SuperAdminController) CompletePayout(c *gin.Context) {
	var req struct {
		RestaurantID uint `json:"restaurantId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	n, err := h.Svc.CompletePayout(req.RestaurantID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Restaurant payout completed", "updated": n})
}
