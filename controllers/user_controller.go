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

type UserController struct {
	Svc     *services.AuthService
	Orders  *services.OrderService
	Storage storage.Uploader
}

func NewUserController(s *services.AuthService, orders *services.OrderService, up storage.Uploader) *UserController {
	return &UserController{Svc: s, Orders: orders, Storage: up}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /auth/user/register
func (h *UserController) Register(c *gin.Context) {
	var req services.UserRegisterIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Register(req)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /auth/user/login
func (h *UserController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Login(req.Email, req.Password)
	if err != nil {
		respondErrCreds(c, err, http.StatusNotFound)
		return
	}
	resp.OK(c, out)
}

// GET /auth/user/fetch-user-data
func (h *UserController) Profile(c *gin.Context) {
	u, err := h.Svc.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"user": u})
}

// PUT /auth/user/manage-profile
func (h *UserController) UpdateProfile(c *gin.Context) {
	var req services.ProfileUpdateIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := h.Svc.UpdateProfile(utils.CurrentUserID(c), req)
	if err != nil {
		respondErrCreds(c, err, http.StatusUnauthorized)
		return
	}
	resp.OK(c, gin.H{"user": u})
}

// POST /auth/user/upload-profile-image
func (h *UserController) UploadProfileImage(c *gin.Context) {
	url, ok := uploadImage(c, h.Storage, "profileImage", "profiles", true)
	if !ok {
		return
	}
	u, err := h.Svc.SetProfileImage(utils.CurrentUserID(c), url)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"profileImage": u.ProfileImage, "user": u})
}

// GET /auth/user/checkuser
func (h *UserController) CheckUser(c *gin.Context) {
	if utils.CurrentRole(c) == entity.RoleSuperAdmin {
		resp.Unauthorized(c, "Please login as user account!")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /auth/user/check-order/:orderId
func (h *UserController) CheckOrder(c *gin.Context) {
	id, ok := paramID(c, "orderId")
	if !ok {
		return
	}
	o, err := h.Orders.GetForUser(utils.CurrentUserID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"order": o})
}

// ----- Favorites -----

type favoriteRestaurantReq struct {
	RestaurantID uint   `json:"restaurantId" binding:"required"`
	Link         string `json:"link"`
}

type favoriteItemReq struct {
	ItemID uint   `json:"itemId" binding:"required"`
	Link   string `json:"link"`
}

// GET /auth/user/get-favorite-restaurants
func (h *UserController) FavoriteRestaurants(c *gin.Context) {
	v, err := h.Svc.FavoriteRestaurants(utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, v)
}

// PUT /auth/user/add-to-favorite-restaurant
func (h *UserController) AddFavoriteRestaurant(c *gin.Context) {
	var req favoriteRestaurantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ids, err := h.Svc.AddFavoriteRestaurant(utils.CurrentUserID(c), req.RestaurantID, req.Link)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"favoriteRestaurants": ids})
}

// DELETE /auth/user/removed-from-favorite-restaurant/:restaurantId
func (h *UserController) RemoveFavoriteRestaurant(c *gin.Context) {
	id, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	ids, err := h.Svc.RemoveFavoriteRestaurant(utils.CurrentUserID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"favoriteRestaurants": ids})
}

// GET /auth/user/get-favorite-items
func (h *UserController) FavoriteItems(c *gin.Context) {
	v, err := h.Svc.FavoriteItems(utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, v)
}

// PUT /auth/user/add-to-favorite-item
func (h *UserController) AddFavoriteItem(c *gin.Context) {
	var req favoriteItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ids, err := h.Svc.AddFavoriteItem(utils.CurrentUserID(c), req.ItemID, req.Link)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"favoriteItems": ids})
}

// DELETE /auth/user/removed-from-favorite-item/:itemId
func (h *UserController) RemoveFavoriteItem(c *gin.Context) {
	id, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	ids, err := h.Svc.RemoveFavoriteItem(utils.CurrentUserID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"favoriteItems": ids})
}
