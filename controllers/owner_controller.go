package controllers

import (
	"net/http"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/middlewares"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/services"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

type OwnerController struct{ Svc *services.OwnerService }

func NewOwnerController(s *services.OwnerService) *OwnerController { return &OwnerController{Svc: s} }

type ownerLoginReq struct {
	Cnicno        string `json:"cnicno"`
	BusinessEmail string `json:"businessemail"`
	Password      string `json:"password"`
}

// POST /auth/owner/register
func (h *OwnerController) Register(c *gin.Context) {
	var req services.OwnerRegisterIn
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

// POST /auth/owner/login
func (h *OwnerController) Login(c *gin.Context) {
	var req ownerLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Login(req.Cnicno, req.BusinessEmail, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /auth/owner/check-owner
func (h *OwnerController) CheckOwner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /auth/owner/checkownerandrestaurant
func (h *OwnerController) CheckOwnerAndRestaurant(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "restaurant": middlewares.CurrentRestaurant(c)})
}

// PUT /auth/owner/manage-profile/:id
func (h *OwnerController) UpdateProfile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.OwnerUpdateIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := h.Svc.UpdateProfile(utils.CurrentUserID(c), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"owner": o})
}

// GET /auth/owner/fetch-owner/:id
func (h *OwnerController) Fetch(c *gin.Context) {
	id, ok := selfParam(c, "id")
	if !ok {
		return
	}
	o, err := h.Svc.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	token, err := h.Svc.Token(o)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"owner": o, "token": token})
}

// GET /auth/owner/fetch-owner-data/:id
func (h *OwnerController) FetchWithRestaurant(c *gin.Context) {
	id, ok := selfParam(c, "id")
	if !ok {
		return
	}
	o, err := h.Svc.GetWithRestaurant(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"owner": o})
}
