package controllers

import (
	"net/http"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/storage"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/services"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

type DeliveryBoyController struct {
	Svc     *services.DeliveryBoyService
	Orders  *services.OrderService
	Storage storage.Uploader
}

func NewDeliveryBoyController(s *services.DeliveryBoyService, orders *services.OrderService, up storage.Uploader) *DeliveryBoyController {
	return &DeliveryBoyController{Svc: s, Orders: orders, Storage: up}
}

type deliveryLoginReq struct {
	Cnicno   string `json:"cnicno"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /deliveryboy/register (multipart)
func (h *DeliveryBoyController) Register(c *gin.Context) {
	var in services.DeliveryBoyIn
	if err := c.ShouldBind(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	url, ok := uploadImage(c, h.Storage, "picture", "delivery", false)
	if !ok {
		return
	}
	out, err := h.Svc.Register(in, url)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /deliveryboy/login
func (h *DeliveryBoyController) Login(c *gin.Context) {
	var req deliveryLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Login(req.Cnicno, req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /deliveryboy/check-delivery-boy
func (h *DeliveryBoyController) Check(c *gin.Context) {
	d, err := h.Svc.Get(utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deliveryBoy": d})
}

// GET /deliveryboy/get-delivery-boy-data/:deliveryBoyId
func (h *DeliveryBoyController) Profile(c *gin.Context) {
	id, ok := selfParam(c, "deliveryBoyId")
	if !ok {
		return
	}
	d, err := h.Svc.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deliveryBoy": d})
}

// PUT /deliveryboy/update-profile-info/:deliveryBoyId (multipart)
func (h *DeliveryBoyController) UpdateProfile(c *gin.Context) {
	id, ok := selfParam(c, "deliveryBoyId")
	if !ok {
		return
	}
	var in services.DeliveryBoyIn
	if err := c.ShouldBind(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	url, ok := uploadImage(c, h.Storage, "picture", "delivery", false)
	if !ok {
		return
	}
	d, err := h.Svc.UpdateProfile(id, in, url)
	if err != nil {
		respondErrCreds(c, err, http.StatusUnauthorized)
		return
	}
	resp.OK(c, gin.H{"deliveryBoyData": d})
}

// GET /deliveryboy/get-orders/:city
func (h *DeliveryBoyController) CityOrders(c *gin.Context) {
	orders, err := h.Orders.ListByCity(c.Param("city"))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": orders})
}

// PUT /deliveryboy/accept-order/:orderId
func (h *DeliveryBoyController) Accept(c *gin.Context) {
	id, ok := paramID(c, "orderId")
	if !ok {
		return
	}
	var req statusReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
	}
	o, err := h.Orders.Accept(c.Request.Context(), utils.CurrentUserID(c), id, req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"order": o})
}

// PUT /deliveryboy/order-delivered/:orderId
func (h *DeliveryBoyController) Delivered(c *gin.Context) {
	id, ok := paramID(c, "orderId")
	if !ok {
		return
	}
	var req statusReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
	}
	o, err := h.Orders.Deliver(c.Request.Context(), utils.CurrentUserID(c), id, req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"order": o})
}

// PUT /deliveryboy/return-order/:orderId
func (h *DeliveryBoyController) Return(c *gin.Context) {
	id, ok := paramID(c, "orderId")
	if !ok {
		return
	}
	o, err := h.Orders.Return(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"order": o})
}

// GET /deliveryboy/get-delivery-boy-dashboard-overview/:deliveryBoyId
func (h *DeliveryBoyController) Dashboard(c *gin.Context) {
	id, ok := selfParam(c, "deliveryBoyId")
	if !ok {
		return
	}
	d, err := h.Svc.Dashboard(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, d)
}

// GET /deliveryboy/get-delivery-boy-earnings/:deliveryBoyId
func (h *DeliveryBoyController) Earnings(c *gin.Context) {
	id, ok := selfParam(c, "deliveryBoyId")
	if !ok {
		return
	}
	e, err := h.Svc.Earnings(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, e)
}

// GET /deliveryboy/get-all-orders/:deliveryBoyId
func (h *DeliveryBoyController) MyOrders(c *gin.Context) {
	id, ok := selfParam(c, "deliveryBoyId")
	if !ok {
		return
	}
	orders, err := h.Orders.ListForDeliveryBoy(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": orders})
}
