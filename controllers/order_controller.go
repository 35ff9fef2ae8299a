package controllers

import (
	"io"
	"net/http"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/middlewares"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/payments"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/services"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

const maxWebhookBody = 64 << 10

type OrderController struct {
	Svc      *services.OrderService
	Checkout payments.Checkout
}

func NewOrderController(s *services.OrderService, checkout payments.Checkout) *OrderController {
	return &OrderController{Svc: s, Checkout: checkout}
}

type statusReq struct {
	Status string `json:"status" binding:"omitempty,orderstatus"`
}

type statusOrderReq struct {
	StatusOrderID uint `json:"statusOrderId" binding:"required"`
}

// ----- Customer -----

// POST /order/create-order
func (h *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Create(c.Request.Context(), utils.CurrentUserID(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /order/get-order-details/:orderId
func (h *OrderController) Details(c *gin.Context) {
	id, ok := paramID(c, "orderId")
	if !ok {
		return
	}
	o, err := h.Svc.GetForUser(utils.CurrentUserID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"order": o})
}

// GET /order/get-user-orders
func (h *OrderController) UserOrders(c *gin.Context) {
	orders, err := h.Svc.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": orders})
}

// GET /order/get-user-order-status/:statusOrderId
func (h *OrderController) UserOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "statusOrderId")
	if !ok {
		return
	}
	st, err := h.Svc.StatusForUser(utils.CurrentUserID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"status": st})
}

// DELETE /order/delete-user-order/:orderId
func (h *OrderController) RemoveFromHistory(c *gin.Context) {
	id, ok := paramID(c, "orderId")
	if !ok {
		return
	}
	if err := h.Svc.RemoveForUser(utils.CurrentUserID(c), id); err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Order removed"})
}

// PUT /order/review-prompt-dismissed
func (h *OrderController) DismissReviewPrompt(c *gin.Context) {
	var req statusOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.DismissReviewPrompt(utils.CurrentUserID(c), req.StatusOrderID); err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"reviewPromptDismissed": true})
}

// PUT /order/cancel-order/:orderId
func (h *OrderController) Cancel(c *gin.Context) {
	id, ok := paramID(c, "orderId")
	if !ok {
		return
	}
	o, err := h.Svc.Cancel(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"status": o.Status, "cancelledAt": o.CancelledAt})
}

// ----- Restaurant -----

// GET /order/get-restaurant-orders/:restaurantId
func (h *OrderController) RestaurantOrders(c *gin.Context) {
	id, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	if middlewares.CurrentRestaurant(c).ID != id {
		resp.Forbidden(c, "forbidden")
		return
	}
	orders, err := h.Svc.ListForRestaurant(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": orders})
}

// PUT /order/update-order-status/:orderId
func (h *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "orderId")
	if !ok {
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Status == "" {
		resp.BadRequest(c, "status is required")
		return
	}
	out, err := h.Svc.UpdateStatus(c.Request.Context(), middlewares.CurrentRestaurant(c).ID, id, req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /order/get-filter-status-orders/:status/:restaurantId
func (h *OrderController) RestaurantOrdersByStatus(c *gin.Context) {
	id, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	if middlewares.CurrentRestaurant(c).ID != id {
		resp.Forbidden(c, "forbidden")
		return
	}
	orders, err := h.Svc.ListForRestaurantByStatus(id, c.Param("status"))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": orders})
}

// ----- Payments -----

// POST /order/stripe-webhook
func (h *OrderController) StripeWebhook(c *gin.Context) {
	if h.Checkout == nil {
		resp.Unavailable(c, "card payments are not configured")
		return
	}
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	done, err := h.Checkout.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if done != nil {
		if err := h.Svc.MarkPaid(done.SessionID, done.OrderID); err != nil {
			respondErr(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
