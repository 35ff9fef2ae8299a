package controllers

import (
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/middlewares"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/services"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct{ Svc *services.ReportService }

func NewReportController(s *services.ReportService) *ReportController { return &ReportController{Svc: s} }

// POST /report/report-item
func (h *ReportController) ReportItem(c *gin.Context) {
	var req services.ReportItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	r, err := h.Svc.ReportItem(utils.CurrentUserID(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.Created(c, gin.H{"report": r})
}

// GET /report/get-all-items-reports/:restaurantId
func (h *ReportController) ForRestaurant(c *gin.Context) {
	id, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}
	if middlewares.CurrentRestaurant(c).ID != id {
		resp.Forbidden(c, "forbidden")
		return
	}
	list, err := h.Svc.ListForRestaurant(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"reports": list})
}
