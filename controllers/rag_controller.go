package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/rag"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// RagController serves the menu assistant. Bot is nil when no LLM key is configured.
type RagController struct {
	Bot     *rag.Bot
	History rag.HistoryStore
}

func NewRagController(bot *rag.Bot, history rag.HistoryStore) *RagController {
	return &RagController{Bot: bot, History: history}
}

type askReq struct {
	Query string `json:"query"`
	City  string `json:"city"`
}

// POST /rag/ask
func (h *RagController) Ask(c *gin.Context) {
	var req askReq
	_ = c.ShouldBindJSON(&req)
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'query' in request body."})
		return
	}
	if h.Bot == nil {
		resp.Unavailable(c, "assistant is not configured")
		return
	}
	answer := h.Bot.Ask(c.Request.Context(), utils.RequestID(c), req.Query, req.City)
	c.JSON(http.StatusOK, gin.H{"response": answer})
}

// GET /rag/history?limit=
func (h *RagController) RecentHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			resp.BadRequest(c, "limit must be a positive number")
			return
		}
		limit = min(n, maxHistoryLimit)
	}
	list, err := h.History.Latest(c.Request.Context(), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, gin.H{"transcripts": list})
}
