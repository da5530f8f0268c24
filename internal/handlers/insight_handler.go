package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finvue/internal/errors"
	"finvue/internal/services"
)

// InsightHandler handles AI advisor requests.
type InsightHandler struct {
	insightService services.InsightServicer
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService services.InsightServicer) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// GetInsights handles generating advisory text for the current ledger.
func (h *InsightHandler) GetInsights(c *gin.Context) {
	insights, err := h.insightService.GetInsights(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// ParseTransactionRequest represents the payload for natural-language parsing.
type ParseTransactionRequest struct {
	Input string `json:"input" binding:"required,min=1,max=500"`
}

// ParseTransaction handles turning free text into a draft transaction.
// The draft is returned for confirmation and never stored here.
func (h *InsightHandler) ParseTransaction(c *gin.Context) {
	var req ParseTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	draft, err := h.insightService.ParseTransaction(c.Request.Context(), req.Input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}
