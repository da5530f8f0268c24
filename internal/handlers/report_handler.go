package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finvue/internal/services"
)

// ReportHandler handles dashboard requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetDashboard handles recomputing the dashboard view. Optional
// start_date/end_date/type/category filters narrow the ledger; an
// optional currency overrides the preferred display currency.
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.reportService.GetDashboard(filter, c.Query("currency"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": dashboard})
}
