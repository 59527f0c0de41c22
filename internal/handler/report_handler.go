package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/onerom/salestrack/internal/models"
	"github.com/onerom/salestrack/internal/service"
)

// ReportHandler serves the public read-only reporting endpoints.
type ReportHandler struct {
	salesService *service.SalesService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(salesService *service.SalesService) *ReportHandler {
	return &ReportHandler{salesService: salesService}
}

// GetTotal handles GET /api/sales/total
func (h *ReportHandler) GetTotal(c *gin.Context) {
	total, err := h.salesService.Total(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to read sales total")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve total"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// GetBreakdown handles GET /api/sales/by-type
func (h *ReportHandler) GetBreakdown(c *gin.Context) {
	counts, err := h.salesService.Breakdown(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to read sales breakdown")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve breakdown"})
		return
	}
	if counts == nil {
		counts = []models.VariantCount{}
	}
	c.JSON(http.StatusOK, gin.H{"breakdown": counts})
}
