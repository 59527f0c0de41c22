package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/onerom/salestrack/internal/models"
	"github.com/onerom/salestrack/internal/service"
)

// SalesHandler serves the administrative CRUD endpoints for the ledger.
type SalesHandler struct {
	salesService *service.SalesService
}

// NewSalesHandler creates a new SalesHandler.
func NewSalesHandler(salesService *service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

type createSaleRequest struct {
	Model    string `json:"model" binding:"required"`
	Variant  string `json:"variant" binding:"required"`
	Quantity *int   `json:"quantity"`
	Seller   string `json:"seller"`
	Notes    string `json:"notes"`
}

type updateSaleRequest struct {
	Model    string `json:"model" binding:"required"`
	Variant  string `json:"variant" binding:"required"`
	Quantity *int   `json:"quantity" binding:"required"`
	Seller   string `json:"seller" binding:"required"`
	Notes    string `json:"notes"`
}

// GetRecent handles GET /api/sales/recent?offset=<int>&limit=<int>
func (h *SalesHandler) GetRecent(c *gin.Context) {
	offset := 0
	limit := 10
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	entries, total, err := h.salesService.Recent(c.Request.Context(), offset, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list recent sales")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve sales"})
		return
	}
	if entries == nil {
		entries = []models.Sale{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "total_count": total})
}

// CreateSale handles POST /api/sales
func (h *SalesHandler) CreateSale(c *gin.Context) {
	var req createSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid request body"})
		return
	}

	_, err := h.salesService.Create(c.Request.Context(), service.CreateSaleParams{
		Model:    req.Model,
		Variant:  req.Variant,
		Quantity: req.Quantity,
		Seller:   req.Seller,
		Notes:    req.Notes,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create sale")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to create sale"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UpdateSale handles PUT /api/sales/:id
func (h *SalesHandler) UpdateSale(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid sale id"})
		return
	}

	var req updateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid request body"})
		return
	}

	if err := h.salesService.Update(c.Request.Context(), id, service.UpdateSaleParams{
		Model:    req.Model,
		Variant:  req.Variant,
		Quantity: *req.Quantity,
		Seller:   req.Seller,
		Notes:    req.Notes,
	}); err != nil {
		log.Error().Err(err).Int64("sale_id", id).Msg("failed to update sale")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to update sale"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteSale handles DELETE /api/sales/:id
func (h *SalesHandler) DeleteSale(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid sale id"})
		return
	}

	if err := h.salesService.Delete(c.Request.Context(), id); err != nil {
		log.Error().Err(err).Int64("sale_id", id).Msg("failed to delete sale")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to delete sale"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
