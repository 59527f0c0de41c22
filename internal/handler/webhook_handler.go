package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/onerom/salestrack/internal/service"
)

// WebhookHandler handles incoming order webhooks from the store platform.
type WebhookHandler struct {
	webhookService *service.WebhookService
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(webhookService *service.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// HandleOrderEvent handles POST /api/webhook (and the legacy
// /api/woocommerce/webhook path). Delivery-platform verification pings arrive
// without a JSON body and are absorbed as no-ops; everything else follows the
// status gate, shape validation, then per-line-item ingestion.
func (h *WebhookHandler) HandleOrderEvent(c *gin.Context) {
	log.Info().Str("content_type", c.ContentType()).Msg("webhook request received")

	// Non-JSON deliveries (verification pings) are accepted without ingestion.
	if c.ContentType() != "application/json" {
		log.Warn().Str("content_type", c.ContentType()).Msg("non-json webhook request ignored")
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "non-json request ignored"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid body"})
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		log.Error().Msg("empty webhook payload")
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "empty payload"})
		return
	}

	var order service.OrderEvent
	if err := json.Unmarshal(body, &order); err != nil {
		log.Error().Err(err).Msg("unparseable webhook payload")
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid payload"})
		return
	}

	result, err := h.webhookService.ProcessOrder(c.Request.Context(), &order)
	if err != nil {
		if errors.Is(err, service.ErrNoLineItems) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "no line items"})
			return
		}
		log.Error().Err(err).Msg("webhook processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	if result.Filtered {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "not processing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"processed": result.Processed,
		"skipped":   result.Skipped,
	})
}
