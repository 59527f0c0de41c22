package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/onerom/salestrack/internal/repository"
	"github.com/onerom/salestrack/internal/sku"
)

// OrderStatusProcessing is the order lifecycle state meaning payment
// captured but not yet fulfilled. It is the only status that triggers
// ingestion.
const OrderStatusProcessing = "processing"

// ErrNoLineItems is returned when an order payload carries no line-items
// collection at all.
var ErrNoLineItems = errors.New("no line items")

// OrderEvent is the inbound order payload from the store platform.
type OrderEvent struct {
	ID        json.Number      `json:"id"`
	Status    string           `json:"status"`
	LineItems *[]OrderLineItem `json:"line_items"`
}

// OrderLineItem is one product entry within an order. Quantity is a pointer
// so an absent field can default to 1.
type OrderLineItem struct {
	SKU      string `json:"sku"`
	Quantity *int   `json:"quantity"`
	Name     string `json:"name"`
}

// IngestResult reports what happened to one order event.
type IngestResult struct {
	// Filtered is set when the order's status did not warrant ingestion.
	Filtered  bool
	Processed int
	Skipped   int
}

// WebhookService turns order events into ledger entries.
type WebhookService struct {
	repo     *repository.SaleRepository
	resolver *sku.Resolver
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(repo *repository.SaleRepository, resolver *sku.Resolver) *WebhookService {
	return &WebhookService{repo: repo, resolver: resolver}
}

// ProcessOrder ingests one order event. Line items are processed
// independently: a SKU that cannot be resolved, or an insert that fails, is
// counted as skipped without aborting the rest. Each insert commits on its
// own, so a partial failure leaves prior inserts intact.
func (s *WebhookService) ProcessOrder(ctx context.Context, order *OrderEvent) (IngestResult, error) {
	if order.Status != OrderStatusProcessing {
		log.Info().Str("status", order.Status).Msg("skipping order by status")
		return IngestResult{Filtered: true}, nil
	}

	if order.LineItems == nil {
		log.Error().Str("order_id", order.ID.String()).Msg("no line_items in payload")
		return IngestResult{}, ErrNoLineItems
	}

	var res IngestResult
	for _, item := range *order.LineItems {
		quantity := 1
		if item.Quantity != nil {
			quantity = *item.Quantity
		}
		name := item.Name
		if name == "" {
			name = "unknown"
		}

		if item.SKU == "" {
			log.Warn().Str("name", name).Msg("line item has no SKU")
			res.Skipped++
			continue
		}

		match, ok := s.resolver.Resolve(item.SKU)
		if !ok {
			log.Warn().Str("sku", item.SKU).Str("name", name).Msg("unknown SKU")
			res.Skipped++
			continue
		}

		_, err := s.repo.Insert(ctx, repository.InsertSaleParams{
			Model:    match.Model,
			Variant:  match.Variant,
			Quantity: quantity,
			Seller:   DefaultSeller,
			Notes:    fmt.Sprintf("packom.net Order: %s", order.ID.String()),
		})
		if err != nil {
			log.Error().Err(err).Str("sku", item.SKU).Msg("failed to record sale from order")
			res.Skipped++
			continue
		}

		log.Info().Str("sku", item.SKU).Str("model", match.Model).Str("variant", match.Variant).
			Int("quantity", quantity).Msg("order line item recorded")
		res.Processed++
	}

	log.Info().Str("order_id", order.ID.String()).
		Int("processed", res.Processed).Int("skipped", res.Skipped).
		Msg("order ingestion complete")
	return res, nil
}
