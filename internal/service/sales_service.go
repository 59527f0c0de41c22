package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/onerom/salestrack/internal/models"
	"github.com/onerom/salestrack/internal/repository"
)

// DefaultSeller is the fixed operator identity attributed to sales recorded
// without an explicit seller.
const DefaultSeller = "piers.rocks"

// ErrInvalidSale is returned when a sale is missing its model or variant.
var ErrInvalidSale = errors.New("model and variant are required")

// SalesService provides ledger operations for both surfaces: aggregates for
// the public reporting role and CRUD for the admin role.
type SalesService struct {
	repo *repository.SaleRepository
}

// NewSalesService creates a new SalesService.
func NewSalesService(repo *repository.SaleRepository) *SalesService {
	return &SalesService{repo: repo}
}

// CreateSaleParams carries the fields of a new sale. Quantity defaults to 1
// and Seller to DefaultSeller when omitted.
type CreateSaleParams struct {
	Model    string
	Variant  string
	Quantity *int
	Seller   string
	Notes    string
}

// UpdateSaleParams carries the full replacement state for an existing sale.
type UpdateSaleParams struct {
	Model    string
	Variant  string
	Quantity int
	Seller   string
	Notes    string
}

// Create records a new sale, applying the documented defaults.
func (s *SalesService) Create(ctx context.Context, p CreateSaleParams) (int64, error) {
	if p.Model == "" || p.Variant == "" {
		return 0, ErrInvalidSale
	}

	quantity := 1
	if p.Quantity != nil {
		quantity = *p.Quantity
	}
	seller := p.Seller
	if seller == "" {
		seller = DefaultSeller
	}

	id, err := s.repo.Insert(ctx, repository.InsertSaleParams{
		Model:    p.Model,
		Variant:  p.Variant,
		Quantity: quantity,
		Seller:   seller,
		Notes:    p.Notes,
	})
	if err != nil {
		return 0, err
	}

	log.Info().Int64("sale_id", id).Str("model", p.Model).Str("variant", p.Variant).
		Int("quantity", quantity).Msg("sale recorded")
	return id, nil
}

// Update replaces all mutable fields of a sale. A missing id is a silent
// no-op: existing admin tooling treats updates as idempotent.
func (s *SalesService) Update(ctx context.Context, id int64, p UpdateSaleParams) error {
	if p.Model == "" || p.Variant == "" {
		return ErrInvalidSale
	}

	affected, err := s.repo.Update(ctx, id, repository.UpdateSaleParams{
		Model:    p.Model,
		Variant:  p.Variant,
		Quantity: p.Quantity,
		Seller:   p.Seller,
		Notes:    p.Notes,
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Debug().Int64("sale_id", id).Msg("update of missing sale ignored")
	}
	return nil
}

// Delete removes a sale. Deletion is physical; a missing id is a silent
// no-op like Update.
func (s *SalesService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Debug().Int64("sale_id", id).Msg("delete of missing sale ignored")
	}
	return nil
}

// Recent returns the newest sales windowed by offset/limit plus the total
// row count.
func (s *SalesService) Recent(ctx context.Context, offset, limit int) ([]models.Sale, int, error) {
	return s.repo.ListRecent(ctx, offset, limit)
}

// Total returns the total quantity sold across all records.
func (s *SalesService) Total(ctx context.Context) (int, error) {
	return s.repo.SumQuantity(ctx)
}

// Breakdown returns quantity sold per (model, variant) pair.
func (s *SalesService) Breakdown(ctx context.Context) ([]models.VariantCount, error) {
	return s.repo.CountByVariant(ctx)
}
