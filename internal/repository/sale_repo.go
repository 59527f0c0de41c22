package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/onerom/salestrack/internal/models"
)

// SaleRepository handles data access for the sales ledger.
type SaleRepository struct {
	db *sqlx.DB
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(db *sqlx.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// InsertSaleParams enumerates the caller-supplied fields of a new sale.
// date_added is assigned by the store at insert time.
type InsertSaleParams struct {
	Model    string
	Variant  string
	Quantity int
	Seller   string
	Notes    string
}

// UpdateSaleParams enumerates the mutable fields of a sale. Updates replace
// all of them together; date_added is never touched.
type UpdateSaleParams struct {
	Model    string
	Variant  string
	Quantity int
	Seller   string
	Notes    string
}

// Insert appends a new sale and returns its store-assigned id.
func (r *SaleRepository) Insert(ctx context.Context, p InsertSaleParams) (int64, error) {
	const q = `INSERT INTO sales (model, variant, quantity, seller, notes) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Model, p.Variant, p.Quantity, p.Seller, p.Notes)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update replaces all mutable fields of the sale identified by id. It returns
// the number of affected rows; 0 means the id did not exist, which callers
// treat as a no-op rather than an error.
func (r *SaleRepository) Update(ctx context.Context, id int64, p UpdateSaleParams) (int64, error) {
	const q = `UPDATE sales SET model = ?, variant = ?, quantity = ?, seller = ?, notes = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.Model, p.Variant, p.Quantity, p.Seller, p.Notes, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the sale identified by id. Like Update, a missing id yields
// 0 affected rows and no error.
func (r *SaleRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM sales WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListRecent returns sales ordered newest first, windowed by offset/limit,
// plus the total row count across the whole table for pagination.
func (r *SaleRepository) ListRecent(ctx context.Context, offset, limit int) ([]models.Sale, int, error) {
	const q = `
        SELECT id, date_added, model, variant, quantity,
               COALESCE(seller, '') AS seller, COALESCE(notes, '') AS notes
        FROM sales
        ORDER BY date_added DESC, id DESC
        LIMIT ? OFFSET ?`

	var sales []models.Sale
	if err := r.db.SelectContext(ctx, &sales, q, limit, offset); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM sales`); err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

// SumQuantity returns the total quantity across all sales, 0 when the table
// is empty.
func (r *SaleRepository) SumQuantity(ctx context.Context) (int, error) {
	const q = `SELECT COALESCE(SUM(quantity), 0) FROM sales`
	var total int
	if err := r.db.GetContext(ctx, &total, q); err != nil {
		return 0, err
	}
	return total, nil
}

// CountByVariant returns the quantity sold per distinct (model, variant)
// pair. Group order is unspecified.
func (r *SaleRepository) CountByVariant(ctx context.Context) ([]models.VariantCount, error) {
	const q = `
        SELECT model, variant, SUM(quantity) AS count
        FROM sales
        GROUP BY model, variant`

	var counts []models.VariantCount
	if err := r.db.SelectContext(ctx, &counts, q); err != nil {
		return nil, err
	}
	return counts, nil
}
