package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onerom/salestrack/internal/database"
	"github.com/onerom/salestrack/internal/repository"
)

func newTestSalesService(t *testing.T) *SalesService {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sales.db")
	db, err := database.Open(path, database.ModeReadWriteCreate)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db.DB))

	return NewSalesService(repository.NewSaleRepository(db))
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := newTestSalesService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateSaleParams{Model: "Fire", Variant: "24pin"})
	require.NoError(t, err)

	entries, _, err := svc.Recent(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Quantity)
	assert.Equal(t, DefaultSeller, entries[0].Seller)
	assert.Equal(t, "", entries[0].Notes)
}

func TestCreateRejectsMissingModelOrVariant(t *testing.T) {
	svc := newTestSalesService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateSaleParams{Variant: "24pin"})
	assert.ErrorIs(t, err, ErrInvalidSale)

	_, err = svc.Create(ctx, CreateSaleParams{Model: "Fire"})
	assert.ErrorIs(t, err, ErrInvalidSale)
}

func TestUpdateAndDeleteMissingIDSucceed(t *testing.T) {
	svc := newTestSalesService(t)
	ctx := context.Background()

	err := svc.Update(ctx, 404, UpdateSaleParams{Model: "Fire", Variant: "24pin", Quantity: 1, Seller: "x"})
	assert.NoError(t, err, "update on missing id is a silent no-op")

	err = svc.Delete(ctx, 404)
	assert.NoError(t, err, "delete on missing id is a silent no-op")

	total, err := svc.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestTotalAndBreakdownAgree(t *testing.T) {
	svc := newTestSalesService(t)
	ctx := context.Background()

	qty := func(n int) *int { return &n }
	_, err := svc.Create(ctx, CreateSaleParams{Model: "Fire", Variant: "24pin", Quantity: qty(2)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateSaleParams{Model: "Fire", Variant: "24pin", Quantity: qty(1)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateSaleParams{Model: "Ice", Variant: "28pin", Quantity: qty(5)})
	require.NoError(t, err)

	total, err := svc.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, total)

	breakdown, err := svc.Breakdown(ctx)
	require.NoError(t, err)
	grouped := 0
	for _, b := range breakdown {
		grouped += b.Count
	}
	assert.Equal(t, total, grouped)
}
