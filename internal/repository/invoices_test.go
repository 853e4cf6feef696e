package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranatools/gst-agent/internal/extract"
	"github.com/kiranatools/gst-agent/internal/gst"
)

func openTestRepo(t *testing.T) InvoiceRepository {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewInvoiceRepository(db, nil)
}

func TestInsertAndList(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	total := 1180.00
	res := gst.NewCalculator("37", 18).Process(extract.Fields{
		GSTIN:       "27AABCB1234D1Z5",
		InvoiceDate: "12-JAN-2025",
		TotalAmount: &total,
		RawText:     "GSTIN 27AABCB1234D1Z5 TOTAL 1180.00",
	})
	inv := FromResult("/tmp/invoice.pdf", res)
	require.NoError(t, repo.Insert(ctx, inv))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, inv.ID, got[0].ID)
	assert.Equal(t, "/tmp/invoice.pdf", got[0].SourcePath)
	assert.Equal(t, "27AABCB1234D1Z5", got[0].GSTIN)
	assert.Equal(t, "12-JAN-2025", got[0].InvoiceDate)
	assert.Equal(t, 1180.00, got[0].TotalAmount)
	assert.True(t, got[0].ValidGSTIN)
	assert.Equal(t, "Maharashtra", got[0].State)
	assert.Equal(t, "1000.00", got[0].TaxableValue)
	assert.Equal(t, "180.00", got[0].IGST)
	assert.Equal(t, "0.00", got[0].CGST)
	assert.Equal(t, "GSTIN 27AABCB1234D1Z5 TOTAL 1180.00", got[0].RawText)
}

func TestInsertAbsentFields(t *testing.T) {
	// invoices with nothing extracted are still stored
	repo := openTestRepo(t)
	ctx := context.Background()

	res := gst.NewCalculator("37", 18).Process(extract.Fields{RawText: "GARBAGE"})
	require.NoError(t, repo.Insert(ctx, FromResult("/tmp/blank.txt", res)))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].GSTIN)
	assert.False(t, got[0].ValidGSTIN)
	assert.Equal(t, "0.00", got[0].TaxableValue)
}

func TestListEmpty(t *testing.T) {
	repo := openTestRepo(t)
	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenInMemory(t *testing.T) {
	db, err := Open(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	defer db.Close()

	repo := NewInvoiceRepository(db, nil)
	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
