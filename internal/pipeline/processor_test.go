package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranatools/gst-agent/internal/common"
	"github.com/kiranatools/gst-agent/internal/extract"
	"github.com/kiranatools/gst-agent/internal/gst"
	"github.com/kiranatools/gst-agent/internal/ocr"
	"github.com/kiranatools/gst-agent/internal/repository"
)

func newTestProcessor(t *testing.T, invoices repository.InvoiceRepository) *Processor {
	t.Helper()
	return NewProcessor(nil, ocr.NewExtractor(ocr.Config{}, nil),
		gst.NewCalculator("37", 18), invoices)
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessFileTxt(t *testing.T) {
	path := writeFixture(t, "invoice.txt",
		"Date: 12-JAN-2025 GSTIN: 27AABCB1234D1Z5 total 1180.00")

	res, err := newTestProcessor(t, nil).ProcessFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "27AABCB1234D1Z5", res.Fields.GSTIN)
	assert.Equal(t, "12-JAN-2025", res.Fields.InvoiceDate)
	require.NotNil(t, res.Fields.TotalAmount)
	assert.Equal(t, 1180.00, *res.Fields.TotalAmount)
	assert.True(t, res.ValidGSTIN)
	assert.Equal(t, "Maharashtra (27)", res.Row.PlaceOfSupply)
	assert.True(t, res.Split.IGST.Equal(res.Split.TotalGST))
}

func TestProcessFilePersists(t *testing.T) {
	db, err := repository.Open(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	defer db.Close()
	invoices := repository.NewInvoiceRepository(db, nil)

	path := writeFixture(t, "invoice.txt", "GSTIN 37AABCU9603R1ZX TOTAL 590.00")
	_, err = newTestProcessor(t, invoices).ProcessFile(context.Background(), path)
	require.NoError(t, err)

	stored, err := invoices.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, path, stored[0].SourcePath)
	assert.Equal(t, "37AABCU9603R1ZX", stored[0].GSTIN)
	assert.Equal(t, "45.00", stored[0].CGST)
	assert.Equal(t, "45.00", stored[0].SGST)
}

func TestProcessFileUnsupportedExtension(t *testing.T) {
	path := writeFixture(t, "invoice.docx", "irrelevant")

	_, err := newTestProcessor(t, nil).ProcessFile(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnsupportedInput))
}

func TestProcessFileMissing(t *testing.T) {
	_, err := newTestProcessor(t, nil).ProcessFile(context.Background(),
		filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnreadableInput))
}

func TestProcessFileGarbageStillSucceeds(t *testing.T) {
	// unreadable content is an error; readable garbage is not
	path := writeFixture(t, "noise.txt", "@@@ ### $$$")

	res, err := newTestProcessor(t, nil).ProcessFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, res.Fields.GSTIN)
	assert.Nil(t, res.Fields.TotalAmount)
	assert.Equal(t, "0.00", res.Row.InvoiceValue)
}

func TestProcessText(t *testing.T) {
	res := newTestProcessor(t, nil).ProcessText("grand total 19,854.00 items 3")
	require.NotNil(t, res.Fields.TotalAmount)
	assert.Equal(t, 19854.00, *res.Fields.TotalAmount)
	assert.Equal(t, extract.Normalize("grand total 19,854.00 items 3"), res.Fields.RawText)
}
