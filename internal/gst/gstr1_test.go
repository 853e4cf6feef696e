package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiranatools/gst-agent/internal/extract"
)

func TestProcessFullFields(t *testing.T) {
	total := 1180.00
	res := newTestCalculator().Process(extract.Fields{
		GSTIN:       "27AABCB1234D1Z5",
		InvoiceDate: "12-JAN-2025",
		TotalAmount: &total,
	})

	assert.True(t, res.ValidGSTIN)
	assert.Equal(t, "Maharashtra", res.State)
	assertDecimal(t, "180.00", res.Split.IGST)

	assert.Equal(t, Row{
		RecipientGSTIN: "27AABCB1234D1Z5",
		InvoiceDate:    "12-JAN-2025",
		InvoiceValue:   "1180.00",
		PlaceOfSupply:  "Maharashtra (27)",
		ReverseCharge:  "N",
		InvoiceType:    "Regular",
	}, res.Row)
}

func TestProcessAbsentFields(t *testing.T) {
	// nothing extracted: the row still materializes with zero values
	res := newTestCalculator().Process(extract.Fields{})

	assert.False(t, res.ValidGSTIN)
	assert.Empty(t, res.State)
	assert.Equal(t, "0.00", res.Row.InvoiceValue)
	assert.Equal(t, "Unknown (00)", res.Row.PlaceOfSupply)
	assert.True(t, res.Split.TotalGST.IsZero())
}

func TestProcessImplausibleGSTINStillCarried(t *testing.T) {
	total := 500.00
	res := newTestCalculator().Process(extract.Fields{
		GSTIN:       "99AABCB1234D1Z5",
		TotalAmount: &total,
	})

	assert.Equal(t, "99AABCB1234D1Z5", res.Row.RecipientGSTIN)
	assert.Equal(t, "Unknown (99)", res.Row.PlaceOfSupply)
}

func TestHeadersMatchRowValues(t *testing.T) {
	assert.Len(t, Headers(), len(Row{}.Values()))
}
