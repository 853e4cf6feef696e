package gst

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestCalculator() *Calculator {
	return NewCalculator("37", 18)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)),
		"want %s, got %s", want, got)
}

func TestSplitIntraState(t *testing.T) {
	s := newTestCalculator().Split(1180.00, "37AABCU9603R1ZX")

	assertDecimal(t, "1000.00", s.TaxableValue)
	assertDecimal(t, "180.00", s.TotalGST)
	assertDecimal(t, "90.00", s.CGST)
	assertDecimal(t, "90.00", s.SGST)
	assertDecimal(t, "0", s.IGST)
}

func TestSplitInterState(t *testing.T) {
	s := newTestCalculator().Split(1180.00, "27AABCB1234D1Z5")

	assertDecimal(t, "1000.00", s.TaxableValue)
	assertDecimal(t, "180.00", s.TotalGST)
	assertDecimal(t, "180.00", s.IGST)
	assertDecimal(t, "0", s.CGST)
	assertDecimal(t, "0", s.SGST)
}

func TestSplitHalvesSumToTotalGST(t *testing.T) {
	// an odd-paise GST never loses a paisa to rounding
	s := newTestCalculator().Split(100.01, "37AABCU9603R1ZX")
	assertDecimal(t, s.TotalGST.String(), s.CGST.Add(s.SGST))
}

func TestSplitMissingGSTINIsInterState(t *testing.T) {
	s := newTestCalculator().Split(118.00, "")
	assertDecimal(t, "18.00", s.IGST)
	assertDecimal(t, "0", s.CGST)
}

func TestSplitNonPositiveTotal(t *testing.T) {
	for _, total := range []float64{0, -50.00} {
		s := newTestCalculator().Split(total, "37AABCU9603R1ZX")
		assert.True(t, s.TaxableValue.IsZero(), "total %v", total)
		assert.True(t, s.TotalGST.IsZero(), "total %v", total)
	}
}

func TestNewCalculatorDefaultsRate(t *testing.T) {
	c := NewCalculator("37", 0)
	assert.Equal(t, 18, c.RatePercent)
}
