package gst

import "github.com/shopspring/decimal"

// Split is the tax breakdown of an invoice total at a single fixed rate.
// Intra-state supplies split the GST into equal CGST/SGST halves; inter-state
// supplies carry the whole amount as IGST.
type Split struct {
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	TotalGST     decimal.Decimal `json:"total_gst"`
}

// Calculator applies the filer's fixed rate and home state.
type Calculator struct {
	SellerStateCode string
	RatePercent     int
}

func NewCalculator(sellerStateCode string, ratePercent int) *Calculator {
	if ratePercent <= 0 {
		ratePercent = 18
	}
	return &Calculator{SellerStateCode: sellerStateCode, RatePercent: ratePercent}
}

// Split computes the tax breakdown for an invoice total. The buyer state is
// taken from the counterparty GSTIN; a missing or non-positive total yields
// an all-zero split rather than an error.
func (c *Calculator) Split(total float64, gstin string) Split {
	t := decimal.NewFromFloat(total)
	if t.Sign() <= 0 {
		return Split{}
	}

	// taxable = total / (1 + rate); gst = total - taxable
	rate := decimal.NewFromInt(int64(c.RatePercent)).Div(decimal.NewFromInt(100))
	taxable := t.Div(decimal.NewFromInt(1).Add(rate)).Round(2)
	gst := t.Sub(taxable).Round(2)

	s := Split{TaxableValue: taxable, TotalGST: gst}
	if StateCode(gstin) == c.SellerStateCode {
		half := gst.Div(decimal.NewFromInt(2)).Round(2)
		s.CGST = half
		s.SGST = gst.Sub(half)
	} else {
		s.IGST = gst
	}
	return s
}
