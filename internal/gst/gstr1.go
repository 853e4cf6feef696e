package gst

import (
	"fmt"

	"github.com/kiranatools/gst-agent/internal/extract"
)

// Row is one flat GSTR-1 line for an invoice. Field order is the column
// order of the exported report.
type Row struct {
	RecipientGSTIN string `json:"gstin_uin_of_recipient"`
	InvoiceDate    string `json:"invoice_date"`
	InvoiceValue   string `json:"invoice_value"`
	PlaceOfSupply  string `json:"place_of_supply"`
	ReverseCharge  string `json:"reverse_charge"`
	InvoiceType    string `json:"invoice_type"`
}

// Headers returns the GSTR-1 column labels in export order.
func Headers() []string {
	return []string{
		"GSTIN/UIN of Recipient",
		"Invoice Date",
		"Invoice Value",
		"Place of Supply",
		"Reverse Charge",
		"Invoice Type",
	}
}

// Values returns the row cells in the same order as Headers. Absent fields
// render as empty or zero, never as a failure.
func (r Row) Values() []string {
	return []string{
		r.RecipientGSTIN,
		r.InvoiceDate,
		r.InvoiceValue,
		r.PlaceOfSupply,
		r.ReverseCharge,
		r.InvoiceType,
	}
}

// Result is the full downstream view of one extracted invoice.
type Result struct {
	Fields     extract.Fields `json:"fields"`
	ValidGSTIN bool           `json:"is_valid_gstin"`
	State      string         `json:"state,omitempty"`
	Split      Split          `json:"gst_calculation"`
	Row        Row            `json:"gstr1_row"`
}

// Process derives the validity flag, state, tax split, and GSTR-1 row from
// one set of extracted fields. A plausible-but-unverified GSTIN is still
// carried through with its validity flag, never discarded.
func (c *Calculator) Process(f extract.Fields) Result {
	var total float64
	if f.TotalAmount != nil {
		total = *f.TotalAmount
	}

	res := Result{
		Fields:     f,
		ValidGSTIN: Valid(f.GSTIN),
		State:      StateName(f.GSTIN),
		Split:      c.Split(total, f.GSTIN),
	}

	placeName := res.State
	if placeName == "" {
		placeName = "Unknown"
	}
	res.Row = Row{
		RecipientGSTIN: f.GSTIN,
		InvoiceDate:    f.InvoiceDate,
		InvoiceValue:   fmt.Sprintf("%.2f", total),
		PlaceOfSupply:  fmt.Sprintf("%s (%s)", placeName, StateCode(f.GSTIN)),
		ReverseCharge:  "N",
		InvoiceType:    "Regular",
	}
	return res
}
