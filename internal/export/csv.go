// Package export serializes GSTR-1 rows as delimited text or XLSX workbooks.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/kiranatools/gst-agent/internal/gst"
	"github.com/kiranatools/gst-agent/internal/repository"
)

// WriteCSV writes the GSTR-1 header plus one line per row. Rows from
// invoices with absent fields carry empty/zero cells.
func WriteCSV(w io.Writer, rows []gst.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(gst.Headers()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename derives the download filename from the identifying fields of the
// export's first row, falling back to placeholders when they are absent.
func Filename(gstin, date string) string {
	if gstin == "" {
		gstin = "invoice"
	}
	if date == "" {
		date = "date"
	}
	return fmt.Sprintf("GSTR1_%s_%s.csv", sanitize(gstin), sanitize(date))
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, s)
}

// RowFromInvoice rebuilds the GSTR-1 row for a stored invoice.
func RowFromInvoice(inv *repository.Invoice) gst.Row {
	place := inv.State
	if place == "" {
		place = "Unknown"
	}
	return gst.Row{
		RecipientGSTIN: inv.GSTIN,
		InvoiceDate:    inv.InvoiceDate,
		InvoiceValue:   fmt.Sprintf("%.2f", inv.TotalAmount),
		PlaceOfSupply:  fmt.Sprintf("%s (%s)", place, gst.StateCode(inv.GSTIN)),
		ReverseCharge:  "N",
		InvoiceType:    "Regular",
	}
}
