package server

import (
	"github.com/kiranatools/gst-agent/internal/extract"
	"github.com/kiranatools/gst-agent/internal/gst"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ProcessInvoiceResponse is the JSON body for one processed document.
type ProcessInvoiceResponse struct {
	Success     bool           `json:"success"`
	InvoiceInfo extract.Fields `json:"invoice_info"`
	Processed   gst.Result     `json:"processed_data"`
	GSTR1Row    gst.Row        `json:"gstr1_data"`
}

// ExportRequest carries previously computed rows back for serialization.
// With no rows given, the stored invoice history is exported instead.
type ExportRequest struct {
	Rows   []gst.Row `json:"rows"`
	Format string    `json:"format,omitempty"` // "csv" (default) | "xlsx"
}
