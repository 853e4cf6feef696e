package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kiranatools/gst-agent/internal/common"
	"github.com/kiranatools/gst-agent/internal/export"
)

// handleExport serializes previously computed GSTR-1 rows as a downloadable
// file. When the request carries no rows, the stored invoice history is
// exported instead.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteHTTPError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}

	rows := req.Rows
	if len(rows) == 0 {
		if s.invoices == nil {
			common.WriteHTTPError(w, http.StatusBadRequest, "NO_ROWS", "no rows provided")
			return
		}
		stored, err := s.invoices.List(r.Context())
		if err != nil {
			s.logger.Error("export.list.failed", "error", err)
			common.WriteHTTPError(w, http.StatusInternalServerError, "INTERNAL", "could not load stored invoices")
			return
		}
		for _, inv := range stored {
			rows = append(rows, export.RowFromInvoice(inv))
		}
	}
	if len(rows) == 0 {
		common.WriteHTTPError(w, http.StatusBadRequest, "NO_ROWS", "nothing to export")
		return
	}

	first := rows[0]
	switch req.Format {
	case "", "csv":
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, rows); err != nil {
			s.logger.Error("export.csv.failed", "error", err)
			common.WriteHTTPError(w, http.StatusInternalServerError, "INTERNAL", "csv serialization failed")
			return
		}
		s.sendAttachment(w, export.Filename(first.RecipientGSTIN, first.InvoiceDate), "text/csv", buf.Bytes())
	case "xlsx":
		b, err := export.WriteXLSX(rows, s.logger)
		if err != nil {
			s.logger.Error("export.xlsx.failed", "error", err)
			common.WriteHTTPError(w, http.StatusInternalServerError, "INTERNAL", "xlsx serialization failed")
			return
		}
		name := export.Filename(first.RecipientGSTIN, first.InvoiceDate)
		s.sendAttachment(w, name[:len(name)-len("csv")]+"xlsx",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", b)
	default:
		common.WriteHTTPError(w, http.StatusBadRequest, "BAD_FORMAT", "format must be csv or xlsx")
	}
}

func (s *Server) sendAttachment(w http.ResponseWriter, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Error("write attachment failed", "error", err)
	}
}
