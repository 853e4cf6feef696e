package server

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/kiranatools/gst-agent/constants"
	"github.com/kiranatools/gst-agent/internal/common"
)

// handleProcessInvoice accepts one document per call as a multipart upload,
// runs the full pipeline, and returns the extraction result plus derived tax
// fields. An unreadable or unsupported upload fails only this request.
func (s *Server) handleProcessInvoice(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		common.WriteHTTPError(w, http.StatusBadRequest, "BAD_UPLOAD", "no file provided")
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		common.WriteHTTPError(w, http.StatusBadRequest, "BAD_UPLOAD", "no file provided")
		return
	}
	defer file.Close()

	ext := constants.NormalizeExt(filepath.Ext(hdr.Filename))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		common.WriteHTTPError(w, http.StatusBadRequest, "BAD_FORMAT",
			"invalid file format, upload PDF, JPG, PNG, HEIC or TXT")
		return
	}

	// spool the upload to a temp file for the external OCR tools
	tmp, err := os.CreateTemp("", "upload-*."+ext)
	if err != nil {
		common.WriteHTTPError(w, http.StatusInternalServerError, "INTERNAL", "could not buffer upload")
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		common.WriteHTTPError(w, http.StatusInternalServerError, "INTERNAL", "could not buffer upload")
		return
	}
	if err := tmp.Close(); err != nil {
		common.WriteHTTPError(w, http.StatusInternalServerError, "INTERNAL", "could not buffer upload")
		return
	}

	result, err := s.processor.ProcessFile(r.Context(), tmpPath)
	if err != nil {
		s.logger.Warn("process invoice failed",
			"request_id", common.RequestIDFromContext(r.Context()),
			"filename", hdr.Filename,
			"error", err,
		)
		common.WriteHTTPError(w, common.HTTPStatusFor(err), "PROCESS_FAILED", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, ProcessInvoiceResponse{
		Success:     true,
		InvoiceInfo: result.Fields,
		Processed:   result,
		GSTR1Row:    result.Row,
	})
}
