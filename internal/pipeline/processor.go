// Package pipeline coordinates the per-document stages: transcription,
// field extraction, and GST derivation, with optional persistence.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/kiranatools/gst-agent/constants"
	"github.com/kiranatools/gst-agent/internal/common"
	"github.com/kiranatools/gst-agent/internal/extract"
	"github.com/kiranatools/gst-agent/internal/gst"
	"github.com/kiranatools/gst-agent/internal/ocr"
	"github.com/kiranatools/gst-agent/internal/repository"
)

// Processor runs transcription then extraction then GST derivation for one
// document. Documents are independent; a Processor is safe for concurrent
// use across files.
type Processor struct {
	logger   *slog.Logger
	ocr      *ocr.Extractor
	calc     *gst.Calculator
	invoices repository.InvoiceRepository // nil disables persistence
}

func NewProcessor(logger *slog.Logger, ocrx *ocr.Extractor, calc *gst.Calculator, invoices repository.InvoiceRepository) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, ocr: ocrx, calc: calc, invoices: invoices}
}

// ProcessFile transcribes path, extracts fields from the transcript, derives
// the tax view, and persists the row when a store is attached. Extraction
// itself cannot fail: absent fields flow through as empty values. Only an
// unreadable or unsupported document yields an error, and it aborts just
// this document.
func (p *Processor) ProcessFile(ctx context.Context, path string) (gst.Result, error) {
	if constants.MapExtToFormat(filepath.Ext(path)) == "" {
		return gst.Result{}, common.NewAppError("UNSUPPORTED_FORMAT",
			"unsupported file extension: "+filepath.Ext(path), common.ErrUnsupportedInput)
	}

	ocrRes, err := p.ocr.Extract(ctx, path)
	if err != nil {
		p.logger.Error("pipeline.ocr.failed", "path", path, "error", err)
		return gst.Result{}, common.NewAppError("OCR_FAILED",
			"document could not be read", common.ErrUnreadableInput)
	}
	p.logger.Debug("pipeline.ocr.ok",
		"path", path,
		"method", ocrRes.Method,
		"pages", ocrRes.Pages,
		"confidence", ocrRes.Confidence,
	)

	fields := p.extractor().Extract(extract.Normalize(ocrRes.Text))
	result := p.calc.Process(fields)

	p.logger.Info("pipeline.extract.ok",
		"path", path,
		"gstin", fields.GSTIN,
		"valid_gstin", result.ValidGSTIN,
		"invoice_date", fields.InvoiceDate,
		"has_amount", fields.TotalAmount != nil,
	)

	if p.invoices != nil {
		if err := p.invoices.Insert(ctx, repository.FromResult(path, result)); err != nil {
			// the extraction result is still good; persistence failure is
			// reported but does not void the request
			p.logger.Error("pipeline.store.failed", "path", path, "error", err)
		}
	}
	return result, nil
}

// ProcessText runs extraction and GST derivation over an already-available
// transcript (pre-transcribed input or native PDF text supplied upstream).
func (p *Processor) ProcessText(text string) gst.Result {
	fields := p.extractor().Extract(extract.Normalize(text))
	return p.calc.Process(fields)
}

func (p *Processor) extractor() *extract.Extractor {
	return extract.NewExtractor(extract.WithTrace(func(stage string, attrs ...any) {
		p.logger.Debug("extract."+stage, attrs...)
	}))
}
