package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kiranatools/gst-agent/constants"
	"github.com/kiranatools/gst-agent/internal/common"
	"github.com/kiranatools/gst-agent/internal/export"
	"github.com/kiranatools/gst-agent/internal/gst"
	"github.com/kiranatools/gst-agent/internal/ocr"
	"github.com/kiranatools/gst-agent/internal/pipeline"
	"github.com/kiranatools/gst-agent/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		inmem = flag.Bool("inmem", false, "use an in-memory store instead of DB_PATH")
		dir   = flag.String("dir", "", "directory of invoice documents to process (required)")
		out   = flag.String("out", "", "output file path (optional, defaults to <dir>/../gstr1.csv)")
		xlsx  = flag.Bool("xlsx", false, "write an XLSX workbook instead of CSV")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		name := "gstr1.csv"
		if *xlsx {
			name = "gstr1.xlsx"
		}
		*out = filepath.Join(filepath.Dir(*dir), name)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	storePath := cfg.Store.Path
	if *inmem {
		storePath = ":memory:"
	}
	db, err := repository.Open(ctx, storePath, logger)
	if err != nil {
		logger.Error("open invoice store", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	invoices := repository.NewInvoiceRepository(db, logger)

	ocrx := ocr.NewExtractor(ocr.Config{
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
		HeicConverter: cfg.OCR.HeicConverter,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
	}, logger)
	calc := gst.NewCalculator(cfg.GST.SellerStateCode, cfg.GST.RatePercent)
	proc := pipeline.NewProcessor(logger, ocrx, calc, invoices)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		logger.Error("read directory", "dir", *dir, "error", err)
		os.Exit(1)
	}

	var rows []gst.Row
	var processed, failed, skipped int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(*dir, entry.Name())
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			skipped++
			continue
		}
		res, err := proc.ProcessFile(ctx, path)
		if err != nil {
			// one bad document never aborts the batch
			logger.Warn("document failed", "path", path, "error", err)
			failed++
			continue
		}
		rows = append(rows, res.Row)
		processed++
	}

	logger.Info("batch complete", "processed", processed, "failed", failed, "skipped", skipped)
	if len(rows) == 0 {
		printError("no invoices processed\n")
		os.Exit(1)
	}

	if *xlsx || strings.EqualFold(filepath.Ext(*out), ".xlsx") {
		b, err := export.WriteXLSX(rows, logger)
		if err != nil {
			logger.Error("xlsx export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, b, 0o644); err != nil {
			logger.Error("write output", "path", *out, "error", err)
			os.Exit(1)
		}
	} else {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("write output", "path", *out, "error", err)
			os.Exit(1)
		}
		if err := export.WriteCSV(f, rows); err != nil {
			_ = f.Close()
			logger.Error("csv export failed", "error", err)
			os.Exit(1)
		}
		if err := f.Close(); err != nil {
			logger.Error("close output", "path", *out, "error", err)
			os.Exit(1)
		}
	}
	logger.Info("export written", "path", *out, "rows", len(rows))
}
