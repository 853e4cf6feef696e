package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kiranatools/gst-agent/internal/common"
	"github.com/kiranatools/gst-agent/internal/gst"
	"github.com/kiranatools/gst-agent/internal/ocr"
	"github.com/kiranatools/gst-agent/internal/pipeline"
	"github.com/kiranatools/gst-agent/internal/repository"
	"github.com/kiranatools/gst-agent/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Store.Path, logger)
	if err != nil {
		logger.Error("open invoice store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("close invoice store", "error", cerr)
		}
	}()
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

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(logger, cfg.Server, proc, invoices).Handler(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
