package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mes-labs/receipt-extractor/internal/async"
	"github.com/mes-labs/receipt-extractor/internal/common"
	"github.com/mes-labs/receipt-extractor/internal/docstore"
	"github.com/mes-labs/receipt-extractor/internal/engine"
	"github.com/mes-labs/receipt-extractor/internal/ocr"
	"github.com/mes-labs/receipt-extractor/internal/server"
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

	store, err := docstore.Open(ctx, cfg.Docstore.Path, logger)
	if err != nil {
		logger.Error("failed to open docstore", "error", err, "path", cfg.Docstore.Path)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	recognizer := ocr.NewRecognizer(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Languages:   cfg.OCR.Languages,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
		OEM:         cfg.OCR.OEM,
	}, logger)

	queue := async.NewRecognizerQueue(recognizer, logger,
		async.WithWorkers(cfg.OCR.Workers),
		async.WithQueueSize(cfg.OCR.QueueSize),
		async.WithJobTimeout(cfg.OCR.JobTimeout),
	)

	extractor := engine.New(engine.Config{
		BareAmountFloor:     cfg.Engine.BareAmountFloor,
		RefineRatio:         cfg.Engine.RefineRatio,
		WholeTextConfidence: cfg.Engine.WholeTextConfidence,
		MerchantScanLines:   cfg.Engine.MerchantScanLines,
	}, logger)

	ingestor := docstore.NewIngestor(store, ocr.NewExecRunner(), cfg.Docstore.Pdftotext, cfg.Docstore.ChunkSize, logger)

	srv := server.New(cfg.Server, extractor, queue, store, ingestor, logger).HTTPServer()

	go func() {
		logger.Info("http serving", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	queue.Shutdown(shutdownCtx)
	logger.Info("stopped")
}
