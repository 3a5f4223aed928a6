package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"golang.org/x/sync/errgroup"

	"github.com/mes-labs/receipt-extractor/constants"
	"github.com/mes-labs/receipt-extractor/internal/async"
	"github.com/mes-labs/receipt-extractor/internal/engine"
	"github.com/mes-labs/receipt-extractor/internal/export"
	"github.com/mes-labs/receipt-extractor/internal/ocr"
)

func main() {
	fs := ff.NewFlagSet("extract")
	var (
		out       = fs.StringLong("out", "", "output file path (default: stdout)")
		format    = fs.StringLong("format", "json", "output format: 'json' or 'xlsx'")
		tesseract = fs.StringLong("tesseract", "tesseract", "tesseract binary name or path")
		languages = fs.StringLong("lang", "kor+eng", "tesseract language list")
		tessdata  = fs.StringLong("tessdata", "", "tessdata directory (optional)")
		psm       = fs.IntLong("psm", 6, "tesseract page segmentation mode")
		workers   = fs.IntLong("workers", 1, "concurrent OCR workers (keep 1 unless tesseract is known safe)")
		verbose   = fs.BoolLong("verbose", "log per-file progress")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("EXTRACT"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	files := fs.GetArgs()
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: at least one image file is required")
		os.Exit(1)
	}
	if *format != "json" && *format != "xlsx" {
		fmt.Fprintf(os.Stderr, "error: unknown format %q\n", *format)
		os.Exit(1)
	}
	for _, f := range files {
		if !constants.IsImageExt(filepath.Ext(f)) {
			fmt.Fprintf(os.Stderr, "error: %q is not a supported image format\n", f)
			os.Exit(1)
		}
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recognizer := ocr.NewRecognizer(ocr.Config{
		Tesseract:   *tesseract,
		Languages:   *languages,
		TessdataDir: *tessdata,
		PSM:         *psm,
	}, logger)
	queue := async.NewRecognizerQueue(recognizer, logger, async.WithWorkers(*workers))
	defer queue.Shutdown(context.Background())

	extractor := engine.New(engine.Config{}, logger)

	rows := make([]export.Row, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			lines, err := queue.Recognize(gctx, file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			rows[i] = export.Row{Source: file, Result: extractor.Extract(lines)}
			logger.Info("extracted", "file", file, "lines", len(lines))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutput(rows, *format, *out, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func writeOutput(rows []export.Row, format, out string, logger *slog.Logger) error {
	var data []byte
	switch format {
	case "xlsx":
		var err error
		data, err = export.NewService(logger).ResultsXLSX(rows)
		if err != nil {
			return err
		}
	default:
		type entry struct {
			Source string         `json:"source"`
			Result *engine.Result `json:"result"`
		}
		entries := make([]entry, len(rows))
		for i, r := range rows {
			entries[i] = entry{Source: r.Source, Result: r.Result}
		}
		var err error
		data, err = json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')
	}

	if out == "" {
		if format == "xlsx" {
			return fmt.Errorf("xlsx output requires --out")
		}
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
