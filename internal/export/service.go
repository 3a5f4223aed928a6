package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mes-labs/receipt-extractor/constants"
	"github.com/mes-labs/receipt-extractor/internal/engine"
)

// Row pairs one extraction result with the file it came from.
type Row struct {
	Source string
	Result *engine.Result
}

// Service produces XLSX bytes from extraction results.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ResultsXLSX returns an XLSX workbook (as bytes) with one row per result.
func (s *Service) ResultsXLSX(rows []Row) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Receipts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Source",
		"Trade Date",
		"Amount",
		"Merchant",
		"Merchant Tel",
		"Payment Method",
		"Business Reg No",
		"Min Confidence",
		"Warnings",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, r := range rows {
		res := r.Result
		rowNum := i + 2

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowNum)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.Source)
		write(2, deref(res.TradeDate))
		if res.Amount != nil {
			write(3, *res.Amount)
		}
		write(4, deref(res.Merchant.Name))
		write(5, deref(res.Merchant.Tel))
		write(6, string(res.PaymentMethod))
		write(7, deref(res.BusinessRegNo))
		write(8, minConfidence(res))
		write(9, strings.Join(res.Warnings, "; "))
	}

	_ = f.SetColWidth(sheet, "A", "A", 40) // source path
	_ = f.SetColWidth(sheet, "B", "B", 12)
	_ = f.SetColWidth(sheet, "C", "C", 12)
	_ = f.SetColWidth(sheet, "D", "D", 28)
	_ = f.SetColWidth(sheet, "E", "G", 16)
	_ = f.SetColWidth(sheet, "I", "I", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// minConfidence reports the weakest extracted field, the number a reviewer
// scans first.
func minConfidence(res *engine.Result) float64 {
	min := 1.0
	for _, key := range constants.FieldKeys {
		if c, ok := res.Confidence[key]; ok && c < min {
			min = c
		}
	}
	return min
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
