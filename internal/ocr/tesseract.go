package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mes-labs/receipt-extractor/internal/engine"
)

// Config holds recognizer settings.
type Config struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	Languages   string // default "kor+eng"
	TessdataDir string
	PSM         int // e.g. 6 is good for a uniform block of text
	OEM         int // 1 = LSTM; leave 0 to use default
}

// Recognizer turns an image file into line records by shelling out to
// tesseract in TSV mode. The tesseract process itself is the expensive
// shared resource; construct one Recognizer at startup and pass it around
// (serialize calls through the async queue if needed).
type Recognizer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewRecognizer(cfg Config, logger *slog.Logger) *Recognizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Languages == "" {
		cfg.Languages = "kor+eng"
	}
	return &Recognizer{cfg: cfg, runner: execRunner{}, logger: logger}
}

// RecognizeFile runs tesseract TSV on path and groups word rows into lines.
func (r *Recognizer) RecognizeFile(ctx context.Context, path string) ([]engine.Line, error) {
	args := []string{path, "stdout", "-l", r.cfg.Languages}
	if r.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(r.cfg.PSM))
	}
	if r.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(r.cfg.OEM))
	}
	if r.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", r.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := r.runner.Run(ctx, r.cfg.Tesseract, args...)
	if err != nil {
		return nil, fmt.Errorf("tesseract TSV: %w (stderr: %s)", err, truncate(string(errb), 2<<10))
	}

	lines := parseTSVLines(string(out))
	r.logger.Debug("recognized lines", "path", path, "lines", len(lines))
	return lines, nil
}

// tsvWord is one word-level row of tesseract TSV output.
type tsvWord struct {
	page, block, par, line int
	left, top              int
	width, height          int
	conf                   float64
	text                   string
}

// parseTSVLines groups word rows into per-line records. Line confidence is
// the mean word confidence scaled to 0..1; the box is the union rectangle
// of the line's words, as a 4-point polygon.
func parseTSVLines(tsv string) []engine.Line {
	rows := strings.Split(tsv, "\n")

	var lines []engine.Line
	var cur []tsvWord
	var curKey [4]int
	flush := func() {
		if len(cur) == 0 {
			return
		}
		lines = append(lines, buildLine(cur))
		cur = cur[:0]
	}

	for i, row := range rows {
		if i == 0 || row == "" { // skip header
			continue
		}
		w, ok := parseTSVWord(row)
		if !ok {
			continue
		}
		key := [4]int{w.page, w.block, w.par, w.line}
		if len(cur) > 0 && key != curKey {
			flush()
		}
		curKey = key
		cur = append(cur, w)
	}
	flush()
	return lines
}

func parseTSVWord(row string) (tsvWord, bool) {
	cols := strings.SplitN(row, "\t", 12)
	if len(cols) < 12 {
		return tsvWord{}, false
	}
	// level 5 rows are words; everything else is structural
	if cols[0] != "5" {
		return tsvWord{}, false
	}
	conf, err := strconv.ParseFloat(cols[10], 64)
	if err != nil || conf < 0 {
		return tsvWord{}, false
	}
	text := NormalizeText(cols[11])
	if text == "" {
		return tsvWord{}, false
	}
	atoi := func(s string) int { v, _ := strconv.Atoi(s); return v }
	return tsvWord{
		page:   atoi(cols[1]),
		block:  atoi(cols[2]),
		par:    atoi(cols[3]),
		line:   atoi(cols[4]),
		left:   atoi(cols[6]),
		top:    atoi(cols[7]),
		width:  atoi(cols[8]),
		height: atoi(cols[9]),
		conf:   conf,
		text:   text,
	}, true
}

func buildLine(words []tsvWord) engine.Line {
	parts := make([]string, 0, len(words))
	var sum float64
	minX, minY := words[0].left, words[0].top
	maxX, maxY := words[0].left+words[0].width, words[0].top+words[0].height
	for _, w := range words {
		parts = append(parts, w.text)
		sum += w.conf
		minX = min(minX, w.left)
		minY = min(minY, w.top)
		maxX = max(maxX, w.left+w.width)
		maxY = max(maxY, w.top+w.height)
	}
	return engine.Line{
		Text:       strings.Join(parts, " "),
		Confidence: sum / float64(len(words)) / 100.0,
		Box: []engine.Point{
			{X: float64(minX), Y: float64(minY)},
			{X: float64(maxX), Y: float64(minY)},
			{X: float64(maxX), Y: float64(maxY)},
			{X: float64(minX), Y: float64(maxY)},
		},
	}
}
