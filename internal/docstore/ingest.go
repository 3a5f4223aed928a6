package docstore

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mes-labs/receipt-extractor/internal/ocr"
)

const defaultChunkSize = 500

// Ingestor turns PDFs into fixed-size text chunks and writes them to a Store.
type Ingestor struct {
	store     Store
	runner    ocr.Runner
	pdftotext string
	chunkSize int
	logger    *slog.Logger
}

func NewIngestor(store Store, runner ocr.Runner, pdftotext string, chunkSize int, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	if pdftotext == "" {
		pdftotext = "pdftotext"
	}
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if runner == nil {
		runner = ocr.NewExecRunner()
	}
	return &Ingestor{store: store, runner: runner, pdftotext: pdftotext, chunkSize: chunkSize, logger: logger}
}

// IngestPDF extracts text from path page by page, chunks each page into
// chunkSize-rune slices and stores them as {basename}_chunk_{n}. Returns the
// number of chunks written.
func (g *Ingestor) IngestPDF(ctx context.Context, path string) (int, error) {
	out, errb, err := g.runner.Run(ctx, g.pdftotext, "-layout", path, "-")
	if err != nil {
		return 0, fmt.Errorf("pdftotext %q: %w (stderr: %s)", path, err, strings.TrimSpace(string(errb)))
	}

	source := filepath.Base(path)
	chunkID := 0
	// pdftotext separates pages with a form feed.
	for pageNum, page := range strings.Split(string(out), "\f") {
		for _, content := range chunkRunes(page, g.chunkSize) {
			c := Chunk{
				ID:         fmt.Sprintf("%s_chunk_%d", source, chunkID),
				SourceFile: source,
				Page:       pageNum,
				ChunkIndex: chunkID,
				Content:    content,
			}
			if err := g.store.Add(ctx, c); err != nil {
				return chunkID, err
			}
			chunkID++
		}
	}

	g.logger.Info("ingested pdf", "source", source, "chunks", chunkID)
	return chunkID, nil
}

// chunkRunes slices text into consecutive chunks of at most size runes.
// Empty or whitespace-only text yields no chunks.
func chunkRunes(text string, size int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	n := utf8.RuneCountInString(text)
	chunks := make([]string, 0, n/size+1)

	runes := []rune(text)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
