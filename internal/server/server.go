// Package server exposes the extraction engine over a small JSON HTTP API.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/mes-labs/receipt-extractor/internal/common"
	"github.com/mes-labs/receipt-extractor/internal/docstore"
	"github.com/mes-labs/receipt-extractor/internal/engine"
)

// RecognizeQueue is the serialized OCR entry point. *async.RecognizerQueue
// satisfies it.
type RecognizeQueue interface {
	Recognize(ctx context.Context, path string) ([]engine.Line, error)
}

// Ingestor turns a PDF into stored chunks. *docstore.Ingestor satisfies it.
type Ingestor interface {
	IngestPDF(ctx context.Context, path string) (int, error)
}

type Server struct {
	cfg      common.ServerConfig
	engine   *engine.Extractor
	queue    RecognizeQueue
	store    docstore.Store
	ingestor Ingestor
	logger   *slog.Logger

	requestSem *semaphore.Weighted
	limiters   sync.Map // client IP -> *rate.Limiter
}

func New(cfg common.ServerConfig, ex *engine.Extractor, queue RecognizeQueue, store docstore.Store, ingestor Ingestor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 16
	}
	return &Server{
		cfg:        cfg,
		engine:     ex,
		queue:      queue,
		store:      store,
		ingestor:   ingestor,
		logger:     logger,
		requestSem: semaphore.NewWeighted(maxConcurrent),
	}
}

// Handler wires routes and middleware into the root handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealth)

	mux.HandleFunc("/v1/receipts/extract",
		s.withRateLimit(s.withMethod(http.MethodPost, s.withConcurrencyLimit(s.handleExtract))))
	mux.HandleFunc("/v1/receipts/update",
		s.withRateLimit(s.withMethod(http.MethodPost, s.handleUpdate)))
	mux.HandleFunc("/v1/fields/prompts",
		s.withMethod(http.MethodGet, s.handlePrompts))

	mux.HandleFunc("/v1/docs/ingest",
		s.withRateLimit(s.withMethod(http.MethodPost, s.withConcurrencyLimit(s.handleDocsIngest))))
	mux.HandleFunc("/v1/docs/search",
		s.withRateLimit(s.withMethod(http.MethodGet, s.handleDocsSearch)))

	return s.withLogging(s.withRecovery(mux))
}

// HTTPServer builds the configured *http.Server around Handler.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
	}
}
