package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mes-labs/receipt-extractor/internal/common"
	"github.com/mes-labs/receipt-extractor/internal/engine"
	"github.com/mes-labs/receipt-extractor/internal/ocr"
)

type extractRequest struct {
	ImageB64 string        `json:"image_b64,omitempty"`
	Lines    []engine.Line `json:"lines,omitempty"`
}

type updateRequest struct {
	Result  engine.Result      `json:"result"`
	Updates engine.FieldUpdate `json:"updates"`
}

type ingestRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// handleExtract accepts either a base64 image (OCR runs through the queue) or
// pre-recognized lines, and returns the structured extraction result.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[extractRequest](r, s.cfg.MaxBodyBytes)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", sanitizeError(err))
		return
	}

	hasImage := strings.TrimSpace(req.ImageB64) != ""
	if hasImage == (len(req.Lines) > 0) {
		writeErr(w, http.StatusBadRequest, "validation_failed", "provide exactly one of image_b64 or lines")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.ExtractTimeout)
	defer cancel()

	lines := req.Lines
	if hasImage {
		lines, err = s.recognize(ctx, req.ImageB64)
		if err != nil {
			s.writeExtractError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, s.engine.Extract(lines))
}

func (s *Server) recognize(ctx context.Context, imageB64 string) ([]engine.Line, error) {
	path, cleanup, err := ocr.DecodeBase64Image(imageB64)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return s.queue.Recognize(ctx, path)
}

func (s *Server) writeExtractError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := common.RequestIDFromContext(r.Context())
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		writeErr(w, http.StatusBadRequest, "decode_failed", sanitizeError(err))
	case errors.Is(err, common.ErrUnavailable):
		writeErr(w, http.StatusServiceUnavailable, "ocr_unavailable", sanitizeError(err))
	case errors.Is(err, context.DeadlineExceeded):
		writeErr(w, http.StatusGatewayTimeout, "ocr_timeout", "recognition timed out")
	default:
		s.logger.Error("extraction failed", "request_id", requestID, "error", err)
		writeErr(w, http.StatusInternalServerError, "ocr_failed", "recognition failed")
	}
}

// handleUpdate merges user-confirmed field values into a result previously
// returned by handleExtract.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", sanitizeError(err))
		return
	}

	// Schema first: it produces far better messages than Unmarshal
	// surfacing a type mismatch three levels deep.
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", sanitizeError(err))
		return
	}
	if err := compiledUpdateSchema.Validate(payload); err != nil {
		writeErr(w, http.StatusBadRequest, "validation_failed", sanitizeError(err))
		return
	}

	var req updateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", sanitizeError(err))
		return
	}

	res := req.Result
	res.ApplyUpdates(req.Updates)
	writeJSON(w, http.StatusOK, &res)
}

func (s *Server) handlePrompts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"prompts": engine.AllPrompts()})
}

// handleDocsIngest chunks a server-local policy PDF into the docstore.
func (s *Server) handleDocsIngest(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[ingestRequest](r, s.cfg.MaxBodyBytes)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", sanitizeError(err))
		return
	}
	path := strings.TrimSpace(req.Path)
	if path == "" || !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		writeErr(w, http.StatusBadRequest, "validation_failed", "path must point to a .pdf file")
		return
	}

	n, err := s.ingestor.IngestPDF(r.Context(), path)
	if err != nil {
		s.logger.Error("pdf ingest failed", "path", path, "error", err)
		writeErr(w, http.StatusInternalServerError, "ingest_failed", sanitizeError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"source": path,
		"chunks": n,
	})
}

func (s *Server) handleDocsSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeErr(w, http.StatusBadRequest, "validation_failed", "q is required")
		return
	}

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			writeErr(w, http.StatusBadRequest, "validation_failed", fmt.Sprintf("limit must be 1..50, got %q", raw))
			return
		}
		limit = n
	}

	chunks, err := s.store.Search(r.Context(), query, limit)
	if err != nil {
		s.logger.Error("doc search failed", "query", query, "error", err)
		writeErr(w, http.StatusInternalServerError, "search_failed", "search failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": chunks,
	})
}
