// Package docstore persists policy-document chunks (receipt handling rules,
// expense policies) in an embedded sqlite database and serves keyword lookups
// over them. Extraction results are never stored here.
package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/mes-labs/receipt-extractor/internal/common"
)

// Chunk is one fixed-size slice of a source document's text.
type Chunk struct {
	ID         string `json:"id"`
	SourceFile string `json:"source_file"`
	Page       int    `json:"page"`
	ChunkIndex int    `json:"chunk_index"`
	Content    string `json:"content"`
}

type Store interface {
	Add(ctx context.Context, c Chunk) error
	Get(ctx context.Context, limit int) ([]Chunk, error)
	Search(ctx context.Context, query string, limit int) ([]Chunk, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

type sqliteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS pdf_chunks (
	id          TEXT PRIMARY KEY,
	source_file TEXT NOT NULL,
	page        INTEGER NOT NULL,
	chunk_index INTEGER NOT NULL,
	content     TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_pdf_chunks_source ON pdf_chunks(source_file, chunk_index);
`

// Open opens (creating if needed) the chunk database at path.
func Open(ctx context.Context, path string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapError(err, "open docstore "+path)
	}
	// sqlite serializes writers anyway; one connection avoids lock churn.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "migrate docstore")
	}
	logger.Info("docstore ready", "path", path)
	return &sqliteStore{db: db, logger: logger}, nil
}

func (s *sqliteStore) Add(ctx context.Context, c Chunk) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pdf_chunks (id, source_file, page, chunk_index, content)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_file = excluded.source_file,
			page        = excluded.page,
			chunk_index = excluded.chunk_index,
			content     = excluded.content`,
		c.ID, c.SourceFile, c.Page, c.ChunkIndex, c.Content)
	if err != nil {
		return fmt.Errorf("add chunk %q: %w", c.ID, err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, limit int) ([]Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_file, page, chunk_index, content
		FROM pdf_chunks
		ORDER BY source_file, chunk_index
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return scanChunks(rows)
}

func (s *sqliteStore) Search(ctx context.Context, query string, limit int) ([]Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_file, page, chunk_index, content
		FROM pdf_chunks
		WHERE content LIKE '%' || ? || '%'
		ORDER BY source_file, chunk_index
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, err
	}
	return scanChunks(rows)
}

func (s *sqliteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pdf_chunks`).Scan(&n)
	return n, err
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func scanChunks(rows *sql.Rows) ([]Chunk, error) {
	defer func() { _ = rows.Close() }()

	chunks := make([]Chunk, 0)
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.ID, &c.SourceFile, &c.Page, &c.ChunkIndex, &c.Content); err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}
