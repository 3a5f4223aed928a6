package docstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	stdout []byte
	err    error
	args   []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.args = append([]string{name}, args...)
	return s.stdout, nil, s.err
}

func TestChunkRunes(t *testing.T) {
	assert.Nil(t, chunkRunes("", 500))
	assert.Nil(t, chunkRunes("  \n ", 500))

	// Rune-counted, not byte-counted: Hangul is 3 bytes per rune.
	chunks := chunkRunes(strings.Repeat("가", 7), 3)
	require.Len(t, chunks, 3)
	assert.Equal(t, "가가가", chunks[0])
	assert.Equal(t, "가", chunks[2])
}

func TestIngestPDF(t *testing.T) {
	page1 := strings.Repeat("a", 5)
	page2 := strings.Repeat("b", 3)
	runner := &stubRunner{stdout: []byte(page1 + "\f" + page2)}

	s := openTestStore(t)
	ing := NewIngestor(s, runner, "", 4, nil)

	n, err := ing.IngestPDF(context.Background(), "/policies/travel.pdf")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"pdftotext", "-layout", "/policies/travel.pdf", "-"}, runner.args)

	chunks, err := s.Get(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, "travel.pdf_chunk_0", chunks[0].ID)
	assert.Equal(t, "aaaa", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Page)

	assert.Equal(t, "travel.pdf_chunk_2", chunks[2].ID)
	assert.Equal(t, "bbb", chunks[2].Content)
	assert.Equal(t, 1, chunks[2].Page)
}

func TestIngestPDFCommandFailure(t *testing.T) {
	runner := &stubRunner{err: assert.AnError}
	ing := NewIngestor(openTestStore(t), runner, "", 0, nil)

	_, err := ing.IngestPDF(context.Background(), "bad.pdf")
	assert.Error(t, err)
}
