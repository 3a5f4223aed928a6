package docstore

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "docstore.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddGetCount(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := s.Add(ctx, Chunk{
			ID:         fmt.Sprintf("policy.pdf_chunk_%d", i),
			SourceFile: "policy.pdf",
			Page:       0,
			ChunkIndex: i,
			Content:    fmt.Sprintf("내용 %d", i),
		})
		require.NoError(t, err)
	}

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	chunks, err := s.Get(ctx, 2)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "policy.pdf_chunk_0", chunks[0].ID)
	assert.Equal(t, "policy.pdf_chunk_1", chunks[1].ID)
}

func TestAddUpsertsOnSameID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, Chunk{ID: "a_chunk_0", SourceFile: "a", Content: "old"}))
	require.NoError(t, s.Add(ctx, Chunk{ID: "a_chunk_0", SourceFile: "a", Content: "new"}))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	chunks, err := s.Get(ctx, 10)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "new", chunks[0].Content)
}

func TestSearch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, Chunk{ID: "p_chunk_0", SourceFile: "p", ChunkIndex: 0, Content: "법인카드 사용 지침"}))
	require.NoError(t, s.Add(ctx, Chunk{ID: "p_chunk_1", SourceFile: "p", ChunkIndex: 1, Content: "출장비 정산 절차"}))

	hits, err := s.Search(ctx, "법인카드", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "p_chunk_0", hits[0].ID)

	hits, err = s.Search(ctx, "없는말", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
