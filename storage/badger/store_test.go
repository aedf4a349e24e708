package badger

import (
	"context"
	"testing"

	"github.com/poiesic/docsearch/core"
	"github.com/poiesic/docsearch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) storage.Store {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func paragraph(page int, text string, vector ...float32) *core.Chunk {
	return &core.Chunk{
		Type:   core.ChunkTypeParagraph,
		Page:   page,
		Text:   text,
		Vector: vector,
	}
}

func TestWriteMany(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	document := &core.Document{ExternalID: "report-1", Title: "Report", NumPages: 2}
	chunks := []*core.Chunk{
		paragraph(1, "The turbine requires inspection.", 0.1, 0.2),
		paragraph(2, "Generator windings are sealed.", 0.3, 0.4),
	}

	ids, err := store.WriteMany(ctx, document, chunks)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])

	assert.Equal(t, core.IDFromContent("report-1"), document.Id)
	assert.False(t, document.InsertedAt.IsZero())

	stored, err := store.GetDocument(ctx, document.Id)
	require.NoError(t, err)
	assert.Equal(t, "report-1", stored.ExternalID)
	assert.Equal(t, "Report", stored.Title)

	retrieved, err := store.GetChunks(ctx, ids...)
	require.NoError(t, err)
	require.Len(t, retrieved, 2)
	for i, chunk := range retrieved {
		assert.Equal(t, ids[i], chunk.Id)
		assert.Equal(t, document.Id, chunk.DocumentId)
		assert.False(t, chunk.InsertedAt.IsZero())
		assert.Greater(t, chunk.Tokens, 0)
	}
}

func TestWriteMany_InvalidDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.WriteMany(ctx, &core.Document{}, nil)
	assert.ErrorIs(t, err, core.ErrInvalidDocument)

	_, err = store.WriteMany(ctx, nil, nil)
	assert.ErrorIs(t, err, core.ErrInvalidDocument)
}

func TestWriteMany_InvalidChunkWritesNothing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	document := &core.Document{ExternalID: "report-1"}
	chunks := []*core.Chunk{
		paragraph(1, "Valid chunk."),
		{Type: core.ChunkTypeParagraph, Page: 1}, // empty text
	}

	_, err := store.WriteMany(ctx, document, chunks)
	require.ErrorIs(t, err, core.ErrInvalidChunk)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Documents)
	assert.Equal(t, 0, stats.Chunks)
}

func TestWriteMany_ReplacesExistingDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.WriteMany(ctx,
		&core.Document{ExternalID: "report-1", Title: "v1"},
		[]*core.Chunk{
			paragraph(1, "Old turbine text."),
			paragraph(2, "Old generator text."),
		})
	require.NoError(t, err)

	_, err = store.WriteMany(ctx,
		&core.Document{ExternalID: "report-1", Title: "v2"},
		[]*core.Chunk{paragraph(1, "New revised text.")})
	require.NoError(t, err)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Documents)
	assert.Equal(t, 1, stats.Chunks)

	document, err := store.GetDocument(ctx, core.IDFromContent("report-1"))
	require.NoError(t, err)
	assert.Equal(t, "v2", document.Title)

	stale, err := store.GetChunks(ctx, first...)
	require.NoError(t, err)
	assert.Empty(t, stale)

	// Postings of the replaced chunks are gone too
	scored, err := store.LexicalTopK(ctx, "turbine", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, scored)
}

func TestWriteMany_DimensionMismatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("within one write", func(t *testing.T) {
		_, err := store.WriteMany(ctx,
			&core.Document{ExternalID: "bad"},
			[]*core.Chunk{
				paragraph(1, "Two dims.", 0.1, 0.2),
				paragraph(1, "Three dims.", 0.1, 0.2, 0.3),
			})
		assert.ErrorIs(t, err, storage.ErrDimensionMismatch)
	})

	t.Run("across writes", func(t *testing.T) {
		_, err := store.WriteMany(ctx,
			&core.Document{ExternalID: "first"},
			[]*core.Chunk{paragraph(1, "Two dims.", 0.1, 0.2)})
		require.NoError(t, err)

		_, err = store.WriteMany(ctx,
			&core.Document{ExternalID: "second"},
			[]*core.Chunk{paragraph(1, "Three dims.", 0.1, 0.2, 0.3)})
		assert.ErrorIs(t, err, storage.ErrDimensionMismatch)
	})
}

func TestDeleteDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ids, err := store.WriteMany(ctx,
		&core.Document{ExternalID: "report-1"},
		[]*core.Chunk{
			paragraph(1, "Turbine inspection schedule.", 0.5, 0.5),
			paragraph(2, "Pump maintenance interval.", 0.2, 0.8),
		})
	require.NoError(t, err)

	docID := core.IDFromContent("report-1")
	require.NoError(t, store.DeleteDocument(ctx, docID))

	_, err = store.GetDocument(ctx, docID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	chunks, err := store.GetChunks(ctx, ids...)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	// Lexical and vector indexes no longer surface the chunks
	scored, err := store.LexicalTopK(ctx, "turbine pump", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, scored)

	scored, err = store.VectorTopK(ctx, []float32{0.5, 0.5}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, scored)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Documents)
	assert.Equal(t, 0, stats.Chunks)
}

func TestDeleteDocument_NotFound(t *testing.T) {
	store := newTestStore(t)
	err := store.DeleteDocument(context.Background(), core.IDFromContent("missing"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetDocuments_ExistingOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.WriteMany(ctx, &core.Document{ExternalID: "doc-a"},
		[]*core.Chunk{paragraph(1, "Text a.")})
	require.NoError(t, err)
	_, err = store.WriteMany(ctx, &core.Document{ExternalID: "doc-b"},
		[]*core.Chunk{paragraph(1, "Text b.")})
	require.NoError(t, err)

	documents, err := store.GetDocuments(ctx,
		core.IDFromContent("doc-a"),
		core.IDFromContent("missing"),
		core.IDFromContent("doc-b"))
	require.NoError(t, err)
	assert.Len(t, documents, 2)
}

func TestLexicalTopK(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ids, err := store.WriteMany(ctx,
		&core.Document{ExternalID: "report-1"},
		[]*core.Chunk{
			paragraph(1, "turbine turbine turbine"),
			paragraph(2, "turbine blades"),
			paragraph(3, "unrelated pump text"),
		})
	require.NoError(t, err)

	scored, err := store.LexicalTopK(ctx, "turbine blades", 10, 0)
	require.NoError(t, err)
	require.Len(t, scored, 2)

	// Raw term frequency: chunk 1 scores 3 on one term, chunk 2 scores
	// 1+1 across both terms
	assert.Equal(t, ids[0], scored[0].ChunkId)
	assert.Equal(t, 3.0, scored[0].Score)
	assert.Equal(t, ids[1], scored[1].ChunkId)
	assert.Equal(t, 2.0, scored[1].Score)
}

func TestLexicalTopK_QueryTermsCountOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.WriteMany(ctx,
		&core.Document{ExternalID: "report-1"},
		[]*core.Chunk{paragraph(1, "valve seal")})
	require.NoError(t, err)

	once, err := store.LexicalTopK(ctx, "valve", 10, 0)
	require.NoError(t, err)
	repeated, err := store.LexicalTopK(ctx, "valve valve valve", 10, 0)
	require.NoError(t, err)

	require.Len(t, once, 1)
	require.Len(t, repeated, 1)
	assert.Equal(t, once[0].Score, repeated[0].Score)
}

func TestLexicalTopK_DocumentScope(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.WriteMany(ctx, &core.Document{ExternalID: "doc-a"},
		[]*core.Chunk{paragraph(1, "shared turbine term")})
	require.NoError(t, err)
	idsB, err := store.WriteMany(ctx, &core.Document{ExternalID: "doc-b"},
		[]*core.Chunk{paragraph(1, "shared turbine term")})
	require.NoError(t, err)

	scored, err := store.LexicalTopK(ctx, "turbine", 10, core.IDFromContent("doc-b"))
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, idsB[0], scored[0].ChunkId)
}

func TestLexicalTopK_Limits(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.WriteMany(ctx, &core.Document{ExternalID: "doc"},
		[]*core.Chunk{
			paragraph(1, "pump one"),
			paragraph(2, "pump two"),
			paragraph(3, "pump three"),
		})
	require.NoError(t, err)

	scored, err := store.LexicalTopK(ctx, "pump", 2, 0)
	require.NoError(t, err)
	assert.Len(t, scored, 2)

	scored, err = store.LexicalTopK(ctx, "pump", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, scored)

	scored, err = store.LexicalTopK(ctx, "the and of", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, scored)
}

func TestLexicalTopK_TieBreaksByChunkID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ids, err := store.WriteMany(ctx, &core.Document{ExternalID: "doc"},
		[]*core.Chunk{
			paragraph(1, "valve"),
			paragraph(2, "valve"),
			paragraph(3, "valve"),
		})
	require.NoError(t, err)

	scored, err := store.LexicalTopK(ctx, "valve", 10, 0)
	require.NoError(t, err)
	require.Len(t, scored, 3)
	assert.Equal(t, ids[0], scored[0].ChunkId)
	assert.Equal(t, ids[1], scored[1].ChunkId)
	assert.Equal(t, ids[2], scored[2].ChunkId)
}

func TestVectorTopK(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ids, err := store.WriteMany(ctx,
		&core.Document{ExternalID: "report-1"},
		[]*core.Chunk{
			paragraph(1, "aligned", 1, 0),
			paragraph(2, "diagonal", 1, 1),
			paragraph(3, "orthogonal", 0, 1),
		})
	require.NoError(t, err)

	scored, err := store.VectorTopK(ctx, []float32{1, 0}, 2, 0)
	require.NoError(t, err)
	require.Len(t, scored, 2)

	assert.Equal(t, ids[0], scored[0].ChunkId)
	assert.InDelta(t, 1.0, scored[0].Score, 1e-6)
	assert.Equal(t, ids[1], scored[1].ChunkId)
	assert.InDelta(t, 0.7071, scored[1].Score, 1e-3)
}

func TestVectorTopK_SkipsUnembeddedChunks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ids, err := store.WriteMany(ctx,
		&core.Document{ExternalID: "report-1"},
		[]*core.Chunk{
			paragraph(1, "has a vector", 1, 0),
			paragraph(2, "no vector yet"),
		})
	require.NoError(t, err)

	scored, err := store.VectorTopK(ctx, []float32{1, 0}, 10, 0)
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, ids[0], scored[0].ChunkId)
}

func TestVectorTopK_DocumentScope(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.WriteMany(ctx, &core.Document{ExternalID: "doc-a"},
		[]*core.Chunk{paragraph(1, "text", 1, 0)})
	require.NoError(t, err)
	idsB, err := store.WriteMany(ctx, &core.Document{ExternalID: "doc-b"},
		[]*core.Chunk{paragraph(1, "text", 0.9, 0.1)})
	require.NoError(t, err)

	scored, err := store.VectorTopK(ctx, []float32{1, 0}, 10, core.IDFromContent("doc-b"))
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, idsB[0], scored[0].ChunkId)
}

func TestVectorTopK_EmptyQuery(t *testing.T) {
	store := newTestStore(t)
	scored, err := store.VectorTopK(context.Background(), nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, scored)
}

func TestStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Documents)
	assert.Equal(t, 0, stats.Chunks)

	_, err = store.WriteMany(ctx, &core.Document{ExternalID: "doc-a"},
		[]*core.Chunk{paragraph(1, "one"), paragraph(2, "two")})
	require.NoError(t, err)
	_, err = store.WriteMany(ctx, &core.Document{ExternalID: "doc-b"},
		[]*core.Chunk{paragraph(1, "three")})
	require.NoError(t, err)

	stats, err = store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 3, stats.Chunks)
}

func TestStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)

	ids, err := store.WriteMany(ctx, &core.Document{ExternalID: "report-1"},
		[]*core.Chunk{paragraph(1, "persistent turbine text", 0.1, 0.9)})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	chunks, err := reopened.GetChunks(ctx, ids...)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "persistent turbine text", chunks[0].Text)

	scored, err := reopened.LexicalTopK(ctx, "turbine", 10, 0)
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, ids[0], scored[0].ChunkId)
}
