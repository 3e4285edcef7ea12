package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/cmdmend"
	"github.com/fwojciec/cmdmend/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestDoc creates a doc to attach passages to.
func createTestDoc(t *testing.T, db *sqlite.DB, tool string) *cmdmend.Doc {
	t.Helper()
	doc := &cmdmend.Doc{Tool: tool, Source: cmdmend.SourceMan, Content: "content for " + tool}
	require.NoError(t, sqlite.NewDocService(db).CreateDoc(context.Background(), doc))
	return doc
}

func TestPassageService_CreatePassages(t *testing.T) {
	t.Parallel()

	t.Run("stores passages with embeddings intact", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewPassageService(db)
		ctx := context.Background()
		doc := createTestDoc(t, db, "git")

		passages := []*cmdmend.Passage{
			{DocID: doc.ID, Tool: "git", Source: cmdmend.SourceMan, Ordinal: 0,
				Content: "first", Embedding: []float32{0.1, -0.2, 0.3}},
			{DocID: doc.ID, Tool: "git", Source: cmdmend.SourceMan, Ordinal: 1,
				Content: "second", Embedding: []float32{0.4, 0.5, -0.6}},
		}
		require.NoError(t, s.CreatePassages(ctx, passages))

		found, err := s.FindPassagesByDoc(ctx, doc.ID)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "first", found[0].Content)
		assert.Equal(t, []float32{0.1, -0.2, 0.3}, found[0].Embedding)
		assert.Equal(t, 1, found[1].Ordinal)
		assert.Equal(t, []float32{0.4, 0.5, -0.6}, found[1].Embedding)
	})

	t.Run("rejects invalid passages", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewPassageService(db)

		err := s.CreatePassages(context.Background(), []*cmdmend.Passage{{Tool: "git", Content: "x"}})
		require.Error(t, err)
		assert.Equal(t, cmdmend.EINVALID, cmdmend.ErrorCode(err))
	})
}

func TestPassageService_FindPassagesByTool(t *testing.T) {
	t.Parallel()

	t.Run("returns passages ordered by source then ordinal", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewPassageService(db)
		ctx := context.Background()
		doc := createTestDoc(t, db, "git")

		passages := []*cmdmend.Passage{
			{DocID: doc.ID, Tool: "git", Source: cmdmend.SourceMan, Ordinal: 1,
				Content: "b", Embedding: []float32{1}},
			{DocID: doc.ID, Tool: "git", Source: cmdmend.SourceMan, Ordinal: 0,
				Content: "a", Embedding: []float32{2}},
		}
		require.NoError(t, s.CreatePassages(ctx, passages))

		found, err := s.FindPassagesByTool(ctx, "git")
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, 0, found[0].Ordinal)
		assert.Equal(t, 1, found[1].Ordinal)
	})

	t.Run("returns empty for unknown tool", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewPassageService(db)

		found, err := s.FindPassagesByTool(context.Background(), "nosuchtool")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestPassageService_DeleteCascade(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	docs := sqlite.NewDocService(db)
	s := sqlite.NewPassageService(db)
	ctx := context.Background()
	doc := createTestDoc(t, db, "git")

	require.NoError(t, s.CreatePassages(ctx, []*cmdmend.Passage{
		{DocID: doc.ID, Tool: "git", Source: cmdmend.SourceMan, Content: "x", Embedding: []float32{1}},
	}))

	// Deleting the doc cascades to its passages.
	require.NoError(t, docs.DeleteDoc(ctx, doc.ID))

	found, err := s.FindPassagesByTool(ctx, "git")
	require.NoError(t, err)
	assert.Empty(t, found)
}
