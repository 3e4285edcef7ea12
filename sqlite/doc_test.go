package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/cmdmend"
	"github.com/fwojciec/cmdmend/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocService_CreateDoc(t *testing.T) {
	t.Parallel()

	t.Run("creates and finds a doc", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDocService(db)
		ctx := context.Background()

		doc := &cmdmend.Doc{
			Tool:           "git",
			Source:         cmdmend.SourceMan,
			Content:        "GIT(1) manual page",
			EmbeddingModel: "nomic-embed-text",
		}
		require.NoError(t, s.CreateDoc(ctx, doc))
		assert.NotEmpty(t, doc.ID)
		assert.NotEmpty(t, doc.ContentHash)
		assert.False(t, doc.FetchedAt.IsZero())

		found, err := s.FindDoc(ctx, "git", cmdmend.SourceMan)
		require.NoError(t, err)
		assert.Equal(t, doc.ID, found.ID)
		assert.Equal(t, "GIT(1) manual page", found.Content)
		assert.Equal(t, doc.ContentHash, found.ContentHash)
		assert.Equal(t, "nomic-embed-text", found.EmbeddingModel)
	})

	t.Run("rejects invalid docs", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDocService(db)

		err := s.CreateDoc(context.Background(), &cmdmend.Doc{Source: cmdmend.SourceMan, Content: "x"})
		require.Error(t, err)
		assert.Equal(t, cmdmend.EINVALID, cmdmend.ErrorCode(err))
	})

	t.Run("replaces existing doc for same tool and source", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDocService(db)
		ctx := context.Background()

		first := &cmdmend.Doc{Tool: "git", Source: cmdmend.SourceMan, Content: "old"}
		require.NoError(t, s.CreateDoc(ctx, first))

		second := &cmdmend.Doc{Tool: "git", Source: cmdmend.SourceMan, Content: "new"}
		require.NoError(t, s.CreateDoc(ctx, second))

		found, err := s.FindDoc(ctx, "git", cmdmend.SourceMan)
		require.NoError(t, err)
		assert.Equal(t, "new", found.Content)

		docs, err := s.FindDocsByTool(ctx, "git")
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("keeps docs from different sources separate", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDocService(db)
		ctx := context.Background()

		require.NoError(t, s.CreateDoc(ctx, &cmdmend.Doc{Tool: "git", Source: cmdmend.SourceMan, Content: "man"}))
		require.NoError(t, s.CreateDoc(ctx, &cmdmend.Doc{Tool: "git", Source: cmdmend.SourceTldr, Content: "tldr"}))

		docs, err := s.FindDocsByTool(ctx, "git")
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})
}

func TestDocService_FindDoc_NotFound(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewDocService(db)

	_, err := s.FindDoc(context.Background(), "nosuchtool", cmdmend.SourceMan)
	require.Error(t, err)
	assert.Equal(t, cmdmend.ENOTFOUND, cmdmend.ErrorCode(err))
}

func TestDocService_DeleteDoc(t *testing.T) {
	t.Parallel()

	t.Run("deletes an existing doc", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDocService(db)
		ctx := context.Background()

		doc := &cmdmend.Doc{Tool: "git", Source: cmdmend.SourceMan, Content: "x"}
		require.NoError(t, s.CreateDoc(ctx, doc))
		require.NoError(t, s.DeleteDoc(ctx, doc.ID))

		_, err := s.FindDoc(ctx, "git", cmdmend.SourceMan)
		assert.Equal(t, cmdmend.ENOTFOUND, cmdmend.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing doc", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDocService(db)

		err := s.DeleteDoc(context.Background(), "missing")
		assert.Equal(t, cmdmend.ENOTFOUND, cmdmend.ErrorCode(err))
	})
}
