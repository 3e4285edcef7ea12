package engine_test

import (
	"context"
	"testing"

	"github.com/fwojciec/cmdmend"
	"github.com/fwojciec/cmdmend/engine"
	"github.com/fwojciec/cmdmend/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("first source wins", func(t *testing.T) {
		t.Parallel()

		e := &engine.Engine{
			Sources: []cmdmend.Source{
				&mock.Source{
					TagFn:   func() cmdmend.SourceTag { return cmdmend.SourceMan },
					FetchFn: func(ctx context.Context, tool string) (string, error) { return "man page", nil },
				},
				&mock.Source{
					TagFn: func() cmdmend.SourceTag { return cmdmend.SourceTldr },
					FetchFn: func(ctx context.Context, tool string) (string, error) {
						t.Fatal("lower-priority source should not be consulted")
						return "", nil
					},
				},
			},
		}

		doc, err := e.Resolve(context.Background(), "git")
		require.NoError(t, err)
		assert.Equal(t, cmdmend.SourceMan, doc.Source)
		assert.Equal(t, "man page", doc.Content)
		assert.Equal(t, "git", doc.Tool)
	})

	t.Run("falls through failing and empty sources", func(t *testing.T) {
		t.Parallel()

		e := &engine.Engine{
			Sources: []cmdmend.Source{
				&mock.Source{
					TagFn: func() cmdmend.SourceTag { return cmdmend.SourceMan },
					FetchFn: func(ctx context.Context, tool string) (string, error) {
						return "", cmdmend.Errorf(cmdmend.EUNAVAILABLE, "man unavailable")
					},
				},
				&mock.Source{
					TagFn:   func() cmdmend.SourceTag { return cmdmend.SourceTldr },
					FetchFn: func(ctx context.Context, tool string) (string, error) { return "", nil },
				},
				&mock.Source{
					TagFn:   func() cmdmend.SourceTag { return cmdmend.SourceCheat },
					FetchFn: func(ctx context.Context, tool string) (string, error) { return "cheat sheet", nil },
				},
			},
		}

		doc, err := e.Resolve(context.Background(), "git")
		require.NoError(t, err)
		assert.Equal(t, cmdmend.SourceCheat, doc.Source)
		assert.Equal(t, "cheat sheet", doc.Content)
	})

	t.Run("returns ENOTFOUND when every source fails", func(t *testing.T) {
		t.Parallel()

		e := &engine.Engine{
			Sources: []cmdmend.Source{
				&mock.Source{
					FetchFn: func(ctx context.Context, tool string) (string, error) {
						return "", cmdmend.Errorf(cmdmend.ENOTFOUND, "no page")
					},
				},
			},
		}

		_, err := e.Resolve(context.Background(), "nosuchtool")
		require.Error(t, err)
		assert.Equal(t, cmdmend.ENOTFOUND, cmdmend.ErrorCode(err))
	})

	t.Run("rejects empty tool", func(t *testing.T) {
		t.Parallel()

		e := &engine.Engine{}
		_, err := e.Resolve(context.Background(), "")
		assert.Equal(t, cmdmend.EINVALID, cmdmend.ErrorCode(err))
	})

	t.Run("honors context cancellation between sources", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		e := &engine.Engine{
			Sources: []cmdmend.Source{
				&mock.Source{FetchFn: func(ctx context.Context, tool string) (string, error) {
					t.Fatal("source consulted after cancellation")
					return "", nil
				}},
			},
		}

		_, err := e.Resolve(ctx, "git")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
