package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/cmdmend"
	"github.com/fwojciec/cmdmend/engine"
	"github.com/fwojciec/cmdmend/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedCompleter answers the tool-extraction prompt with tool and
// every other prompt with answer, recording the last non-extraction
// prompt for inspection.
func scriptedCompleter(tool, answer string, lastPrompt *string) *mock.Completer {
	return &mock.Completer{
		CompleteFn: func(ctx context.Context, prompt string, opts cmdmend.CompleteOptions) (string, error) {
			if strings.Contains(prompt, "Identify the single command-line tool") {
				return tool, nil
			}
			if lastPrompt != nil {
				*lastPrompt = prompt
			}
			return answer, nil
		},
	}
}

func TestEngine_Ask(t *testing.T) {
	t.Parallel()

	t.Run("grounds the answer in retrieved documentation", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		var prompt string
		e := &engine.Engine{
			Completer: scriptedCompleter("tar", "Use tar -x to extract.", &prompt),
			Embedder: &mock.Embedder{
				ModelFn: func() string { return "m1" },
				EmbedQueryFn: func(ctx context.Context, text string) ([]float32, error) {
					return []float32{1, 0}, nil
				},
				EmbedDocumentsFn: func(ctx context.Context, texts []string) ([][]float32, error) {
					out := make([][]float32, len(texts))
					for i := range texts {
						out[i] = []float32{1, 0}
					}
					return out, nil
				},
			},
			Sources: []cmdmend.Source{&mock.Source{
				TagFn: func() cmdmend.SourceTag { return cmdmend.SourceMan },
				FetchFn: func(ctx context.Context, tool string) (string, error) {
					return "TAR(1)\ntar - an archiving utility", nil
				},
			}},
			Docs:     store.docService(),
			Passages: store.passageService(),
		}

		answer, err := e.Ask(context.Background(), "how do I extract a tar archive?")
		require.NoError(t, err)
		assert.Equal(t, "Use tar -x to extract.", answer)
		assert.Contains(t, prompt, "<documentation>")
		assert.Contains(t, prompt, "an archiving utility")
		assert.Contains(t, prompt, `<passage source="man">`)
		assert.Contains(t, prompt, "how do I extract a tar archive?")
	})

	t.Run("degrades to an ungrounded answer when no tool is identified", func(t *testing.T) {
		t.Parallel()

		var prompt string
		e := &engine.Engine{
			Completer: scriptedCompleter("none", "A general answer.", &prompt),
		}

		answer, err := e.Ask(context.Background(), "what is a shell?")
		require.NoError(t, err)
		assert.Equal(t, "A general answer.", answer)
		assert.NotContains(t, prompt, "<documentation>")
	})

	t.Run("degrades when no source has documentation", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		e := &engine.Engine{
			Completer: scriptedCompleter("obscuretool", "Best effort answer.", nil),
			Embedder: &mock.Embedder{
				ModelFn: func() string { return "m1" },
				EmbedQueryFn: func(ctx context.Context, text string) ([]float32, error) {
					return []float32{1}, nil
				},
			},
			Sources: []cmdmend.Source{&mock.Source{
				FetchFn: func(ctx context.Context, tool string) (string, error) {
					return "", cmdmend.Errorf(cmdmend.ENOTFOUND, "no page")
				},
			}},
			Docs:     store.docService(),
			Passages: store.passageService(),
		}

		answer, err := e.Ask(context.Background(), "how do I use obscuretool?")
		require.NoError(t, err)
		assert.Equal(t, "Best effort answer.", answer)
	})

	t.Run("rejects an empty question", func(t *testing.T) {
		t.Parallel()

		e := &engine.Engine{}
		_, err := e.Ask(context.Background(), "")
		assert.Equal(t, cmdmend.EINVALID, cmdmend.ErrorCode(err))
	})

	t.Run("generation failure is fatal", func(t *testing.T) {
		t.Parallel()

		e := &engine.Engine{Completer: &mock.Completer{
			CompleteFn: func(ctx context.Context, prompt string, opts cmdmend.CompleteOptions) (string, error) {
				return "", cmdmend.Errorf(cmdmend.EINTERNAL, "model crashed")
			},
		}}

		_, err := e.Ask(context.Background(), "question")
		require.Error(t, err)
		assert.Equal(t, cmdmend.EINTERNAL, cmdmend.ErrorCode(err))
	})
}

func TestEngine_Fix(t *testing.T) {
	t.Parallel()

	t.Run("suggests a corrected command for a typo", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		var prompt string
		e := &engine.Engine{
			Completer: scriptedCompleter("git", "git status", &prompt),
			Embedder: &mock.Embedder{
				ModelFn: func() string { return "m1" },
				EmbedQueryFn: func(ctx context.Context, text string) ([]float32, error) {
					return []float32{1}, nil
				},
			},
			Sources: []cmdmend.Source{&mock.Source{
				FetchFn: func(ctx context.Context, tool string) (string, error) {
					return "", cmdmend.Errorf(cmdmend.ENOTFOUND, "no page for gti")
				},
			}},
			Docs:     store.docService(),
			Passages: store.passageService(),
		}

		fix, err := e.Fix(context.Background(), cmdmend.FailedCommand{
			Command:  "gti status",
			ExitCode: 127,
			Stderr:   "gti: command not found",
		})
		require.NoError(t, err)
		assert.True(t, fix.Parsed)
		assert.Equal(t, "git status", fix.Command)
		assert.Contains(t, prompt, "Failed command: gti status")
		assert.Contains(t, prompt, "Exit code: 127")
		assert.Contains(t, prompt, "gti: command not found")
	})

	t.Run("grounds the fix in the tool's documentation", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		var prompt string
		e := &engine.Engine{
			Completer: scriptedCompleter("git", "git push --set-upstream origin main", &prompt),
			Embedder: &mock.Embedder{
				ModelFn: func() string { return "m1" },
				EmbedQueryFn: func(ctx context.Context, text string) ([]float32, error) {
					return []float32{1, 0}, nil
				},
				EmbedDocumentsFn: func(ctx context.Context, texts []string) ([][]float32, error) {
					out := make([][]float32, len(texts))
					for i := range texts {
						out[i] = []float32{1, 0}
					}
					return out, nil
				},
			},
			Sources: []cmdmend.Source{&mock.Source{
				TagFn: func() cmdmend.SourceTag { return cmdmend.SourceTldr },
				FetchFn: func(ctx context.Context, tool string) (string, error) {
					return "git push sends local commits to a remote", nil
				},
			}},
			Docs:     store.docService(),
			Passages: store.passageService(),
		}

		fix, err := e.Fix(context.Background(), cmdmend.FailedCommand{
			Command:  "git push",
			ExitCode: 128,
			Stderr:   "fatal: The current branch main has no upstream branch.",
		})
		require.NoError(t, err)
		assert.True(t, fix.Parsed)
		assert.Equal(t, "git push --set-upstream origin main", fix.Command)
		assert.Contains(t, prompt, "sends local commits to a remote")
	})

	t.Run("returns raw text when no command can be isolated", func(t *testing.T) {
		t.Parallel()

		e := &engine.Engine{
			Completer: scriptedCompleter("none", "Sorry, I cannot determine the command.", nil),
		}

		fix, err := e.Fix(context.Background(), cmdmend.FailedCommand{Command: "???", ExitCode: 1})
		require.NoError(t, err)
		assert.False(t, fix.Parsed)
		assert.Empty(t, fix.Command)
		assert.Equal(t, "Sorry, I cannot determine the command.", fix.Raw)
	})

	t.Run("rejects an empty command", func(t *testing.T) {
		t.Parallel()

		e := &engine.Engine{}
		_, err := e.Fix(context.Background(), cmdmend.FailedCommand{})
		assert.Equal(t, cmdmend.EINVALID, cmdmend.ErrorCode(err))
	})

	t.Run("generation failure is fatal", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		e := &engine.Engine{
			Completer: &mock.Completer{
				CompleteFn: func(ctx context.Context, prompt string, opts cmdmend.CompleteOptions) (string, error) {
					return "", cmdmend.Errorf(cmdmend.EINTERNAL, "model crashed")
				},
			},
			Embedder: &mock.Embedder{
				ModelFn: func() string { return "m1" },
				EmbedQueryFn: func(ctx context.Context, text string) ([]float32, error) {
					return []float32{1}, nil
				},
			},
			Sources: []cmdmend.Source{&mock.Source{
				FetchFn: func(ctx context.Context, tool string) (string, error) {
					return "", cmdmend.Errorf(cmdmend.ENOTFOUND, "no page")
				},
			}},
			Docs:     store.docService(),
			Passages: store.passageService(),
		}

		_, err := e.Fix(context.Background(), cmdmend.FailedCommand{Command: "git status", ExitCode: 1})
		require.Error(t, err)
		assert.Equal(t, cmdmend.EINTERNAL, cmdmend.ErrorCode(err))
	})
}
