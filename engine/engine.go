// Package engine composes cmdmend's retrieval and generation pipeline:
// tool extraction, tiered documentation resolution, passage indexing,
// semantic retrieval and answer/fix generation.
package engine

import (
	"context"
	"log/slog"

	"github.com/fwojciec/cmdmend"
)

// Defaults for tuning parameters. These are configuration with
// documented defaults, not hard constraints; behavior should be stable
// across reasonable ranges.
const (
	DefaultTopK          = 5
	DefaultFixTopK       = 2
	DefaultContextBudget = 6000
	DefaultStderrExcerpt = 200
)

// Compile-time interface verification.
var (
	_ cmdmend.Asker         = (*Engine)(nil)
	_ cmdmend.Fixer         = (*Engine)(nil)
	_ cmdmend.ToolExtractor = (*Engine)(nil)
	_ cmdmend.Resolver      = (*Engine)(nil)
	_ cmdmend.Indexer       = (*Engine)(nil)
	_ cmdmend.Retriever     = (*Engine)(nil)
)

// Engine runs the full pipeline. All collaborators are injected; the
// engine holds no global state and never executes suggested commands.
type Engine struct {
	Completer cmdmend.Completer
	Embedder  cmdmend.Embedder
	Sources   []cmdmend.Source
	Docs      cmdmend.DocService
	Passages  cmdmend.PassageService
	Logger    *slog.Logger

	// TopK bounds retrieval for questions; FixTopK for fixes.
	TopK    int
	FixTopK int

	// MaxPassageLen bounds passage size during indexing.
	MaxPassageLen int

	// ContextBudget bounds total characters of retrieved context in a
	// prompt. Lower-ranked passages are dropped first when over
	// budget.
	ContextBudget int

	// EmbedConcurrency bounds concurrent embedding batches during
	// indexing. The Ollama HTTP server handles concurrent requests;
	// when a shared in-process model handle requires serialization the
	// session server's mutex decorator enforces it instead.
	EmbedConcurrency int
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e *Engine) topK() int {
	if e.TopK > 0 {
		return e.TopK
	}
	return DefaultTopK
}

func (e *Engine) fixTopK() int {
	if e.FixTopK > 0 {
		return e.FixTopK
	}
	return DefaultFixTopK
}

func (e *Engine) contextBudget() int {
	if e.ContextBudget > 0 {
		return e.ContextBudget
	}
	return DefaultContextBudget
}

// Ask answers a natural language question about CLI tools, grounding
// the answer in retrieved documentation when possible. Retrieval-path
// failures degrade to an ungrounded answer; only generation failures
// are fatal.
func (e *Engine) Ask(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", cmdmend.Errorf(cmdmend.EINVALID, "question required")
	}

	results := e.contextFor(ctx, question, question, e.topK())

	return e.generateAnswer(ctx, question, results)
}

// Fix suggests a corrected command for a failed one.
func (e *Engine) Fix(ctx context.Context, failed cmdmend.FailedCommand) (*cmdmend.FixSuggestion, error) {
	if err := failed.Validate(); err != nil {
		return nil, err
	}

	// The failed command's first token usually names the tool; fall
	// back to model extraction only when it is implausible.
	query := fixQuery(failed.Stderr)
	tool, err := cmdmend.NormalizeToolName(cmdmend.FirstToken(failed.Command))
	if err != nil {
		results := e.contextFor(ctx, failed.Command, query, e.fixTopK())
		return e.generateFix(ctx, failed, results)
	}

	results := e.retrieveForTool(ctx, tool, query, e.fixTopK())
	return e.generateFix(ctx, failed, results)
}

// contextFor extracts a tool from text and retrieves matching
// passages. Any failure along the way is absorbed: less context, not
// total failure.
func (e *Engine) contextFor(ctx context.Context, text, query string, k int) []cmdmend.SearchResult {
	tool, err := e.ExtractTool(ctx, text)
	if err != nil {
		e.logger().Debug("tool extraction failed", "error", err)
		return nil
	}
	return e.retrieveForTool(ctx, tool, query, k)
}

// retrieveForTool resolves, indexes and retrieves documentation for a
// known tool, absorbing retrieval-path failures.
func (e *Engine) retrieveForTool(ctx context.Context, tool, query string, k int) []cmdmend.SearchResult {
	doc, err := e.Resolve(ctx, tool)
	if err != nil {
		e.logger().Debug("no documentation", "tool", tool, "error", err)
	} else if _, err := e.Index(ctx, doc); err != nil {
		e.logger().Debug("indexing failed", "tool", tool, "error", err)
	}

	results, err := e.Retrieve(ctx, tool, query, k)
	if err != nil {
		e.logger().Debug("retrieval failed", "tool", tool, "error", err)
		return nil
	}
	return results
}

// fixQuery builds the retrieval query for a fix request from the
// command's error output.
func fixQuery(stderr string) string {
	if len(stderr) > DefaultStderrExcerpt {
		stderr = stderr[:DefaultStderrExcerpt]
	}
	return "fix error: " + stderr
}
