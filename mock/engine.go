package mock

import (
	"context"

	"github.com/fwojciec/cmdmend"
)

var _ cmdmend.Asker = (*Asker)(nil)

// Asker is a mock implementation of cmdmend.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	return a.AskFn(ctx, question)
}

var _ cmdmend.Fixer = (*Fixer)(nil)

// Fixer is a mock implementation of cmdmend.Fixer.
type Fixer struct {
	FixFn func(ctx context.Context, failed cmdmend.FailedCommand) (*cmdmend.FixSuggestion, error)
}

func (f *Fixer) Fix(ctx context.Context, failed cmdmend.FailedCommand) (*cmdmend.FixSuggestion, error) {
	return f.FixFn(ctx, failed)
}

var _ cmdmend.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of cmdmend.Retriever.
type Retriever struct {
	RetrieveFn func(ctx context.Context, tool, query string, k int) ([]cmdmend.SearchResult, error)
}

func (r *Retriever) Retrieve(ctx context.Context, tool, query string, k int) ([]cmdmend.SearchResult, error) {
	return r.RetrieveFn(ctx, tool, query, k)
}

var _ cmdmend.ToolExtractor = (*ToolExtractor)(nil)

// ToolExtractor is a mock implementation of cmdmend.ToolExtractor.
type ToolExtractor struct {
	ExtractToolFn func(ctx context.Context, text string) (string, error)
}

func (t *ToolExtractor) ExtractTool(ctx context.Context, text string) (string, error) {
	return t.ExtractToolFn(ctx, text)
}
