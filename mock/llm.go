// Package mock provides function-field mock implementations of cmdmend
// interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/cmdmend"
)

var _ cmdmend.Completer = (*Completer)(nil)

// Completer is a mock implementation of cmdmend.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string, opts cmdmend.CompleteOptions) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string, opts cmdmend.CompleteOptions) (string, error) {
	return c.CompleteFn(ctx, prompt, opts)
}

var _ cmdmend.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of cmdmend.Embedder.
type Embedder struct {
	EmbedQueryFn     func(ctx context.Context, text string) ([]float32, error)
	EmbedDocumentsFn func(ctx context.Context, texts []string) ([][]float32, error)
	ModelFn          func() string
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedQueryFn(ctx, text)
}

func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedDocumentsFn(ctx, texts)
}

func (e *Embedder) Model() string {
	if e.ModelFn == nil {
		return "mock-embedder"
	}
	return e.ModelFn()
}
