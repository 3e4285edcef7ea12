package server

import (
	"context"
	"sync"

	"github.com/fwojciec/cmdmend"
)

// Compile-time interface verification.
var (
	_ cmdmend.Completer = (*GuardedCompleter)(nil)
	_ cmdmend.Embedder  = (*GuardedEmbedder)(nil)
)

// GuardedCompleter serializes calls into an inference engine that is
// not safely reentrant. Concurrent requests queue on the mutex rather
// than interleaving calls into the model handle.
type GuardedCompleter struct {
	mu   sync.Mutex
	next cmdmend.Completer
}

// NewGuardedCompleter creates a new GuardedCompleter.
func NewGuardedCompleter(next cmdmend.Completer) *GuardedCompleter {
	return &GuardedCompleter{next: next}
}

// Complete forwards to the wrapped completer under the guard. An
// in-flight call always runs to completion; a caller whose context was
// cancelled while queued gets the context error without touching the
// model.
func (g *GuardedCompleter) Complete(ctx context.Context, prompt string, opts cmdmend.CompleteOptions) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.next.Complete(ctx, prompt, opts)
}

// GuardedEmbedder serializes calls into an embedding engine with the
// same non-reentrancy restriction.
type GuardedEmbedder struct {
	mu   sync.Mutex
	next cmdmend.Embedder
}

// NewGuardedEmbedder creates a new GuardedEmbedder.
func NewGuardedEmbedder(next cmdmend.Embedder) *GuardedEmbedder {
	return &GuardedEmbedder{next: next}
}

// Model delegates to the wrapped embedder.
func (g *GuardedEmbedder) Model() string {
	return g.next.Model()
}

// EmbedQuery forwards to the wrapped embedder under the guard.
func (g *GuardedEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return g.next.EmbedQuery(ctx, text)
}

// EmbedDocuments forwards to the wrapped embedder under the guard.
func (g *GuardedEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return g.next.EmbedDocuments(ctx, texts)
}
