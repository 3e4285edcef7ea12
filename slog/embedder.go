package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cmdmend"
)

// Ensure LoggingEmbedder implements cmdmend.Embedder.
var _ cmdmend.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with duration logging.
type LoggingEmbedder struct {
	next   cmdmend.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next cmdmend.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Model delegates to the wrapped embedder.
func (e *LoggingEmbedder) Model() string {
	return e.next.Model()
}

// EmbedQuery delegates and logs the call.
func (e *LoggingEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	begin := time.Now()
	v, err := e.next.EmbedQuery(ctx, text)
	if err != nil {
		e.logger.Error("query embedding failed", "error", err, "duration", time.Since(begin))
		return nil, err
	}
	e.logger.Debug("query embedding", "dims", len(v), "duration", time.Since(begin))
	return v, nil
}

// EmbedDocuments delegates and logs the call.
func (e *LoggingEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	begin := time.Now()
	vs, err := e.next.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("document embedding failed", "count", len(texts), "error", err, "duration", time.Since(begin))
		return nil, err
	}
	e.logger.Debug("document embedding", "count", len(texts), "duration", time.Since(begin))
	return vs, nil
}
