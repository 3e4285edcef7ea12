// Package slog provides logging decorators for cmdmend interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cmdmend"
)

// Ensure LoggingCompleter implements cmdmend.Completer.
var _ cmdmend.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with duration and outcome logging.
type LoggingCompleter struct {
	next   cmdmend.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next cmdmend.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the call.
func (c *LoggingCompleter) Complete(ctx context.Context, prompt string, opts cmdmend.CompleteOptions) (string, error) {
	begin := time.Now()
	text, err := c.next.Complete(ctx, prompt, opts)
	attrs := []any{
		"prompt_len", len(prompt),
		"max_tokens", opts.MaxTokens,
		"duration", time.Since(begin),
	}
	if err != nil {
		c.logger.Error("completion failed", append(attrs, "error", err)...)
		return "", err
	}
	c.logger.Debug("completion", append(attrs, "response_len", len(text))...)
	return text, nil
}
