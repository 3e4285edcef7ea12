package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cmdmend"
)

// Ensure LoggingSource implements cmdmend.Source.
var _ cmdmend.Source = (*LoggingSource)(nil)

// LoggingSource wraps a documentation Source with fetch logging.
type LoggingSource struct {
	next   cmdmend.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next cmdmend.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Tag delegates to the wrapped source.
func (s *LoggingSource) Tag() cmdmend.SourceTag {
	return s.next.Tag()
}

// Fetch delegates and logs the attempt.
func (s *LoggingSource) Fetch(ctx context.Context, tool string) (string, error) {
	begin := time.Now()
	text, err := s.next.Fetch(ctx, tool)
	if err != nil {
		s.logger.Debug("source fetch failed",
			"source", string(s.next.Tag()),
			"tool", tool,
			"error", err,
			"duration", time.Since(begin),
		)
		return "", err
	}
	s.logger.Debug("source fetch",
		"source", string(s.next.Tag()),
		"tool", tool,
		"bytes", len(text),
		"duration", time.Since(begin),
	)
	return text, nil
}
