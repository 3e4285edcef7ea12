// Package man provides a cmdmend.Source backed by the system man
// command.
package man

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/fwojciec/cmdmend"
)

// DefaultTimeout bounds a single man invocation.
const DefaultTimeout = 10 * time.Second

// Ensure Source implements cmdmend.Source at compile time.
var _ cmdmend.Source = (*Source)(nil)

// Source fetches man pages by running the system man binary.
type Source struct {
	binary  string
	timeout time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithBinary overrides the man executable path. Used in tests.
func WithBinary(path string) Option {
	return func(s *Source) {
		s.binary = path
	}
}

// WithTimeout sets the timeout for a man invocation.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// NewSource creates a new man page source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		binary:  "man",
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tag returns the provenance tag for man pages.
func (s *Source) Tag() cmdmend.SourceTag {
	return cmdmend.SourceMan
}

// Fetch runs man for the tool and returns the rendered page as plain
// text. Returns ENOTFOUND when no page exists and EUNAVAILABLE when
// man itself cannot be run.
func (s *Source) Fetch(ctx context.Context, tool string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.binary, tool)
	// Force plain output: no pager, fixed width.
	cmd.Env = append(cmd.Environ(), "MANPAGER=cat", "PAGER=cat", "MANWIDTH=100")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// man exits non-zero when the page does not exist.
			return "", cmdmend.Errorf(cmdmend.ENOTFOUND, "no man page for %q", tool)
		}
		return "", cmdmend.Errorf(cmdmend.EUNAVAILABLE, "man unavailable: %v", err)
	}

	text := StripOverstrike(stdout.String())
	if strings.TrimSpace(text) == "" {
		return "", cmdmend.Errorf(cmdmend.ENOTFOUND, "empty man page for %q", tool)
	}
	return text, nil
}

// StripOverstrike removes nroff overstrike sequences (c\bc for bold,
// _\bc for underline) from rendered man output.
func StripOverstrike(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if i+1 < len(runes) && runes[i+1] == '\b' {
			// Skip the overstruck character and the backspace; the
			// following character is the one that remains visible.
			i++
			continue
		}
		if runes[i] == '\b' {
			continue
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}
