package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripANSI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "hello world", want: "hello world"},
		{name: "color codes", in: "\x1b[31merror\x1b[0m: not found", want: "error: not found"},
		{name: "cursor movement", in: "\x1b[2Aline", want: "line"},
		{name: "osc title sequence", in: "\x1b]0;window title\x07prompt$", want: "prompt$"},
		{name: "control characters", in: "a\x00b\x07c", want: "abc"},
		{name: "preserves newlines and tabs", in: "line1\n\tline2", want: "line1\n\tline2"},
		{name: "trims surrounding whitespace", in: "  text  ", want: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StripANSI(tt.in))
		})
	}
}

func TestReadTerminalLog(t *testing.T) {
	t.Parallel()

	t.Run("empty path yields empty context", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, readTerminalLog("", 30))
	})

	t.Run("missing file yields empty context", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, readTerminalLog(filepath.Join(t.TempDir(), "absent.log"), 30))
	})

	t.Run("returns only the trailing lines", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "terminal.log")
		var sb strings.Builder
		for range 50 {
			sb.WriteString("old line\n")
		}
		sb.WriteString("recent error\n")
		require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))

		got := readTerminalLog(path, 3)
		assert.Contains(t, got, "recent error")
		assert.LessOrEqual(t, strings.Count(got, "\n"), 3)
	})

	t.Run("strips escape sequences", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "terminal.log")
		require.NoError(t, os.WriteFile(path, []byte("\x1b[31mgti: command not found\x1b[0m\n"), 0o644))

		got := readTerminalLog(path, 30)
		assert.Equal(t, "gti: command not found", got)
	})
}
