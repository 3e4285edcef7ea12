package cmdmend_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/cmdmend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPassages(t *testing.T) {
	t.Parallel()

	t.Run("empty content yields no passages", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, cmdmend.SplitPassages("", 100))
		assert.Nil(t, cmdmend.SplitPassages("   \n\n  ", 100))
	})

	t.Run("short content yields a single passage", func(t *testing.T) {
		t.Parallel()

		got := cmdmend.SplitPassages("git - the stupid content tracker", 100)
		require.Len(t, got, 1)
		assert.Equal(t, "git - the stupid content tracker", got[0])
	})

	t.Run("splits on blank lines when over the limit", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("a", 80) + "\n\n" + strings.Repeat("b", 80)
		got := cmdmend.SplitPassages(content, 100)

		require.Len(t, got, 2)
		assert.Equal(t, strings.Repeat("a", 80), got[0])
		assert.Equal(t, strings.Repeat("b", 80), got[1])
	})

	t.Run("starts a new passage at markdown headings", func(t *testing.T) {
		t.Parallel()

		content := "# git\n\nintro text\n\n# EXAMPLES\n\nexample text"
		got := cmdmend.SplitPassages(content, 1000)

		require.Len(t, got, 2)
		assert.Contains(t, got[0], "intro text")
		assert.True(t, strings.HasPrefix(got[1], "# EXAMPLES"))
	})

	t.Run("starts a new passage at man page section headings", func(t *testing.T) {
		t.Parallel()

		content := "NAME\ngit - version control\n\nDESCRIPTION\nGit is a fast SCM."
		got := cmdmend.SplitPassages(content, 1000)

		require.Len(t, got, 2)
		assert.True(t, strings.HasPrefix(got[1], "DESCRIPTION"))
	})

	t.Run("respects the maximum length", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("word ", 1000)
		for _, p := range cmdmend.SplitPassages(content, 200) {
			assert.LessOrEqual(t, len(p), 200)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		content := "NAME\ngit - version control\n\n" + strings.Repeat("usage line\n", 100)
		first := cmdmend.SplitPassages(content, 300)
		second := cmdmend.SplitPassages(content, 300)

		assert.Equal(t, first, second)
	})

	t.Run("loses no non-whitespace content", func(t *testing.T) {
		t.Parallel()

		content := "alpha\n\nbravo\n\ncharlie delta\n\necho"
		got := cmdmend.SplitPassages(content, 16)

		joined := strings.Join(got, " ")
		for _, word := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
			assert.Contains(t, joined, word)
		}
	})
}
