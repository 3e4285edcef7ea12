package main

import (
	"testing"

	"github.com/fwojciec/cmdmend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitScript(t *testing.T) {
	t.Parallel()

	t.Run("bash and zsh share the posix snippet", func(t *testing.T) {
		t.Parallel()

		bash, err := initScript("bash", "mend")
		require.NoError(t, err)
		zsh, err := initScript("zsh", "mend")
		require.NoError(t, err)

		assert.Equal(t, bash, zsh)
		assert.Contains(t, bash, "mend()")
		assert.Contains(t, bash, "fc -ln -1")
		assert.Contains(t, bash, "fix-internal")
		assert.Contains(t, bash, "__CMDMEND_LAST_CMD")
		assert.Contains(t, bash, "[y/N]")
	})

	t.Run("fish gets its own snippet", func(t *testing.T) {
		t.Parallel()

		fish, err := initScript("fish", "mend")
		require.NoError(t, err)
		assert.Contains(t, fish, "function mend")
		assert.Contains(t, fish, "$history[1]")
		assert.Contains(t, fish, "fix-internal")
	})

	t.Run("the alias names the function", func(t *testing.T) {
		t.Parallel()

		script, err := initScript("bash", "oops")
		require.NoError(t, err)
		assert.Contains(t, script, "oops()")
		assert.NotContains(t, script, "mend()")
	})

	t.Run("shell name is case-insensitive", func(t *testing.T) {
		t.Parallel()

		_, err := initScript("Bash", "mend")
		assert.NoError(t, err)
	})

	t.Run("unsupported shell is EINVALID", func(t *testing.T) {
		t.Parallel()

		_, err := initScript("powershell", "mend")
		require.Error(t, err)
		assert.Equal(t, cmdmend.EINVALID, cmdmend.ErrorCode(err))
	})
}
