package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/cmdmend"
)

// Run executes the init command, printing a shell integration snippet
// to evaluate in the user's shell config.
func (c *InitCmd) Run(deps *Dependencies) error {
	script, err := initScript(c.Shell, c.Alias)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cmdmend.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, script)
	return nil
}

// initScript returns the integration snippet for a shell. The snippet
// defines a function that captures the last command and its exit code,
// asks cmdmend for a fix and runs it only after explicit confirmation.
func initScript(shell, alias string) (string, error) {
	switch strings.ToLower(shell) {
	case "bash", "zsh":
		return fmt.Sprintf(posixInitScript, alias), nil
	case "fish":
		return fmt.Sprintf(fishInitScript, alias), nil
	default:
		return "", cmdmend.Errorf(cmdmend.EINVALID, "unsupported shell %q (expected bash, zsh, or fish)", shell)
	}
}

const posixInitScript = `%[1]s() {
    local exit_code=$?
    local last_cmd
    last_cmd=$(fc -ln -1 | sed 's/^[[:space:]]*//')
    if [ -z "$last_cmd" ]; then
        echo "no previous command" >&2
        return 1
    fi
    local fix
    fix=$(__CMDMEND_LAST_CMD="$last_cmd" __CMDMEND_EXIT_CODE="$exit_code" \
        cmdmend fix-internal --command "$last_cmd" --exit-code "$exit_code")
    if [ -z "$fix" ]; then
        echo "no fix suggestion available" >&2
        return 1
    fi
    printf 'run: %%s [y/N] ' "$fix"
    read -r answer
    case "$answer" in
        y|Y) eval "$fix" ;;
    esac
}`

const fishInitScript = `function %[1]s
    set -l exit_code $status
    set -l last_cmd $history[1]
    if test -z "$last_cmd"
        echo "no previous command" >&2
        return 1
    end
    set -l fix (env __CMDMEND_LAST_CMD="$last_cmd" __CMDMEND_EXIT_CODE="$exit_code" \
        cmdmend fix-internal --command "$last_cmd" --exit-code "$exit_code")
    if test -z "$fix"
        echo "no fix suggestion available" >&2
        return 1
    end
    read -l -P "run: $fix [y/N] " answer
    if test "$answer" = y -o "$answer" = Y
        eval $fix
    end
end`
