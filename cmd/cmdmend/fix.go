package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/fwojciec/cmdmend"
)

// Environment variables set by the shell hook installed via
// "cmdmend init".
const (
	envLastCmd  = "__CMDMEND_LAST_CMD"
	envExitCode = "__CMDMEND_EXIT_CODE"
	envLogFile  = "CMDMEND_LOG_FILE"
)

// Run executes the fix command.
func (c *FixCmd) Run(deps *Dependencies) error {
	failed, err := failedCommandFromEnv(c.Command, c.ExitCode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cmdmend.ErrorMessage(err))
		fmt.Fprintln(deps.Stderr, "Set up shell integration with: eval \"$(cmdmend init bash)\"")
		return err
	}

	fix, err := runFix(deps, failed)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cmdmend.ErrorMessage(err))
		return err
	}

	if !fix.Parsed {
		fmt.Fprintln(deps.Stderr, "No single-line fix could be isolated; model said:")
		fmt.Fprintln(deps.Stdout, fix.Raw)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Suggested fix: %s\n", fix.Command)

	if !c.Execute {
		return nil
	}
	return confirmAndRun(deps, fix.Command)
}

// confirmAndRun offers to execute the suggestion. Nothing runs
// without an explicit yes.
func confirmAndRun(deps *Dependencies, command string) error {
	fmt.Fprintf(deps.Stdout, "run: %s [y/N] ", command)

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return scanner.Err()
	}
	switch strings.TrimSpace(scanner.Text()) {
	case "y", "Y":
		return deps.RunCommand(deps.Ctx, command)
	}
	return nil
}

// runShellCommand executes a confirmed suggestion in the user's shell
// with the terminal's stdio attached.
func runShellCommand(ctx context.Context, command string) error {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Run executes the hidden fix-internal command. It prints only the
// suggested command; the shell hook decides whether to run it after
// user confirmation.
func (c *FixInternalCmd) Run(deps *Dependencies) error {
	stderrText := c.Stderr
	if stderrText == "" {
		stderrText = readTerminalLog(os.Getenv(envLogFile), defaultLogLines)
	}

	fix, err := runFix(deps, cmdmend.FailedCommand{
		Command:  c.Command,
		ExitCode: c.ExitCode,
		Stderr:   stderrText,
	})
	if err != nil {
		return err
	}
	if fix.Parsed {
		fmt.Fprintln(deps.Stdout, fix.Command)
	}
	return nil
}

// runFix dispatches a fix request server-first with in-process
// fallback.
func runFix(deps *Dependencies, failed cmdmend.FailedCommand) (*cmdmend.FixSuggestion, error) {
	if deps.Client != nil && deps.Client.Running(deps.Ctx) {
		fix, err := deps.Client.Fix(deps.Ctx, failed)
		if err == nil {
			return fix, nil
		}
		deps.Logger.Debug("server request failed, falling back", "error", err)
	}
	return deps.Engine.Fix(deps.Ctx, failed)
}

// failedCommandFromEnv assembles the failed command from flags,
// falling back to the environment populated by the shell hook.
func failedCommandFromEnv(command string, exitCode int) (cmdmend.FailedCommand, error) {
	if command == "" {
		command = os.Getenv(envLastCmd)
	}
	if command == "" {
		return cmdmend.FailedCommand{}, cmdmend.Errorf(cmdmend.ENOTFOUND, "no previous command found")
	}

	if exitCode < 0 {
		exitCode = 1
		if v := os.Getenv(envExitCode); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				exitCode = n
			}
		}
	}

	return cmdmend.FailedCommand{
		Command:  command,
		ExitCode: exitCode,
		Stderr:   readTerminalLog(os.Getenv(envLogFile), defaultLogLines),
	}, nil
}
