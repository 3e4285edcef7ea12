package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/fwojciec/cmdmend"
	"github.com/fwojciec/cmdmend/server"
)

// Run executes the serve command. Without --foreground the process
// re-executes itself detached so the shell prompt returns immediately.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if !c.Foreground {
		return spawnBackground(deps)
	}

	// The server owns the only loaded model handles; guards serialize
	// concurrent requests into each one.
	asker, fixer := guardEngine(deps)
	srv := &server.Server{
		SocketPath: deps.SocketPath,
		LockPath:   deps.LockPath,
		Asker:      asker,
		Fixer:      fixer,
		Logger:     deps.Logger,
	}

	if err := srv.Start(deps.Ctx); err != nil {
		if cmdmend.ErrorCode(err) == cmdmend.ECONFLICT {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cmdmend.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintln(deps.Stdout, "Session server running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		_ = srv.Stop()
	}()

	srv.Wait()
	return nil
}

// guardEngine wraps the engine's model handles with the server's
// mutual-exclusion guards before the engine is shared across
// connections.
func guardEngine(deps *Dependencies) (cmdmend.Asker, cmdmend.Fixer) {
	eng := *deps.Engine
	eng.Completer = server.NewGuardedCompleter(eng.Completer)
	eng.Embedder = server.NewGuardedEmbedder(eng.Embedder)
	return &eng, &eng
}

// spawnBackground re-executes the binary with serve --foreground in a
// new session.
func spawnBackground(deps *Dependencies) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	cmd := exec.Command(exe, "serve", "--foreground")
	cmd.Env = os.Environ()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Session server started (pid %d)\n", cmd.Process.Pid)
	return cmd.Process.Release()
}
