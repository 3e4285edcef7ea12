package main

import (
	"fmt"

	"github.com/fwojciec/cmdmend"
)

// Run executes the stop command.
func (c *StopCmd) Run(deps *Dependencies) error {
	if !deps.Client.Running(deps.Ctx) {
		fmt.Fprintln(deps.Stderr, "Server is not running.")
		return cmdmend.Errorf(cmdmend.EUNAVAILABLE, "server not running")
	}

	if err := deps.Client.Stop(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cmdmend.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Server stopped.")
	return nil
}
