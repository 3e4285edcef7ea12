package main

import (
	"fmt"

	"github.com/fwojciec/cmdmend"
)

// Run executes the ask command. A running session server is preferred;
// otherwise the pipeline runs in-process, paying model warm-up cost.
func (c *AskCmd) Run(deps *Dependencies) error {
	if deps.Client != nil && deps.Client.Running(deps.Ctx) {
		answer, err := deps.Client.Ask(deps.Ctx, c.Question)
		if err == nil {
			fmt.Fprintln(deps.Stdout, answer)
			return nil
		}
		deps.Logger.Debug("server request failed, falling back", "error", err)
	}

	answer, err := deps.Engine.Ask(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cmdmend.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
