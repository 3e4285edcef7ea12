package main

import "fmt"

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	if err := deps.Client.Ping(deps.Ctx); err != nil {
		fmt.Fprintln(deps.Stdout, "Server is not running.")
		fmt.Fprintln(deps.Stdout, "Start it with: cmdmend serve")
		return nil
	}
	fmt.Fprintln(deps.Stdout, "Server is running and responsive.")
	return nil
}
