package main

import (
	"fmt"

	"github.com/fwojciec/cmdmend"
)

// Run executes the refresh command: drops a tool's cached
// documentation and rebuilds it from the sources, bypassing the
// content-hash cache. Useful after a tool upgrade changes its man
// page.
func (c *RefreshCmd) Run(deps *Dependencies) error {
	tool, err := cmdmend.NormalizeToolName(c.Tool)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cmdmend.ErrorMessage(err))
		return err
	}

	docs, err := deps.Engine.Docs.FindDocsByTool(deps.Ctx, tool)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cmdmend.ErrorMessage(err))
		return err
	}
	for _, doc := range docs {
		if err := deps.Engine.Docs.DeleteDoc(deps.Ctx, doc.ID); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cmdmend.ErrorMessage(err))
			return err
		}
	}

	doc, err := deps.Engine.Resolve(deps.Ctx, tool)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cmdmend.ErrorMessage(err))
		return err
	}
	passages, err := deps.Engine.Index(deps.Ctx, doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cmdmend.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d passages for %s (source: %s)\n",
		len(passages), tool, doc.Source)
	return nil
}
