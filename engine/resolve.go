package engine

import (
	"context"

	"github.com/fwojciec/cmdmend"
)

// Resolve obtains documentation for a tool, trying sources in priority
// order. A source failure is non-fatal; the next source is tried. The
// first source producing non-empty text wins and its provenance tag is
// recorded on the doc. Returns ENOTFOUND when every source fails.
func (e *Engine) Resolve(ctx context.Context, tool string) (*cmdmend.Doc, error) {
	if tool == "" {
		return nil, cmdmend.Errorf(cmdmend.EINVALID, "tool required")
	}

	for _, src := range e.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := src.Fetch(ctx, tool)
		if err != nil {
			e.logger().Debug("source failed",
				"tool", tool,
				"source", string(src.Tag()),
				"error", err,
			)
			continue
		}
		if text == "" {
			continue
		}

		return &cmdmend.Doc{
			Tool:    tool,
			Source:  src.Tag(),
			Content: text,
		}, nil
	}

	return nil, cmdmend.Errorf(cmdmend.ENOTFOUND, "no documentation found for %q", tool)
}
