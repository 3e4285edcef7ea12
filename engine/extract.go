package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/cmdmend"
)

const extractPrompt = `Identify the single command-line tool most relevant to the following input. Respond with only the tool's executable name, in lowercase, with no explanation. If no tool is relevant, respond with: none

Input: %s

Tool:`

// extractOptions keep the extraction call short and near-deterministic.
var extractOptions = cmdmend.CompleteOptions{
	MaxTokens:   12,
	Stop:        []string{"\n"},
	Temperature: 0.1,
}

// ExtractTool identifies which CLI tool the text is about via a short
// model call. The prompt deliberately contains only the user's text,
// not the full error context, for speed and determinism. Returns
// ENOTFOUND when the model's output does not look like a plausible
// executable name.
func (e *Engine) ExtractTool(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", cmdmend.Errorf(cmdmend.EINVALID, "text required")
	}

	out, err := e.Completer.Complete(ctx, fmt.Sprintf(extractPrompt, text), extractOptions)
	if err != nil {
		return "", err
	}

	return cmdmend.NormalizeToolName(out)
}
