package cmdmend

import "context"

// FailedCommand describes a shell command that exited non-zero.
type FailedCommand struct {
	Command  string `json:"command"`
	ExitCode int    `json:"exitCode"`
	Stderr   string `json:"stderr"`
}

// Validate returns an error if the failed command contains invalid
// fields.
func (f *FailedCommand) Validate() error {
	if f.Command == "" {
		return Errorf(EINVALID, "failed command text required")
	}
	return nil
}

// FixSuggestion is the result of a fix request. When Parsed is false
// the model's response could not be reduced to a single command line
// and Raw carries the full text so the user is not left with nothing.
type FixSuggestion struct {
	Command string `json:"command"`
	Raw     string `json:"raw,omitempty"`
	Parsed  bool   `json:"parsed"`
}

// Asker answers natural language questions about CLI tools.
type Asker interface {
	// Ask answers a question, grounding the answer in retrieved
	// documentation when a relevant tool can be identified.
	Ask(ctx context.Context, question string) (string, error)
}

// Fixer suggests a corrected command for a failed one. It never
// executes the suggestion; running it is the caller's responsibility.
type Fixer interface {
	Fix(ctx context.Context, failed FailedCommand) (*FixSuggestion, error)
}

// ToolExtractor identifies which CLI tool a piece of text is about.
type ToolExtractor interface {
	// ExtractTool returns a normalized tool name. Returns ENOTFOUND
	// when no plausible tool can be identified.
	ExtractTool(ctx context.Context, text string) (string, error)
}

// Resolver obtains documentation for a tool from a tiered set of
// sources.
type Resolver interface {
	// Resolve returns the first available documentation for the tool.
	// Returns ENOTFOUND when no source yields text.
	Resolve(ctx context.Context, tool string) (*Doc, error)
}

// Indexer splits a doc into passages and embeds them, caching the
// result. Indexing identical content with the same embedding model is
// a no-op.
type Indexer interface {
	Index(ctx context.Context, doc *Doc) ([]*Passage, error)
}
