package ollama

import (
	"context"

	"github.com/fwojciec/cmdmend"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Ensure Completer implements cmdmend.Completer at compile time.
var _ cmdmend.Completer = (*Completer)(nil)

// Completer implements cmdmend.Completer using a local Ollama model.
// It is not safe for concurrent use; the session server serializes
// calls around it.
type Completer struct {
	llm   *ollama.LLM
	model string
}

// NewCompleter creates a Completer for the configured chat model.
func NewCompleter(c Config) (*Completer, error) {
	if c.ChatModel == "" {
		return nil, cmdmend.Errorf(cmdmend.EINVALID, "chat model required")
	}
	llm, err := newClient(c, c.ChatModel)
	if err != nil {
		return nil, cmdmend.Errorf(cmdmend.EINTERNAL, "failed to create ollama client: %v", err)
	}
	return &Completer{llm: llm, model: c.ChatModel}, nil
}

// Model returns the chat model identifier.
func (c *Completer) Model() string {
	return c.model
}

// Complete generates text for the prompt.
func (c *Completer) Complete(ctx context.Context, prompt string, opts cmdmend.CompleteOptions) (string, error) {
	callOpts := []llms.CallOption{}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}
	if len(opts.Stop) > 0 {
		callOpts = append(callOpts, llms.WithStopWords(opts.Stop))
	}
	if opts.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(opts.Temperature))
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, callOpts...)
	if err != nil {
		return "", cmdmend.Errorf(cmdmend.EINTERNAL, "inference failed: %v", err)
	}
	return text, nil
}
