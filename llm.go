package cmdmend

import "context"

// CompleteOptions configures a single text completion call.
type CompleteOptions struct {
	// MaxTokens bounds the length of the generated text.
	MaxTokens int

	// Stop sequences terminate generation when emitted.
	Stop []string

	// Temperature controls sampling randomness. Zero means the
	// implementation's default.
	Temperature float64
}

// Completer generates text from a prompt. Implementations are not
// assumed to be safe for concurrent use; callers that share a
// Completer across goroutines must serialize calls.
type Completer interface {
	// Complete returns generated text for the prompt. Returns
	// EINTERNAL if the underlying inference engine fails.
	Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error)
}

// Embedder encodes text as fixed-dimension vectors. Query and passage
// vectors are only comparable when produced by the same model, so
// implementations expose their model identifier for cache
// invalidation.
type Embedder interface {
	// EmbedQuery embeds a single query string.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedDocuments embeds a batch of passage texts.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the identifier of the embedding model, used to
	// detect embedding-space mismatches against cached vectors.
	Model() string
}
