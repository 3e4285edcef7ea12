package ollama

import (
	"context"

	"github.com/fwojciec/cmdmend"
	"github.com/tmc/langchaingo/embeddings"
)

// Ensure Embedder implements cmdmend.Embedder at compile time.
var _ cmdmend.Embedder = (*Embedder)(nil)

// Embedder implements cmdmend.Embedder using a local Ollama embedding
// model.
type Embedder struct {
	emb   *embeddings.EmbedderImpl
	model string
}

// NewEmbedder creates an Embedder for the configured embedding model.
func NewEmbedder(c Config) (*Embedder, error) {
	if c.EmbeddingModel == "" {
		return nil, cmdmend.Errorf(cmdmend.EINVALID, "embedding model required")
	}
	emb, err := newEmbedderClient(c)
	if err != nil {
		return nil, cmdmend.Errorf(cmdmend.EINTERNAL, "failed to create embedder: %v", err)
	}
	return &Embedder{emb: emb, model: c.EmbeddingModel}, nil
}

// Model returns the embedding model identifier.
func (e *Embedder) Model() string {
	return e.model
}

// EmbedQuery embeds a single query string.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	v, err := e.emb.EmbedQuery(ctx, text)
	if err != nil {
		return nil, cmdmend.Errorf(cmdmend.EINTERNAL, "query embedding failed: %v", err)
	}
	return v, nil
}

// EmbedDocuments embeds a batch of passage texts.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vs, err := e.emb.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, cmdmend.Errorf(cmdmend.EINTERNAL, "document embedding failed: %v", err)
	}
	return vs, nil
}
