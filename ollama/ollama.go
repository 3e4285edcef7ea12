// Package ollama implements cmdmend's inference and embedding
// interfaces against a local Ollama server using langchaingo.
package ollama

import (
	"net/http"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
)

// DefaultServerURL is the standard local Ollama endpoint.
const DefaultServerURL = "http://127.0.0.1:11434/"

// Config holds connection settings shared by the completer and the
// embedder.
type Config struct {
	ServerURL      string
	ChatModel      string
	EmbeddingModel string
	HTTPClient     *http.Client
}

func (c Config) serverURL() string {
	if c.ServerURL == "" {
		return DefaultServerURL
	}
	return c.ServerURL
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return &http.Client{}
	}
	return c.HTTPClient
}

// newClient builds a langchaingo ollama client for the given model.
func newClient(c Config, model string) (*ollama.LLM, error) {
	return ollama.New(
		ollama.WithModel(model),
		ollama.WithServerURL(c.serverURL()),
		ollama.WithHTTPClient(c.httpClient()),
	)
}

// newEmbedderClient builds the langchaingo embedder for the configured
// embedding model.
func newEmbedderClient(c Config) (*embeddings.EmbedderImpl, error) {
	client, err := newClient(c, c.EmbeddingModel)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(client)
}
