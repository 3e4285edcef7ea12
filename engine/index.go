package engine

import (
	"context"

	"github.com/fwojciec/cmdmend"
	"golang.org/x/sync/errgroup"
)

// embedBatchSize bounds the number of passages embedded per request.
const embedBatchSize = 16

// Index splits a doc into passages and embeds them, caching the
// result keyed by (tool, source). Indexing is idempotent: when the
// cache already holds the same content hash embedded with the same
// model, the cached passages are returned without touching the
// embedding engine. A hash or model mismatch invalidates the stale
// entry and rebuilds it.
func (e *Engine) Index(ctx context.Context, doc *cmdmend.Doc) ([]*cmdmend.Passage, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	hash := cmdmend.HashContent(doc.Content)
	model := e.Embedder.Model()

	cached, err := e.Docs.FindDoc(ctx, doc.Tool, doc.Source)
	if err == nil {
		if cached.ContentHash == hash && cached.EmbeddingModel == model {
			return e.Passages.FindPassagesByDoc(ctx, cached.ID)
		}
		// Stale content or embedding-space mismatch: rebuild.
		e.logger().Debug("invalidating stale cache entry",
			"tool", doc.Tool,
			"source", string(doc.Source),
		)
		if err := e.Docs.DeleteDoc(ctx, cached.ID); err != nil {
			return nil, err
		}
	} else if cmdmend.ErrorCode(err) != cmdmend.ENOTFOUND {
		return nil, err
	}

	texts := cmdmend.SplitPassages(doc.Content, e.MaxPassageLen)
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings, err := e.embedAll(ctx, texts)
	if err != nil {
		return nil, err
	}

	doc.EmbeddingModel = model
	if err := e.Docs.CreateDoc(ctx, doc); err != nil {
		return nil, err
	}

	passages := make([]*cmdmend.Passage, len(texts))
	for i, text := range texts {
		passages[i] = &cmdmend.Passage{
			DocID:     doc.ID,
			Tool:      doc.Tool,
			Source:    doc.Source,
			Ordinal:   i,
			Content:   text,
			Embedding: embeddings[i],
		}
	}
	if err := e.Passages.CreatePassages(ctx, passages); err != nil {
		return nil, err
	}

	return passages, nil
}

// embedAll embeds texts in bounded batches, fanning out with an
// errgroup. Results keep input order.
func (e *Engine) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	concurrency := e.EmbedConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	g.SetLimit(concurrency)

	for start := 0; start < len(texts); start += embedBatchSize {
		end := min(start+embedBatchSize, len(texts))
		g.Go(func() error {
			vs, err := e.Embedder.EmbedDocuments(ctx, texts[start:end])
			if err != nil {
				return err
			}
			if len(vs) != end-start {
				return cmdmend.Errorf(cmdmend.EINTERNAL,
					"embedder returned %d vectors for %d texts", len(vs), end-start)
			}
			copy(embeddings[start:end], vs)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return embeddings, nil
}
