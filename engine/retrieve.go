package engine

import (
	"context"
	"sort"

	"github.com/fwojciec/cmdmend"
)

// Retrieve embeds the query and ranks the tool's cached passages by
// cosine similarity, returning at most k results ordered by descending
// score with ties broken by ascending ordinal. When no passages are
// cached the result is empty, not an error.
func (e *Engine) Retrieve(ctx context.Context, tool, query string, k int) ([]cmdmend.SearchResult, error) {
	if k <= 0 {
		k = e.topK()
	}

	passages, err := e.Passages.FindPassagesByTool(ctx, tool)
	if err != nil {
		return nil, err
	}
	if len(passages) == 0 {
		return []cmdmend.SearchResult{}, nil
	}

	qv, err := e.Embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	results := make([]cmdmend.SearchResult, 0, len(passages))
	for _, p := range passages {
		results = append(results, cmdmend.SearchResult{
			Passage: p,
			Score:   cmdmend.CosineSimilarity(qv, p.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Passage.Ordinal < results[j].Passage.Ordinal
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}
