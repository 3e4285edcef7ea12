// Package gocache provides TTL-bounded in-memory caching decorators
// for cmdmend interfaces.
package gocache

import (
	"context"
	"time"

	"github.com/fwojciec/cmdmend"
	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL bounds how long memoized embeddings live. The on-disk
// passage cache is the durable layer; this one only spares the
// embedding model repeated work within a server session.
const DefaultTTL = 30 * time.Minute

// Ensure Embedder implements cmdmend.Embedder at compile time.
var _ cmdmend.Embedder = (*Embedder)(nil)

// Embedder memoizes embeddings in memory, keyed by content hash and
// model, so repeated queries within a session skip the embedding
// engine.
type Embedder struct {
	next  cmdmend.Embedder
	cache *gocache.Cache
}

// NewEmbedder creates a caching decorator around next with the given
// TTL. A non-positive ttl falls back to DefaultTTL.
func NewEmbedder(next cmdmend.Embedder, ttl time.Duration) *Embedder {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Embedder{
		next:  next,
		cache: gocache.New(ttl, ttl),
	}
}

// Model returns the wrapped embedder's model identifier.
func (e *Embedder) Model() string {
	return e.next.Model()
}

func (e *Embedder) key(text string) string {
	return e.next.Model() + ":" + cmdmend.HashContent(text)
}

// EmbedQuery embeds a single query string, serving repeats from memory.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if v, ok := e.cache.Get(e.key(text)); ok {
		return v.([]float32), nil
	}
	v, err := e.next.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}
	e.cache.Set(e.key(text), v, gocache.DefaultExpiration)
	return v, nil
}

// EmbedDocuments embeds a batch, forwarding only cache misses.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int

	for i, text := range texts {
		if v, ok := e.cache.Get(e.key(text)); ok {
			out[i] = v.([]float32)
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) > 0 {
		vs, err := e.next.EmbedDocuments(ctx, missing)
		if err != nil {
			return nil, err
		}
		if len(vs) != len(missing) {
			return nil, cmdmend.Errorf(cmdmend.EINTERNAL,
				"embedder returned %d vectors for %d texts", len(vs), len(missing))
		}
		for j, v := range vs {
			out[missingIdx[j]] = v
			e.cache.Set(e.key(missing[j]), v, gocache.DefaultExpiration)
		}
	}

	return out, nil
}
