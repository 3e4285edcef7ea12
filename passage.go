package cmdmend

import "context"

// Passage represents a contiguous excerpt of a doc, optimized for
// embedding and retrieval. Ordinal records the passage's position in
// the original document and breaks retrieval-score ties.
type Passage struct {
	ID        string    `json:"id"`
	DocID     string    `json:"docId"`
	Tool      string    `json:"tool"` // Denormalized for efficient filtering
	Source    SourceTag `json:"source"`
	Ordinal   int       `json:"ordinal"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the passage contains invalid fields.
func (p *Passage) Validate() error {
	if p.DocID == "" {
		return Errorf(EINVALID, "passage doc ID required")
	}
	if p.Tool == "" {
		return Errorf(EINVALID, "passage tool required")
	}
	if p.Content == "" {
		return Errorf(EINVALID, "passage content required")
	}
	return nil
}

// PassageService represents a service for managing cached passages.
type PassageService interface {
	// CreatePassages stores passages in a batch.
	CreatePassages(ctx context.Context, passages []*Passage) error

	// FindPassagesByDoc retrieves all passages for a doc, ordered by
	// ordinal.
	FindPassagesByDoc(ctx context.Context, docID string) ([]*Passage, error)

	// FindPassagesByTool retrieves all passages for a tool across
	// sources, ordered by source then ordinal.
	FindPassagesByTool(ctx context.Context, tool string) ([]*Passage, error)
}

// SearchResult represents a retrieval match.
type SearchResult struct {
	Passage *Passage `json:"passage"`
	Score   float32  `json:"score"`
}

// Retriever ranks cached passages for a tool by semantic similarity
// to a query.
type Retriever interface {
	// Retrieve returns up to k passages ordered by descending score,
	// ties broken by ascending ordinal. Returns an empty result, not
	// an error, when no passages are cached for the tool.
	Retrieve(ctx context.Context, tool, query string, k int) ([]SearchResult, error)
}
