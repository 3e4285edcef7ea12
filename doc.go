package cmdmend

import (
	"context"
	"time"
)

// SourceTag identifies the provenance of a piece of documentation.
type SourceTag string

// Known documentation sources, in resolution priority order.
const (
	SourceMan   SourceTag = "man"
	SourceTldr  SourceTag = "tldr"
	SourceCheat SourceTag = "cheat"
)

// Doc represents fetched documentation for a single CLI tool from a
// single source. Content is immutable once fetched; staleness is
// detected via ContentHash.
type Doc struct {
	ID             string    `json:"id"`
	Tool           string    `json:"tool"`
	Source         SourceTag `json:"source"`
	Content        string    `json:"content"`
	ContentHash    string    `json:"contentHash"`
	EmbeddingModel string    `json:"embeddingModel"`
	FetchedAt      time.Time `json:"fetchedAt"`
}

// Validate returns an error if the doc contains invalid fields.
func (d *Doc) Validate() error {
	if d.Tool == "" {
		return Errorf(EINVALID, "doc tool required")
	}
	if d.Source == "" {
		return Errorf(EINVALID, "doc source required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "doc content required")
	}
	return nil
}

// Source fetches raw documentation text for a named CLI tool.
// Implementations hide where the text comes from (system man pages,
// HTTP quick-reference services, community cheat sheets).
type Source interface {
	// Tag returns the provenance tag recorded on fetched documentation.
	Tag() SourceTag

	// Fetch returns raw documentation text for the tool. Returns
	// ENOTFOUND if the source has no documentation for the tool and
	// EUNAVAILABLE if the source itself cannot be reached.
	Fetch(ctx context.Context, tool string) (string, error)
}

// DocService represents a service for managing cached documentation.
type DocService interface {
	// CreateDoc stores a doc, replacing any existing doc for the same
	// (tool, source) pair.
	CreateDoc(ctx context.Context, doc *Doc) error

	// FindDoc retrieves the cached doc for a (tool, source) pair.
	// Returns ENOTFOUND if no doc is cached.
	FindDoc(ctx context.Context, tool string, source SourceTag) (*Doc, error)

	// FindDocsByTool retrieves all cached docs for a tool.
	FindDocsByTool(ctx context.Context, tool string) ([]*Doc, error)

	// DeleteDoc permanently removes a doc and its passages.
	// Returns ENOTFOUND if the doc does not exist.
	DeleteDoc(ctx context.Context, id string) error
}
