package sqlite

import (
	"context"

	"github.com/fwojciec/cmdmend"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cmdmend.PassageService = (*PassageService)(nil)

// PassageService implements cmdmend.PassageService using SQLite.
type PassageService struct {
	db *DB
}

// NewPassageService creates a new PassageService.
func NewPassageService(db *DB) *PassageService {
	return &PassageService{db: db}
}

// CreatePassages stores passages in a batch.
func (s *PassageService) CreatePassages(ctx context.Context, passages []*cmdmend.Passage) error {
	for _, p := range passages {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	for _, p := range passages {
		p.ID = uuid.New().String()
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO passages (id, doc_id, tool, source, ordinal, content, embedding)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.DocID, p.Tool, string(p.Source), p.Ordinal, p.Content,
			encodeEmbedding(p.Embedding)); err != nil {
			return err
		}
	}
	return nil
}

// FindPassagesByDoc retrieves all passages for a doc, ordered by ordinal.
func (s *PassageService) FindPassagesByDoc(ctx context.Context, docID string) ([]*cmdmend.Passage, error) {
	return s.findPassages(ctx, `
		SELECT id, doc_id, tool, source, ordinal, content, embedding
		FROM passages
		WHERE doc_id = ?
		ORDER BY ordinal ASC
	`, docID)
}

// FindPassagesByTool retrieves all passages for a tool across sources.
func (s *PassageService) FindPassagesByTool(ctx context.Context, tool string) ([]*cmdmend.Passage, error) {
	return s.findPassages(ctx, `
		SELECT id, doc_id, tool, source, ordinal, content, embedding
		FROM passages
		WHERE tool = ?
		ORDER BY source ASC, ordinal ASC
	`, tool)
}

func (s *PassageService) findPassages(ctx context.Context, query string, args ...any) ([]*cmdmend.Passage, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passages []*cmdmend.Passage
	for rows.Next() {
		var p cmdmend.Passage
		var source string
		var blob []byte

		if err := rows.Scan(&p.ID, &p.DocID, &p.Tool, &source, &p.Ordinal,
			&p.Content, &blob); err != nil {
			return nil, err
		}

		p.Source = cmdmend.SourceTag(source)
		p.Embedding, err = decodeEmbedding(blob)
		if err != nil {
			return nil, err
		}

		passages = append(passages, &p)
	}
	return passages, rows.Err()
}
