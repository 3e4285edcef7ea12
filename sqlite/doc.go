package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/cmdmend"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cmdmend.DocService = (*DocService)(nil)

// DocService implements cmdmend.DocService using SQLite.
type DocService struct {
	db *DB
}

// NewDocService creates a new DocService.
func NewDocService(db *DB) *DocService {
	return &DocService{db: db}
}

// CreateDoc stores a doc, replacing any existing doc for the same
// (tool, source) pair. Replacement cascades to the old doc's passages.
func (s *DocService) CreateDoc(ctx context.Context, doc *cmdmend.Doc) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.FetchedAt = time.Now().UTC()
	doc.ContentHash = cmdmend.HashContent(doc.Content)

	// Delete first so ON DELETE CASCADE clears stale passages; an
	// INSERT OR REPLACE would leave them orphaned.
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM docs WHERE tool = ? AND source = ?
	`, doc.Tool, string(doc.Source)); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO docs (id, tool, source, content, content_hash, embedding_model, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Tool, string(doc.Source), doc.Content, doc.ContentHash,
		doc.EmbeddingModel, doc.FetchedAt.Format(time.RFC3339))

	return err
}

// FindDoc retrieves the cached doc for a (tool, source) pair.
func (s *DocService) FindDoc(ctx context.Context, tool string, source cmdmend.SourceTag) (*cmdmend.Doc, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, tool, source, content, content_hash, embedding_model, fetched_at
		FROM docs
		WHERE tool = ? AND source = ?
	`, tool, string(source))

	doc, err := scanDoc(row)
	if err == sql.ErrNoRows {
		return nil, cmdmend.Errorf(cmdmend.ENOTFOUND, "no cached doc for %s/%s", tool, source)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocsByTool retrieves all cached docs for a tool.
func (s *DocService) FindDocsByTool(ctx context.Context, tool string) ([]*cmdmend.Doc, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tool, source, content, content_hash, embedding_model, fetched_at
		FROM docs
		WHERE tool = ?
		ORDER BY source ASC
	`, tool)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*cmdmend.Doc
	for rows.Next() {
		doc, err := scanDoc(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDoc permanently removes a doc; passages cascade.
func (s *DocService) DeleteDoc(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM docs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return cmdmend.Errorf(cmdmend.ENOTFOUND, "doc not found")
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanDoc(sc scanner) (*cmdmend.Doc, error) {
	var doc cmdmend.Doc
	var source, fetchedAt string

	if err := sc.Scan(&doc.ID, &doc.Tool, &source, &doc.Content,
		&doc.ContentHash, &doc.EmbeddingModel, &fetchedAt); err != nil {
		return nil, err
	}

	doc.Source = cmdmend.SourceTag(source)

	var err error
	doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
