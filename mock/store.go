package mock

import (
	"context"

	"github.com/fwojciec/cmdmend"
)

var _ cmdmend.DocService = (*DocService)(nil)

// DocService is a mock implementation of cmdmend.DocService.
type DocService struct {
	CreateDocFn      func(ctx context.Context, doc *cmdmend.Doc) error
	FindDocFn        func(ctx context.Context, tool string, source cmdmend.SourceTag) (*cmdmend.Doc, error)
	FindDocsByToolFn func(ctx context.Context, tool string) ([]*cmdmend.Doc, error)
	DeleteDocFn      func(ctx context.Context, id string) error
}

func (s *DocService) CreateDoc(ctx context.Context, doc *cmdmend.Doc) error {
	return s.CreateDocFn(ctx, doc)
}

func (s *DocService) FindDoc(ctx context.Context, tool string, source cmdmend.SourceTag) (*cmdmend.Doc, error) {
	return s.FindDocFn(ctx, tool, source)
}

func (s *DocService) FindDocsByTool(ctx context.Context, tool string) ([]*cmdmend.Doc, error) {
	return s.FindDocsByToolFn(ctx, tool)
}

func (s *DocService) DeleteDoc(ctx context.Context, id string) error {
	return s.DeleteDocFn(ctx, id)
}

var _ cmdmend.PassageService = (*PassageService)(nil)

// PassageService is a mock implementation of cmdmend.PassageService.
type PassageService struct {
	CreatePassagesFn     func(ctx context.Context, passages []*cmdmend.Passage) error
	FindPassagesByDocFn  func(ctx context.Context, docID string) ([]*cmdmend.Passage, error)
	FindPassagesByToolFn func(ctx context.Context, tool string) ([]*cmdmend.Passage, error)
}

func (s *PassageService) CreatePassages(ctx context.Context, passages []*cmdmend.Passage) error {
	return s.CreatePassagesFn(ctx, passages)
}

func (s *PassageService) FindPassagesByDoc(ctx context.Context, docID string) ([]*cmdmend.Passage, error) {
	return s.FindPassagesByDocFn(ctx, docID)
}

func (s *PassageService) FindPassagesByTool(ctx context.Context, tool string) ([]*cmdmend.Passage, error) {
	return s.FindPassagesByToolFn(ctx, tool)
}
