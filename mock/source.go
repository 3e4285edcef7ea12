package mock

import (
	"context"

	"github.com/fwojciec/cmdmend"
)

var _ cmdmend.Source = (*Source)(nil)

// Source is a mock implementation of cmdmend.Source.
type Source struct {
	TagFn   func() cmdmend.SourceTag
	FetchFn func(ctx context.Context, tool string) (string, error)
}

func (s *Source) Tag() cmdmend.SourceTag {
	if s.TagFn == nil {
		return cmdmend.SourceMan
	}
	return s.TagFn()
}

func (s *Source) Fetch(ctx context.Context, tool string) (string, error) {
	return s.FetchFn(ctx, tool)
}
