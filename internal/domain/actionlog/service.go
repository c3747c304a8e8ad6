package actionlog

import (
	"context"
	"time"
)

// Service reads group history. Callers must already have checked that the
// user may view the group; entries are written by the group and item
// repositories inside their own transactions.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListSince returns entries strictly newer than since, oldest first.
// A zero since returns the whole history.
func (s *Service) ListSince(ctx context.Context, groupID string, since time.Time) ([]Entry, error) {
	return s.repo.ListSince(ctx, groupID, since)
}

func (s *Service) Get(ctx context.Context, groupID, entryID string) (*Entry, error) {
	return s.repo.Get(ctx, groupID, entryID)
}
