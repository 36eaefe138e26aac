package db

import (
	"context"
	"sync"
	"time"

	"noticeadmin/internal/notices"
)

// MemoryStore is an in-memory notice store. It backs the demo mode and the
// tests, and keeps the same observable behavior as the Postgres repository:
// newest-first lists, ErrNotFound for absent ids, server-assigned timestamps.
// Ids come from a monotonic counter, never from the collection size, so a
// removed item can never cause a duplicate id.
type MemoryStore struct {
	mu      sync.Mutex
	notices []notices.Notice // newest first
	nextID  int
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		now:    time.Now,
	}
}

// Seed replaces the store content. The notices are kept in the given order
// and the id counter continues after the highest seeded id.
func (s *MemoryStore) Seed(list []notices.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notices = make([]notices.Notice, len(list))
	copy(s.notices, list)

	s.nextID = 1
	for _, n := range list {
		if n.ID >= s.nextID {
			s.nextID = n.ID + 1
		}
	}
}

func (s *MemoryStore) Notices(ctx context.Context, filter notices.SearchFilter) ([]notices.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]notices.Notice, 0, len(s.notices))
	for _, n := range s.notices {
		if filter.Matches(n) {
			result = append(result, n)
		}
	}

	return result, nil
}

func (s *MemoryStore) NoticeByID(ctx context.Context, noticeID int) (*notices.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notices {
		if n.ID == noticeID {
			found := n
			return &found, nil
		}
	}

	return nil, notices.ErrNotFound
}

func (s *MemoryStore) CreateNotice(ctx context.Context, n *notices.Notice) (*notices.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := notices.Notice{
		ID:        s.nextID,
		Title:     n.Title,
		Content:   n.Content,
		Author:    n.Author,
		CreatedAt: s.now().UTC(),
		IsExposed: n.IsExposed,
	}
	s.nextID++

	s.notices = append([]notices.Notice{created}, s.notices...)

	return &created, nil
}

func (s *MemoryStore) UpdateNotice(ctx context.Context, noticeID int, title, content string, isExposed bool) (*notices.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notices {
		if s.notices[i].ID != noticeID {
			continue
		}

		now := s.now().UTC()
		s.notices[i].Title = title
		s.notices[i].Content = content
		s.notices[i].IsExposed = isExposed
		s.notices[i].ModifiedAt = &now

		updated := s.notices[i]
		return &updated, nil
	}

	return nil, notices.ErrNotFound
}
