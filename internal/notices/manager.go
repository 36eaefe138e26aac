package notices

import (
	"context"
	"fmt"
	"strings"
)

type Manager struct {
	store  Store
	author string
}

// NewNoticeManager wraps a store with validation and the server-assigned
// author policy. The author is attached to every created notice and never
// changed afterwards.
func NewNoticeManager(store Store, author string) *Manager {
	return &Manager{
		store:  store,
		author: author,
	}
}

func (m *Manager) NoticesByFilter(ctx context.Context, filter SearchFilter) ([]Notice, error) {
	list, err := m.store.Notices(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("store get notices: %w", err)
	}

	return list, nil
}

func (m *Manager) NoticeByID(ctx context.Context, noticeID int) (*Notice, error) {
	n, err := m.store.NoticeByID(ctx, noticeID)
	if err != nil {
		return nil, fmt.Errorf("store get notice by id: %w", err)
	}

	return n, nil
}

func (m *Manager) Create(ctx context.Context, title, content string, isExposed bool) (*Notice, error) {
	if err := validate(title, content); err != nil {
		return nil, err
	}

	n, err := m.store.CreateNotice(ctx, &Notice{
		Title:     title,
		Content:   content,
		Author:    m.author,
		IsExposed: isExposed,
	})
	if err != nil {
		return nil, fmt.Errorf("store create notice: %w", err)
	}

	return n, nil
}

func (m *Manager) Update(ctx context.Context, noticeID int, title, content string, isExposed bool) (*Notice, error) {
	if err := validate(title, content); err != nil {
		return nil, err
	}

	n, err := m.store.UpdateNotice(ctx, noticeID, title, content, isExposed)
	if err != nil {
		return nil, fmt.Errorf("store update notice: %w", err)
	}

	return n, nil
}

func validate(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content"}
	}
	return nil
}
