package admin

import (
	"context"
	"sync"

	"noticeadmin/internal/notices"
	"noticeadmin/internal/query"
)

type ListState int

const (
	ListLoading ListState = iota
	ListError
	ListReady
)

// RenderedNotice is a notice prepared for display. SafeContent is the
// sanitized body and is the only content a view may render.
type RenderedNotice struct {
	notices.Notice
	SafeContent string
}

// ListView reads the current filter's notice list through the cache layer.
// Loading and error states replace the list rather than overlay it; a
// refetch keeps showing the previous data until it settles.
type ListView struct {
	mu      sync.Mutex
	backend Backend
	cache   *query.Cache
	filter  notices.SearchFilter
	key     string

	onChange  func()
	cancelSub func()
}

func NewListView(backend Backend, cache *query.Cache) *ListView {
	v := &ListView{
		backend: backend,
		cache:   cache,
	}
	filter, _ := NewFilterForm().Build()
	v.applyFilterLocked(filter)
	return v
}

// Search replaces the active filter. Each distinct filter is its own cache
// key, so changing any field requests a new entry; nothing is shared across
// filters.
func (v *ListView) Search(filter notices.SearchFilter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.applyFilterLocked(filter)
}

func (v *ListView) Filter() notices.SearchFilter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// OnChange registers a callback fired whenever the active entry settles,
// including refetches triggered by invalidation.
func (v *ListView) OnChange(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onChange = fn
	v.resubscribeLocked()
}

// Snapshot returns the current view state, issuing a fetch when the entry is
// missing or stale.
func (v *ListView) Snapshot(ctx context.Context) (ListState, []RenderedNotice, error) {
	v.mu.Lock()
	key := v.key
	filter := v.filter
	v.mu.Unlock()

	snap := v.cache.Read(ctx, key, func(ctx context.Context) (any, error) {
		return v.backend.List(ctx, filter)
	})

	if snap.Err != nil {
		return ListError, nil, snap.Err
	}
	if snap.Data == nil {
		return ListLoading, nil, nil
	}

	list := snap.Data.([]notices.Notice)
	rendered := make([]RenderedNotice, len(list))
	for i, n := range list {
		rendered[i] = RenderedNotice{
			Notice:      n,
			SafeContent: SanitizeHTML(n.Content),
		}
	}

	return ListReady, rendered, nil
}

func (v *ListView) applyFilterLocked(filter notices.SearchFilter) {
	v.filter = filter
	v.key = query.Key("notices", filter)
	v.resubscribeLocked()
}

func (v *ListView) resubscribeLocked() {
	if v.cancelSub != nil {
		v.cancelSub()
		v.cancelSub = nil
	}
	if v.onChange == nil {
		return
	}

	fn := v.onChange
	v.cancelSub = v.cache.Subscribe(v.key, func() {
		fn()
	})
}

// Close drops the view's cache subscription.
func (v *ListView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancelSub != nil {
		v.cancelSub()
		v.cancelSub = nil
	}
}
