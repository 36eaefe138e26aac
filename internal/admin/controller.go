package admin

import (
	"context"
	"sync"

	"noticeadmin/internal/query"
)

type View int

const (
	ViewList View = iota
	ViewEditor
)

// Controller owns the admin screen: either the notice list or one editing
// session is active, never both. The editor surface is chosen through
// newEditor, so the HTML and markdown editors are interchangeable.
type Controller struct {
	mu        sync.Mutex
	backend   Backend
	cache     *query.Cache
	newEditor func() Editor

	view    View
	list    *ListView
	session *Session
}

func NewController(backend Backend, cache *query.Cache, newEditor func() Editor) *Controller {
	return &Controller{
		backend:   backend,
		cache:     cache,
		newEditor: newEditor,
		list:      NewListView(backend, cache),
	}
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Controller) List() *ListView {
	return c.list
}

// Session returns the active editing session, or nil while the list is
// shown.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// ComposeNotice switches to an empty editor for creating a notice.
func (c *Controller) ComposeNotice() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session = NewSession(c.backend, c.cache, c.newEditor(), c.ShowList)
	c.view = ViewEditor
	return c.session
}

// EditNotice switches to the editor preloaded with the given notice. The
// view switches before the load settles so the loading state is visible; a
// load failure keeps the editor open with its error exposed.
func (c *Controller) EditNotice(ctx context.Context, id int) (*Session, error) {
	c.mu.Lock()
	session := NewSession(c.backend, c.cache, c.newEditor(), c.ShowList)
	c.session = session
	c.view = ViewEditor
	c.mu.Unlock()

	if err := session.Load(ctx, id); err != nil {
		return session, err
	}

	return session, nil
}

// ShowList returns to the list view and drops the editing session.
func (c *Controller) ShowList() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	c.view = ViewList
}
