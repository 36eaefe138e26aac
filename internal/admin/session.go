package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"noticeadmin/internal/client"
	"noticeadmin/internal/notices"
	"noticeadmin/internal/query"
)

type SessionState int

const (
	// StateNew is an empty form with no notice id; submit creates.
	StateNew SessionState = iota
	// StateLoading means the existing notice is still being fetched.
	StateLoading
	// StateEditing is a pre-populated form; submit updates.
	StateEditing
	// StateSubmitting means a create/update is in flight.
	StateSubmitting
)

type FlashKind int

const (
	FlashSuccess FlashKind = iota
	FlashError
)

// Flash is a transient message shown next to the form.
type Flash struct {
	Kind FlashKind
	Text string
}

const (
	flashDuration = 3 * time.Second
	returnDelay   = 1500 * time.Millisecond
)

var (
	// ErrSubmitInFlight suppresses duplicate submissions.
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrLoadInFlight rejects a submit while the notice is still loading.
	ErrLoadInFlight = errors.New("notice load still in flight")
)

// Session is the edit-screen state machine, written once against the Editor
// capability set so every rich-text surface shares the same form handling.
type Session struct {
	mu       sync.Mutex
	backend  Backend
	cache    *query.Cache
	editor   Editor
	onReturn func()
	after    func(d time.Duration, fn func())

	noticeID   int
	title      string
	isExposed  bool
	state      SessionState
	loadErr    error
	flash      *Flash
	flashToken int
}

// NewSession builds an editing session. onReturn is invoked after a
// successful update, once the success message has been shown; it may be nil.
func NewSession(backend Backend, cache *query.Cache, editor Editor, onReturn func()) *Session {
	return &Session{
		backend:  backend,
		cache:    cache,
		editor:   editor,
		onReturn: onReturn,
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

func (s *Session) Editor() Editor { return s.editor }

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) NoticeID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.noticeID
}

func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

func (s *Session) Exposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isExposed
}

func (s *Session) Flash() *Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flash
}

func (s *Session) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}

func (s *Session) SetExposed(exposed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isExposed = exposed
}

// Load fetches an existing notice and pre-populates the form. The fetch goes
// through the cache, so concurrent loads of the same notice share one
// request; on failure the key is invalidated so a retry refetches.
func (s *Session) Load(ctx context.Context, id int) error {
	s.mu.Lock()
	s.noticeID = id
	s.state = StateLoading
	s.loadErr = nil
	s.mu.Unlock()

	key := query.Key("notice", id)
	v, err := s.cache.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return s.backend.Get(ctx, id)
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.cache.Invalidate(key)
		s.loadErr = err
		return fmt.Errorf("load notice %d: %w", id, err)
	}

	n := v.(*notices.Notice)
	s.title = n.Title
	s.isExposed = n.IsExposed
	s.editor.SetContent(n.Content)
	s.state = StateEditing

	return nil
}

// Submit validates the form and performs the create or update. Validation
// failures never reach the network; duplicate submissions are suppressed
// while one is in flight. On success the notice list cache is invalidated,
// and the flow-specific feedback runs: create resets the form and shows a
// success message for 3s, update shows the message and returns to the list
// after 1.5s. On failure the form is left untouched so the user can retry
// immediately.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()

	switch s.state {
	case StateSubmitting:
		s.mu.Unlock()
		return ErrSubmitInFlight
	case StateLoading:
		s.mu.Unlock()
		return ErrLoadInFlight
	}

	title := s.title
	content := s.editor.Content()

	if strings.TrimSpace(title) == "" {
		s.flashLocked(FlashError, "title is required")
		s.mu.Unlock()
		return &notices.ValidationError{Field: "title"}
	}
	if strings.TrimSpace(content) == "" {
		s.flashLocked(FlashError, "content is required")
		s.mu.Unlock()
		return &notices.ValidationError{Field: "content"}
	}

	prev := s.state
	s.state = StateSubmitting
	id := s.noticeID
	isExposed := s.isExposed
	s.mu.Unlock()

	var err error
	if id == 0 {
		_, err = s.cache.Mutate(ctx, "notices", func(ctx context.Context) (any, error) {
			return s.backend.Create(ctx, client.CreateRequest{
				Title:     title,
				Content:   content,
				IsExposed: isExposed,
			})
		})
	} else {
		_, err = s.cache.Mutate(ctx, "notices/"+strconv.Itoa(id), func(ctx context.Context) (any, error) {
			return s.backend.Update(ctx, id, client.UpdateRequest{
				Title:     title,
				Content:   content,
				IsExposed: isExposed,
			})
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = prev
		s.flashLocked(FlashError, "failed to save notice")
		return fmt.Errorf("save notice: %w", err)
	}

	s.cache.Invalidate("notices")

	if id == 0 {
		s.title = ""
		s.isExposed = false
		s.editor.Clear()
		s.state = StateNew
		s.flashLocked(FlashSuccess, "notice created")
		return nil
	}

	s.cache.Invalidate(query.Key("notice", id))
	s.state = StateEditing
	s.flashLocked(FlashSuccess, "notice updated")
	if s.onReturn != nil {
		s.after(returnDelay, s.onReturn)
	}

	return nil
}

func (s *Session) flashLocked(kind FlashKind, text string) {
	s.flash = &Flash{Kind: kind, Text: text}
	s.flashToken++
	token := s.flashToken

	s.after(flashDuration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.flashToken == token {
			s.flash = nil
		}
	})
}
