package admin

import (
	"bytes"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// Editor is the capability set any rich-text surface must provide. The edit
// session is written once against it, so swapping surfaces never duplicates
// the surrounding form logic.
type Editor interface {
	Content() string
	SetContent(html string)
	Clear()
	OnChange(fn func(content string))
}

// HTMLEditor edits the notice body as raw HTML.
type HTMLEditor struct {
	html      string
	listeners []func(string)
}

func NewHTMLEditor() *HTMLEditor {
	return &HTMLEditor{}
}

func (e *HTMLEditor) Content() string {
	return e.html
}

func (e *HTMLEditor) SetContent(html string) {
	e.html = html
	e.notify()
}

func (e *HTMLEditor) Clear() {
	e.SetContent("")
}

func (e *HTMLEditor) OnChange(fn func(content string)) {
	e.listeners = append(e.listeners, fn)
}

func (e *HTMLEditor) notify() {
	for _, fn := range e.listeners {
		fn(e.html)
	}
}

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// MarkdownEditor edits the notice body as markdown and renders it to HTML on
// read. SetContent preloads already-stored HTML verbatim; the preload is
// replaced as soon as markdown source is supplied.
type MarkdownEditor struct {
	source    string
	preloaded string
	listeners []func(string)
}

func NewMarkdownEditor() *MarkdownEditor {
	return &MarkdownEditor{}
}

func (e *MarkdownEditor) Content() string {
	if e.source == "" {
		return e.preloaded
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(e.source), &buf); err != nil {
		return e.preloaded
	}

	return buf.String()
}

// SetMarkdown replaces the markdown source, taking over from any preloaded
// HTML.
func (e *MarkdownEditor) SetMarkdown(source string) {
	e.source = source
	e.notify()
}

func (e *MarkdownEditor) SetContent(html string) {
	e.preloaded = html
	e.source = ""
	e.notify()
}

func (e *MarkdownEditor) Clear() {
	e.source = ""
	e.preloaded = ""
	e.notify()
}

func (e *MarkdownEditor) OnChange(fn func(content string)) {
	e.listeners = append(e.listeners, fn)
}

func (e *MarkdownEditor) notify() {
	content := e.Content()
	for _, fn := range e.listeners {
		fn(content)
	}
}
