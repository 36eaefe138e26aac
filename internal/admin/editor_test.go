package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLEditor(t *testing.T) {
	e := NewHTMLEditor()

	var changes []string
	e.OnChange(func(content string) {
		changes = append(changes, content)
	})

	e.SetContent("<p>hello</p>")
	assert.Equal(t, "<p>hello</p>", e.Content())

	e.Clear()
	assert.Equal(t, "", e.Content())

	assert.Equal(t, []string{"<p>hello</p>", ""}, changes)
}

func TestMarkdownEditor(t *testing.T) {
	t.Run("RendersMarkdown", func(t *testing.T) {
		e := NewMarkdownEditor()
		e.SetMarkdown("# Maintenance\n\nSee **details** below.")

		html := e.Content()
		assert.Contains(t, html, "<h1>Maintenance</h1>")
		assert.Contains(t, html, "<strong>details</strong>")
	})

	t.Run("RawHTMLNotPassedThrough", func(t *testing.T) {
		e := NewMarkdownEditor()
		e.SetMarkdown("before\n\n<script>alert(1)</script>\n\nafter")

		html := e.Content()
		assert.NotContains(t, html, "<script>")
	})

	t.Run("PreloadedHTMLServedVerbatim", func(t *testing.T) {
		e := NewMarkdownEditor()
		e.SetContent("<p>stored body</p>")

		assert.Equal(t, "<p>stored body</p>", e.Content())
	})

	t.Run("MarkdownReplacesPreload", func(t *testing.T) {
		e := NewMarkdownEditor()
		e.SetContent("<p>stored body</p>")
		e.SetMarkdown("fresh text")

		html := e.Content()
		assert.NotContains(t, html, "stored body")
		assert.Contains(t, html, "fresh text")
	})

	t.Run("ClearDropsBothForms", func(t *testing.T) {
		e := NewMarkdownEditor()
		e.SetContent("<p>stored body</p>")
		e.SetMarkdown("fresh text")
		e.Clear()

		assert.Equal(t, "", e.Content())
	})

	t.Run("OnChangeReceivesRenderedHTML", func(t *testing.T) {
		e := NewMarkdownEditor()

		var last string
		e.OnChange(func(content string) {
			last = content
		})

		e.SetMarkdown("plain text")
		assert.Contains(t, last, "<p>plain text</p>")
	})
}

func TestEditorsSatisfyInterface(t *testing.T) {
	var _ Editor = NewHTMLEditor()
	var _ Editor = NewMarkdownEditor()
}
