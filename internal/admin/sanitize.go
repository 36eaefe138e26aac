package admin

import (
	"github.com/microcosm-cc/bluemonday"
)

// htmlPolicy is applied to every notice body before it may be rendered.
// Notice content is author-supplied HTML, so executable markup is stripped
// while ordinary formatting survives.
var htmlPolicy = bluemonday.UGCPolicy()

func SanitizeHTML(html string) string {
	return htmlPolicy.Sanitize(html)
}
