// Package notes holds the reviewer's free-form notes and renders their preview.
package notes

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Default is the notes text of a fresh session.
const Default = "# 審查筆記\n\n在這裡記錄您的審查筆記。支援 Markdown 格式。\n\n使用 HTML 標籤改變文字顏色，例如：<span style='color:red'>紅色文字</span>"

// FollowUpHeading precedes generated follow-up questions appended to the notes.
const FollowUpHeading = "\n\n## 20 Follow-up Questions\n"

// Renderer turns notes text into sanitized HTML.
type Renderer struct {
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer whose policy keeps colored spans.
func NewRenderer() *Renderer {
	p := bluemonday.UGCPolicy()
	p.AllowElements("span")
	p.AllowStyles("color").OnElements("span")
	return &Renderer{policy: p}
}

// Preview renders notes line by line. "# " and "## " become headings and
// "- " a list item, all with escaped text. Any other line becomes a
// paragraph whose inline HTML is kept after sanitizing.
func (r *Renderer) Preview(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "# "):
			b.WriteString("<h1>" + html.EscapeString(strings.TrimPrefix(line, "# ")) + "</h1>\n")
		case strings.HasPrefix(line, "## "):
			b.WriteString("<h2>" + html.EscapeString(strings.TrimPrefix(line, "## ")) + "</h2>\n")
		case strings.HasPrefix(line, "- "):
			b.WriteString("<li>" + html.EscapeString(strings.TrimPrefix(line, "- ")) + "</li>\n")
		default:
			b.WriteString("<p>" + line + "</p>\n")
		}
	}
	return r.policy.Sanitize(b.String())
}

// AppendFollowUp appends generated questions under their heading.
func AppendFollowUp(notes, questions string) string {
	return notes + FollowUpHeading + questions
}
