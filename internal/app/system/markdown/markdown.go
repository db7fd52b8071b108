// Package markdown renders content bodies and program descriptions.
//
// Output is always passed through htmlsanitize; raw HTML in the source is
// dropped by the renderer before that.
package markdown

import (
	"bytes"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/osishub/osishub/internal/app/system/htmlsanitize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// ToHTML renders src and returns sanitized HTML. On a render error the
// source is shown as escaped plain text.
func ToHTML(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(htmlsanitize.PlainTextToHTML(src))
	}
	return htmlsanitize.SanitizeToHTML(buf.String())
}

// Excerpt returns up to max runes of the rendered text, without markup,
// with whitespace collapsed. A cut excerpt ends in "…".
func Excerpt(src string, max int) string {
	text := strings.Join(strings.Fields(htmlsanitize.StripTags(string(ToHTML(src)))), " ")
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	r := []rune(text)
	return strings.TrimSpace(string(r[:max])) + "…"
}
