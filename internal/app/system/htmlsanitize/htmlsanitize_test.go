package htmlsanitize_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/osishub/osishub/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_Preserved(t *testing.T) {
	tests := []string{
		"Hello, World!",
		"<p><strong>Bold</strong> and <em>italic</em></p>",
		"<ul><li>Item 1</li><li>Item 2</li></ul>",
		"<ol><li>First</li><li>Second</li></ol>",
		"<blockquote>A quote</blockquote>",
		"<h1>Heading 1</h1><h2>Heading 2</h2>",
		"<pre><code>func main() {}</code></pre>",
		"<table><thead><tr><th>Header</th></tr></thead><tbody><tr><td>Cell</td></tr></tbody></table>",
	}
	for _, in := range tests {
		if got := htmlsanitize.Sanitize(in); got != in {
			t.Errorf("Sanitize(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	got := htmlsanitize.Sanitize("<p>Hello</p><script>alert('xss')</script>")
	if got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesDangerousAttributes(t *testing.T) {
	tests := []string{
		`<button onclick="alert('xss')">Click</button>`,
		`<a href="javascript:alert('xss')">Click</a>`,
		`<p>Content</p><iframe src="https://evil.com"></iframe>`,
		`<style>body { color: red; }</style><p>Text</p>`,
	}
	for _, in := range tests {
		got := htmlsanitize.Sanitize(in)
		for _, bad := range []string{"onclick", "javascript:", "<iframe", "<style"} {
			if strings.Contains(got, bad) {
				t.Errorf("Sanitize(%q) = %q still contains %q", in, got, bad)
			}
		}
	}
}

func TestSanitize_ExternalLinksOpenInNewTab(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="https://example.com">Link</a>`)
	if !strings.Contains(got, `href="https://example.com"`) {
		t.Errorf("expected link preserved, got %q", got)
	}
	if !strings.Contains(got, `target="_blank"`) || !strings.Contains(got, "nofollow") {
		t.Errorf("expected target and rel on external link, got %q", got)
	}
}

func TestSanitize_ClassOnTables(t *testing.T) {
	got := htmlsanitize.Sanitize(`<table class="tbl"><tr><td class="x" onclick="y()">Cell</td></tr></table>`)
	if !strings.Contains(got, `class="tbl"`) || !strings.Contains(got, `class="x"`) {
		t.Errorf("expected class attributes preserved, got %q", got)
	}
	if strings.Contains(got, "onclick") {
		t.Errorf("expected onclick removed, got %q", got)
	}
}

func TestSanitizeToHTML(t *testing.T) {
	got := htmlsanitize.SanitizeToHTML("<p>Hello</p><script>x</script>")
	if got != template.HTML("<p>Hello</p>") {
		t.Errorf("got %q", got)
	}
}

func TestStripTags(t *testing.T) {
	got := htmlsanitize.StripTags("<p>Rapat &amp; <strong>evaluasi</strong></p>")
	if got != "Rapat & evaluasi" {
		t.Errorf("StripTags = %q", got)
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"Hello", true},
		{"5 < 10", true},
		{"5 > 3", true},
		{"<p>Hello</p>", false},
	}
	for _, tc := range tests {
		if got := htmlsanitize.IsPlainText(tc.in); got != tc.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPlainTextToHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Hello, World!", "<p>Hello, World!</p>"},
		{"Line 1\nLine 2", "<p>Line 1<br>Line 2</p>"},
		{"A & B", "<p>A &amp; B</p>"},
		{"<b>x</b>", "<p>&lt;b&gt;x&lt;/b&gt;</p>"},
	}
	for _, tc := range tests {
		if got := htmlsanitize.PlainTextToHTML(tc.in); got != tc.want {
			t.Errorf("PlainTextToHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
