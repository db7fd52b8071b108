package csvutil

import (
	"errors"
	"html/template"
	"strconv"
	"strings"
)

// ErrTooManyRows is returned when a file has more data rows than allowed.
var ErrTooManyRows = errors.New("csv has too many rows")

// RowError describes one rejected row. Line is the 1-based line in the file;
// 0 means the error is not tied to a row.
type RowError struct {
	Line   int
	Reason string
	Raw    []string
}

// FormatErrorsHTML renders up to maxShow row errors as an escaped HTML
// message. maxShow <= 0 means 5.
func FormatErrorsHTML(errs []RowError, maxShow int) template.HTML {
	if len(errs) == 0 {
		return ""
	}
	if maxShow <= 0 {
		maxShow = 5
	}
	show := maxShow
	if len(errs) < show {
		show = len(errs)
	}

	var b strings.Builder
	b.WriteString("Unggahan ditolak: ")
	b.WriteString(strconv.Itoa(len(errs)))
	b.WriteString(" baris tidak valid. Perbaiki lalu unggah ulang.<br>")
	for i := 0; i < show; i++ {
		e := errs[i]
		b.WriteString("• ")
		if e.Line > 0 {
			b.WriteString("Baris ")
			b.WriteString(strconv.Itoa(e.Line))
			b.WriteString(": ")
		}
		b.WriteString(template.HTMLEscapeString(e.Reason))
		b.WriteString("<br>")
	}
	if len(errs) > show {
		b.WriteString("... dan ")
		b.WriteString(strconv.Itoa(len(errs) - show))
		b.WriteString(" kesalahan lainnya.")
	}
	return template.HTML(b.String())
}
