// internal/app/system/csvutil/members.go
package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/osishub/osishub/internal/domain/models"
)

// MemberHeader is the column order of the member import file.
var MemberHeader = []string{
	"nama_lengkap", "jenis_kelamin", "divisi", "jabatan",
	"sub_jabatan", "kelas", "instagram", "kutipan",
}

// MemberRow is one normalized data row. Division and Position are names,
// resolved against the store by ResolveMembers.
type MemberRow struct {
	Line        int
	FullName    string
	Gender      string // models.GenderMale or models.GenderFemale
	Division    string
	Position    string
	SubPosition string
	ClassName   string
	Instagram   string
	Quote       string
}

// ParseOptions bounds parsing. MaxRows <= 0 means unlimited.
type ParseOptions struct {
	MaxRows int
}

// DefaultParseOptions returns the limits used by the upload handler.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{MaxRows: MaxRows}
}

// ParseResult holds the valid rows and the rejected ones.
type ParseResult struct {
	Rows   []MemberRow
	Errors []RowError
}

// HasErrors reports whether any row was rejected.
func (r ParseResult) HasErrors() bool { return len(r.Errors) > 0 }

// ParseMembersCSV reads a member import file. The header row is optional and
// a UTF-8 BOM is ignored. Blank rows are skipped. It never touches the store.
func ParseMembersCSV(r io.Reader, opts ParseOptions) (ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var res ParseResult
	first := true
	data := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			line := 0
			if errors.As(err, &pe) {
				line = pe.Line
			}
			res.Errors = append(res.Errors, RowError{Line: line, Reason: "format CSV rusak: " + err.Error()})
			if line == 0 {
				return res, nil
			}
			continue
		}
		line, _ := reader.FieldPos(0)
		if first {
			first = false
			if len(rec) > 0 {
				rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
			}
			if isHeaderRow(rec) {
				continue
			}
		}
		if isBlank(rec) {
			continue
		}
		data++
		if opts.MaxRows > 0 && data > opts.MaxRows {
			return res, ErrTooManyRows
		}

		row, reason := parseMemberRow(rec, line)
		if reason != "" {
			res.Errors = append(res.Errors, RowError{Line: line, Reason: reason, Raw: rec})
			continue
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

func parseMemberRow(rec []string, line int) (MemberRow, string) {
	col := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	row := MemberRow{
		Line:        line,
		FullName:    col(0),
		Division:    col(2),
		Position:    col(3),
		SubPosition: col(4),
		ClassName:   col(5),
		Instagram:   strings.TrimPrefix(col(6), "@"),
		Quote:       col(7),
	}
	if row.FullName == "" {
		return row, "nama lengkap kosong"
	}
	g, ok := NormalizeGender(col(1))
	if !ok {
		return row, fmt.Sprintf("jenis kelamin %q tidak valid (gunakan L atau P)", col(1))
	}
	row.Gender = g
	if row.Division == "" {
		return row, "divisi kosong"
	}
	return row, ""
}

// NormalizeGender accepts L/P and the spelled-out forms, case-insensitively.
func NormalizeGender(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "laki-laki", "laki laki", "pria":
		return models.GenderMale, true
	case "p", "perempuan", "wanita":
		return models.GenderFemale, true
	}
	return "", false
}

func isHeaderRow(rec []string) bool {
	if len(rec) < 2 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(rec[0]))
	return first == MemberHeader[0] || first == "nama" || first == "nama lengkap"
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteMemberTemplate writes the downloadable import template: the header
// plus one example row.
func WriteMemberTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(MemberHeader); err != nil {
		return err
	}
	if err := cw.Write([]string{"Budi Santoso", "L", "Humas", "Anggota", "", "XI IPA 2", "budisantoso", "Bergerak bersama"}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
