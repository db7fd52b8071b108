package inputval

import (
	"strings"
	"testing"
)

type periodInput struct {
	CabinetName string `validate:"required,max=10" label:"Nama kabinet"`
	StartYear   int    `validate:"year" label:"Tahun mulai"`
	EndYear     int    `validate:"year,gtefield=StartYear" label:"Tahun selesai"`
}

type memberInput struct {
	FullName   string `validate:"required" label:"Nama lengkap"`
	Gender     string `validate:"required,oneof=L P" label:"Jenis kelamin"`
	DivisionID string `validate:"required,objectid" label:"Divisi"`
	PositionID string `validate:"objectid" label:"Jabatan"`
	Instagram  string `validate:"httpurl" label:"Instagram"`
}

func TestValidate_Valid(t *testing.T) {
	r := Validate(periodInput{CabinetName: "Cakrawala", StartYear: 2024, EndYear: 2025})
	if r.HasErrors() {
		t.Fatalf("expected valid, got %v", r.Messages())
	}
	if r.First() != "" {
		t.Errorf("First() = %q, want empty", r.First())
	}
}

func TestValidate_FirstMessageUsesLabel(t *testing.T) {
	r := Validate(periodInput{StartYear: 2024, EndYear: 2025})
	if got, want := r.First(), "Nama kabinet wajib diisi."; got != want {
		t.Errorf("First() = %q, want %q", got, want)
	}
}

func TestValidate_Messages(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"max", periodInput{CabinetName: "Kabinet Sangat Panjang", StartYear: 2024, EndYear: 2024}, "Nama kabinet maksimal 10 karakter."},
		{"year", periodInput{CabinetName: "A", StartYear: 1999, EndYear: 2024}, "Tahun mulai harus tahun antara 2000 dan 2100."},
		{"gtefield", periodInput{CabinetName: "A", StartYear: 2025, EndYear: 2024}, "Tahun selesai tidak boleh lebih kecil dari tahun mulai."},
		{"oneof", memberInput{FullName: "A", Gender: "X", DivisionID: "507f1f77bcf86cd799439011"}, "Jenis kelamin harus salah satu dari: L, P."},
		{"objectid", memberInput{FullName: "A", Gender: "L", DivisionID: "zzz"}, "Pilihan divisi tidak valid."},
		{"httpurl", memberInput{FullName: "A", Gender: "L", DivisionID: "507f1f77bcf86cd799439011", Instagram: "instagram.com/x"}, "Instagram harus berupa URL http(s) yang valid."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Validate(tc.input)
			if r.First() != tc.want {
				t.Errorf("First() = %q, want %q", r.First(), tc.want)
			}
		})
	}
}

func TestValidate_ObjectIDAllowsEmpty(t *testing.T) {
	r := Validate(memberInput{FullName: "A", Gender: "P", DivisionID: "507f1f77bcf86cd799439011"})
	if r.HasErrors() {
		t.Errorf("expected empty optional id to pass, got %v", r.Messages())
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	r := Validate(&memberInput{})
	if len(r.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(r.Errors), r.Messages())
	}
	if r.Errors[0].Field != "FullName" || r.Errors[0].Tag != "required" {
		t.Errorf("unexpected first error %+v", r.Errors[0])
	}
	if !strings.HasPrefix(r.Errors[2].Message, "Divisi") {
		t.Errorf("unexpected third message %q", r.Errors[2].Message)
	}
}

func TestIsHTTPURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"https://www.youtube.com/embed/abc", true},
		{"http://example.com", true},
		{"ftp://example.com", false},
		{"javascript:alert(1)", false},
		{"example.com", false},
		{"https://", false},
	}
	for _, tc := range tests {
		if got := IsHTTPURL(tc.in); got != tc.want {
			t.Errorf("IsHTTPURL(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
