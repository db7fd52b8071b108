package csvutil

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseMembersCSV_ValidRows(t *testing.T) {
	csv := "\ufeffnama_lengkap,jenis_kelamin,divisi,jabatan,sub_jabatan,kelas,instagram,kutipan\n" +
		"Ani Lestari,P,BPH,Ketua,,XII IPA 1,@anilestari,Melayani\n" +
		"Budi Santoso,laki-laki,Humas,,,XI IPS 2,,\n"

	res, err := ParseMembersCSV(strings.NewReader(csv), DefaultParseOptions())
	if err != nil {
		t.Fatalf("ParseMembersCSV: %v", err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(res.Rows))
	}
	r0 := res.Rows[0]
	if r0.FullName != "Ani Lestari" || r0.Gender != models.GenderFemale || r0.Instagram != "anilestari" || r0.Line != 2 {
		t.Errorf("row 0 = %+v", r0)
	}
	if res.Rows[1].Gender != models.GenderMale || res.Rows[1].Position != "" {
		t.Errorf("row 1 = %+v", res.Rows[1])
	}
}

func TestParseMembersCSV_NoHeaderAndBlankRows(t *testing.T) {
	csv := "Ani,P,BPH\n\n , , \nBudi,L,Humas\n"
	res, err := ParseMembersCSV(strings.NewReader(csv), ParseOptions{})
	if err != nil {
		t.Fatalf("ParseMembersCSV: %v", err)
	}
	if len(res.Rows) != 2 || res.HasErrors() {
		t.Errorf("rows=%d errors=%+v", len(res.Rows), res.Errors)
	}
}

func TestParseMembersCSV_RowErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want string
	}{
		{"missing name", ",L,Humas", "nama lengkap"},
		{"bad gender", "Ani,X,Humas", "jenis kelamin"},
		{"missing division", "Ani,P,", "divisi kosong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseMembersCSV(strings.NewReader(tt.csv), ParseOptions{})
			if err != nil {
				t.Fatalf("ParseMembersCSV: %v", err)
			}
			if len(res.Errors) != 1 {
				t.Fatalf("got %d errors, want 1", len(res.Errors))
			}
			if !strings.Contains(res.Errors[0].Reason, tt.want) {
				t.Errorf("reason %q does not contain %q", res.Errors[0].Reason, tt.want)
			}
			if res.Errors[0].Line != 1 {
				t.Errorf("line = %d, want 1", res.Errors[0].Line)
			}
		})
	}
}

func TestParseMembersCSV_TooManyRows(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 6; i++ {
		sb.WriteString("Ani,P,Humas\n")
	}
	_, err := ParseMembersCSV(strings.NewReader(sb.String()), ParseOptions{MaxRows: 5})
	if !errors.Is(err, ErrTooManyRows) {
		t.Errorf("err = %v, want ErrTooManyRows", err)
	}
}

func TestWriteMemberTemplate_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMemberTemplate(&buf); err != nil {
		t.Fatalf("WriteMemberTemplate: %v", err)
	}
	if !strings.HasPrefix(buf.String(), strings.Join(MemberHeader, ",")+"\n") {
		t.Errorf("template does not start with header: %q", buf.String())
	}
	res, err := ParseMembersCSV(&buf, ParseOptions{})
	if err != nil || res.HasErrors() || len(res.Rows) != 1 {
		t.Errorf("template should parse to one valid row: rows=%d err=%v errors=%+v", len(res.Rows), err, res.Errors)
	}
}

func TestFormatErrorsHTML(t *testing.T) {
	if FormatErrorsHTML(nil, 5) != "" {
		t.Error("no errors should render empty")
	}
	errs := make([]RowError, 8)
	for i := range errs {
		errs[i] = RowError{Line: i + 1, Reason: "<b>salah</b>"}
	}
	out := string(FormatErrorsHTML(errs, 3))
	if !strings.Contains(out, "8 baris") || !strings.Contains(out, "dan 5 kesalahan") {
		t.Errorf("unexpected summary: %s", out)
	}
	if strings.Contains(out, "<b>") {
		t.Error("reason must be escaped")
	}
}

func TestResolveMembers_AppliesCascadeRules(t *testing.T) {
	period := models.Period{ID: primitive.NewObjectID(), CabinetName: "Cakrawala", StartYear: 2024, EndYear: 2025}
	other := primitive.NewObjectID()
	bph := models.Division{ID: primitive.NewObjectID(), PeriodID: period.ID, Name: "BPH", Type: models.DivisionTypeCore}
	humas := models.Division{ID: primitive.NewObjectID(), PeriodID: period.ID, Name: "Humas", Type: models.DivisionTypeGeneral}
	oldDiv := models.Division{ID: primitive.NewObjectID(), PeriodID: other, Name: "Olahraga", Type: models.DivisionTypeGeneral}
	ketua := models.Position{ID: primitive.NewObjectID(), Name: "Ketua", Kind: models.PositionKindCore}
	anggota := models.Position{ID: primitive.NewObjectID(), Name: "Anggota", Kind: models.PositionKindDivision}

	rows := []MemberRow{
		{Line: 2, FullName: "Ani", Gender: "P", Division: "bph", Position: "KETUA"},
		{Line: 3, FullName: "Budi", Gender: "L", Division: "Humas", Position: "Anggota"},
		{Line: 4, FullName: "Cici", Gender: "P", Division: "Humas", Position: "Ketua"},
		{Line: 5, FullName: "Dodi", Gender: "L", Division: "Olahraga"},
		{Line: 6, FullName: "Eka", Gender: "P", Division: "Humas", Position: "Bendahara Umum"},
		{Line: 7, FullName: "Fani", Gender: "P", Division: "Humas"},
	}
	members, errs := ResolveMembers(rows, period,
		[]models.Division{bph, humas, oldDiv},
		[]models.Position{ketua, anggota})

	if len(members) != 3 {
		t.Fatalf("got %d members, want 3 (Ani, Budi, Fani)", len(members))
	}
	if members[0].DivisionID != bph.ID || members[0].PositionID == nil || *members[0].PositionID != ketua.ID {
		t.Errorf("Ani resolved to %+v", members[0])
	}
	if members[2].PositionID != nil {
		t.Errorf("Fani has no position, got %v", members[2].PositionID)
	}
	for _, m := range members {
		if m.PeriodID != period.ID {
			t.Errorf("%s period = %s", m.FullName, m.PeriodID.Hex())
		}
	}

	wantLines := map[int]string{4: "tidak berlaku", 5: "tidak ada pada periode", 6: "tidak dikenal"}
	if len(errs) != len(wantLines) {
		t.Fatalf("got %d errors, want %d: %+v", len(errs), len(wantLines), errs)
	}
	for _, e := range errs {
		if want := wantLines[e.Line]; !strings.Contains(e.Reason, want) {
			t.Errorf("line %d reason %q, want it to contain %q", e.Line, e.Reason, want)
		}
	}
}
