package periods

import (
	"strings"
	"testing"

	"github.com/osishub/osishub/internal/domain/models"
)

func TestPlanDivisions(t *testing.T) {
	plan, problem := planDivisions("Humas\n  \nbph\nOlahraga\nHUMAS")
	if problem != "" {
		t.Fatalf("unexpected problem: %s", problem)
	}
	var names []string
	for _, d := range plan {
		names = append(names, d.Name+":"+d.Type)
	}
	want := "BPH:Inti,Humas:Umum,Olahraga:Umum"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("plan = %s, want %s", got, want)
	}
}

func TestPlanDivisions_TooMany(t *testing.T) {
	var lines []string
	for i := 0; i < maxWizardDivisions; i++ {
		lines = append(lines, "Divisi "+string(rune('A'+i%26))+strings.Repeat("x", i/26))
	}
	if _, problem := planDivisions(strings.Join(lines, "\n")); problem == "" {
		t.Error("expected the list to be rejected")
	}
}

func TestCopyDivisions_DropsLogos(t *testing.T) {
	out := copyDivisions([]models.Division{{Name: "BPH", Type: models.DivisionTypeCore, LogoURL: "/uploads/x.png", LogoPath: "x.png", Rank: 1}})
	if len(out) != 1 || out[0].LogoURL != "" || out[0].LogoPath != "" || out[0].Rank != 0 {
		t.Errorf("copy = %+v", out)
	}
}
