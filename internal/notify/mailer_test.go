package notify

import (
	"strings"
	"testing"

	"github.com/certiseal/certiseal/internal/product"
	"github.com/certiseal/certiseal/pkg/rating"
)

func TestRenderPassedMail(t *testing.T) {
	grade := 1.8
	category := "Sehr gut"
	p := &product.Product{
		ID:         "p1",
		Name:       "Trekkingrucksack Fjell 45",
		TestNumber: "CS-2026-0042",
	}

	body, err := renderPassedMail(p, rating.Computed{
		OverallGrade:    &grade,
		OverallCategory: &category,
	})
	if err != nil {
		t.Fatalf("renderPassedMail: %v", err)
	}

	for _, want := range []string{
		"Trekkingrucksack Fjell 45",
		"CS-2026-0042",
		"Gesamtnote: 1,8 (Sehr gut)",
		"endgültig",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("mail body missing %q", want)
		}
	}
}

func TestRenderPassedMailIncomplete(t *testing.T) {
	p := &product.Product{ID: "p1", Name: "X", TestNumber: "CS-2026-0001"}

	if _, err := renderPassedMail(p, rating.Computed{}); err == nil {
		t.Error("expected error for rating without overall grade")
	}
}
