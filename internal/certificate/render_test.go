package certificate

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/certiseal/certiseal/pkg/rating"
)

func sampleComputed(t *testing.T) rating.Computed {
	t.Helper()
	values := make(rating.Values)
	for _, c := range rating.Catalog() {
		score := 9
		values[c.ID] = rating.Value{Score: &score}
	}
	return rating.Compute(values)
}

func TestRenderSeal(t *testing.T) {
	out, err := RenderSeal(SealData{
		ProductName:     "Trekkingrucksack Fjell 45",
		OverallGrade:    1.6,
		OverallCategory: "Sehr gut",
		TestNumber:      "CS-2025-0042",
		VerifyURL:       "https://siegel.example.de/verify/abc",
	})
	if err != nil {
		t.Fatalf("RenderSeal: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("seal output is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != sealSize || img.Bounds().Dy() != sealSize {
		t.Errorf("seal size = %v, want %dx%d", img.Bounds(), sealSize, sealSize)
	}
}

func TestRenderSealLongProductName(t *testing.T) {
	_, err := RenderSeal(SealData{
		ProductName:     strings.Repeat("Sehr langer Produktname ", 10),
		OverallGrade:    2.0,
		OverallCategory: "Gut",
		TestNumber:      "CS-2025-0001",
		VerifyURL:       "https://siegel.example.de/verify/xyz",
	})
	if err != nil {
		t.Fatalf("RenderSeal with long name: %v", err)
	}
}

func TestRenderCertificate(t *testing.T) {
	computed := sampleComputed(t)
	out, err := RenderCertificate(CertificateData{
		ProductName:     "Trekkingrucksack Fjell 45",
		Manufacturer:    "Bergwald GmbH",
		TestNumber:      "CS-2025-0042",
		IssuedAt:        time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Computed:        computed,
		OverallGrade:    *computed.OverallGrade,
		OverallCategory: *computed.OverallCategory,
		VerifyURL:       "https://siegel.example.de/verify/abc",
	})
	if err != nil {
		t.Fatalf("RenderCertificate: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("certificate output is not a PDF document")
	}
}

func TestFormatGrade(t *testing.T) {
	if got := formatGrade(1.5); got != "1,5" {
		t.Errorf("formatGrade(1.5) = %q, want %q", got, "1,5")
	}
	if got := formatAverage(8.0); got != "8,00" {
		t.Errorf("formatAverage(8.0) = %q, want %q", got, "8,00")
	}
}
