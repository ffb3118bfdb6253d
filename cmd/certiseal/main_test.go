package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCatalogCmdFlags(t *testing.T) {
	cmd := newCatalogCmd()

	f := cmd.Flags()
	output, _ := f.GetString("output")
	if output != "text" {
		t.Errorf("default output = %q, want text", output)
	}
}

func TestRateCmdFlags(t *testing.T) {
	cmd := newRateCmd()
	f := cmd.Flags()

	for _, flag := range []string{"name", "manufacturer", "test-number"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestExportCmdFlags(t *testing.T) {
	cmd := newExportCmd()
	f := cmd.Flags()

	format, _ := f.GetString("format")
	if format != "csv" {
		t.Errorf("default format = %q, want csv", format)
	}

	for _, flag := range []string{"format", "out", "name", "manufacturer", "test-number"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestLoadRating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.json")
	content := `{"a01": {"score": 8}, "b03": {"score": "7,5", "note": "ok"}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	values, computed, err := loadRating(path)
	if err != nil {
		t.Fatalf("loadRating: %v", err)
	}

	if v := values["a01"]; v.Score == nil || *v.Score != 8 {
		t.Errorf("a01 score = %v, want 8", v.Score)
	}
	// "7,5" rounds half up to 8.
	if v := values["b03"]; v.Score == nil || *v.Score != 8 {
		t.Errorf("b03 score = %v, want 8", v.Score)
	}
	// A partial rating never has an overall grade.
	if computed.OverallGrade != nil {
		t.Errorf("OverallGrade = %v, want nil", *computed.OverallGrade)
	}
}

func TestLoadRatingBadFile(t *testing.T) {
	if _, _, err := loadRating(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := loadRating(path); err == nil {
		t.Error("expected error for malformed file")
	}
}
