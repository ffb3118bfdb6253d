package rating

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want *int
	}{
		{name: "nil input", raw: nil, want: nil},
		{name: "integer in range", raw: 7, want: intPtr(7)},
		{name: "float rounds half up", raw: 5.6, want: intPtr(6)},
		{name: "float rounds down", raw: 5.4, want: intPtr(5)},
		{name: "string with dot", raw: "7.0", want: intPtr(7)},
		{name: "string with comma", raw: "7,0", want: intPtr(7)},
		{name: "string with spaces", raw: " 3 ", want: intPtr(3)},
		{name: "empty string", raw: "", want: nil},
		{name: "whitespace string", raw: "   ", want: nil},
		{name: "unparsable string", raw: "zehn", want: nil},
		{name: "zero rejected", raw: 0, want: nil},
		{name: "eleven rejected", raw: 11, want: nil},
		{name: "rounds out of range", raw: 10.6, want: nil},
		{name: "rounds into range", raw: 10.4, want: intPtr(10)},
		{name: "negative rejected", raw: -3, want: nil},
		{name: "NaN rejected", raw: math.NaN(), want: nil},
		{name: "Inf rejected", raw: math.Inf(1), want: nil},
		{name: "bool rejected", raw: true, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeScore(tc.raw)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("NormalizeScore(%v) = %v, want %v", tc.raw, got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Errorf("NormalizeScore(%v) = %d, want %d", tc.raw, *got, *tc.want)
			}
		})
	}
}

func TestNormalizeScoreIdempotent(t *testing.T) {
	// Re-normalizing an already-valid score must not change it.
	for score := 1; score <= 10; score++ {
		first := NormalizeScore(score)
		if first == nil {
			t.Fatalf("NormalizeScore(%d) = nil, want %d", score, score)
		}
		second := NormalizeScore(*first)
		if second == nil || *second != score {
			t.Errorf("NormalizeScore(NormalizeScore(%d)) = %v, want %d", score, second, score)
		}
	}
}

func TestNormalizeScoreSeparatorEquivalence(t *testing.T) {
	pairs := [][2]string{
		{"7,0", "7.0"},
		{"5,5", "5.5"},
		{"9,49", "9.49"},
	}
	for _, p := range pairs {
		comma := NormalizeScore(p[0])
		dot := NormalizeScore(p[1])
		if comma == nil || dot == nil || *comma != *dot {
			t.Errorf("NormalizeScore(%q) = %v, NormalizeScore(%q) = %v, want equal", p[0], comma, p[1], dot)
		}
	}
}

func TestNormalizeNote(t *testing.T) {
	long := strings.Repeat("x", 3000)

	tests := []struct {
		name string
		raw  any
		want *string
	}{
		{name: "nil input", raw: nil, want: nil},
		{name: "empty string", raw: "", want: nil},
		{name: "whitespace only", raw: " \t\n ", want: nil},
		{name: "plain note", raw: "sehr solide", want: strPtr("sehr solide")},
		{name: "trimmed", raw: "  am Rand ausgefranst  ", want: strPtr("am Rand ausgefranst")},
		{name: "truncated", raw: long, want: strPtr(long[:2000])},
		{name: "non-string rejected", raw: 42, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeNote(tc.raw)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("NormalizeNote(%v) = %v, want %v", tc.raw, got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Errorf("NormalizeNote(...) = %q, want %q", *got, *tc.want)
			}
		})
	}
}

func TestNormalizeNoteMultibyteTruncation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "two-byte runes", raw: strings.Repeat("ä", 2001)},
		{name: "three-byte runes", raw: strings.Repeat("€", 2001)},
		{name: "mixed", raw: "Gehäuse " + strings.Repeat("ö", 3000)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeNote(tc.raw)
			if got == nil {
				t.Fatal("NormalizeNote returned nil")
			}
			if n := utf8.RuneCountInString(*got); n != 2000 {
				t.Errorf("rune count = %d, want 2000", n)
			}
			if !utf8.ValidString(*got) {
				t.Error("truncated note is not valid UTF-8")
			}
		})
	}

	// A note of exactly the cap, counted in runes, survives untouched.
	exact := strings.Repeat("ü", 2000)
	if got := NormalizeNote(exact); got == nil || *got != exact {
		t.Error("note at the character cap must not be truncated")
	}
}

func TestToPersistableValuesCatalogCompleteness(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]RawValue
	}{
		{name: "empty input", input: map[string]RawValue{}},
		{name: "nil input", input: nil},
		{
			name: "partial input",
			input: map[string]RawValue{
				"a01": {Score: 8, Note: "gut verpackt"},
				"c05": {Score: "9,0"},
			},
		},
		{
			name: "unknown ids dropped",
			input: map[string]RawValue{
				"zz99": {Score: 10},
				"b03":  {Score: 7},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ToPersistableValues(tc.input)
			if len(got) != len(Catalog()) {
				t.Fatalf("len(values) = %d, want %d", len(got), len(Catalog()))
			}
			for _, c := range Catalog() {
				if _, ok := got[c.ID]; !ok {
					t.Errorf("missing catalog id %q", c.ID)
				}
			}
			if _, ok := got["zz99"]; ok {
				t.Error("unknown id zz99 must be dropped")
			}
		})
	}
}

func TestToPersistableValuesNormalizes(t *testing.T) {
	got := ToPersistableValues(map[string]RawValue{
		"a01": {Score: "5,6", Note: "  knapp  "},
		"a02": {Score: 0},
		"a03": {Score: 11, Note: ""},
	})

	if v := got["a01"]; v.Score == nil || *v.Score != 6 {
		t.Errorf("a01 score = %v, want 6", v.Score)
	}
	if v := got["a01"]; v.Note == nil || *v.Note != "knapp" {
		t.Errorf("a01 note = %v, want %q", v.Note, "knapp")
	}
	if v := got["a02"]; v.Score != nil {
		t.Errorf("a02 score = %d, want nil (out of range)", *v.Score)
	}
	if v := got["a03"]; v.Score != nil || v.Note != nil {
		t.Error("a03 must be fully absent")
	}
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }
