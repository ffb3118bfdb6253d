package rating

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxNoteLen is the maximum stored length of a criterion note, in
// characters, not bytes.
const maxNoteLen = 2000

// RawValue is an untrusted score/note pair as it arrives from a client.
// Score and Note may be numbers, strings or absent; normalization decides
// what survives.
type RawValue struct {
	Score any `json:"score"`
	Note  any `json:"note"`
}

// NormalizeScore converts arbitrary client input into a valid score in
// [1,10], or nil. Numeric strings may use either "." or "," as the decimal
// separator. Values are rounded half-up to the nearest integer first; a
// rounded value outside [1,10] is rejected, not clamped. Unparsable or
// non-finite input degrades to nil, never to an error.
func NormalizeScore(raw any) *int {
	if raw == nil {
		return nil
	}

	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		// German forms use a comma as decimal separator.
		s = strings.ReplaceAll(s, ",", ".")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}

	rounded := int(math.Round(f))
	if rounded < 1 || rounded > 10 {
		return nil
	}
	return &rounded
}

// NormalizeNote trims a note and truncates it to the storage limit.
// Absent, empty or whitespace-only input becomes nil.
func NormalizeNote(raw any) *string {
	if raw == nil {
		return nil
	}

	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	default:
		return nil
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	// Truncate on runes so a multibyte note never gets cut mid-character.
	if utf8.RuneCountInString(s) > maxNoteLen {
		runes := []rune(s)
		s = string(runes[:maxNoteLen])
	}
	return &s
}

// ToPersistableValues normalizes arbitrary client input into the stable
// persisted shape: exactly one entry per catalog id, no more, no fewer.
// Ids outside the catalog are dropped; catalog ids missing from the input
// get an empty (unscored) entry.
func ToPersistableValues(input map[string]RawValue) Values {
	out := make(Values, len(catalog))
	for _, c := range catalog {
		raw := input[c.ID]
		out[c.ID] = Value{
			Score: NormalizeScore(raw.Score),
			Note:  NormalizeNote(raw.Note),
		}
	}
	return out
}
