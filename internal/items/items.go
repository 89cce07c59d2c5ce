package items

import (
	"fmt"
	"strconv"
	"strings"
)

// Marker is the letter that may prefix an item identifier.
const Marker = 'Q'

// Normalize trims raw and returns its canonical digit form, without the marker
// and without leading zeros. The second return value is false when raw is not
// a bare or Q-prefixed digit sequence.
func Normalize(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	if value[0] == Marker {
		value = value[1:]
	}
	if !Digits(value) {
		return "", false
	}
	if trimmed := strings.TrimLeft(value, "0"); trimmed != "" {
		return trimmed, true
	}
	return "0", true
}

// Digits reports whether s is a non-empty run of ASCII digits.
func Digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NormalizeBatch normalizes every element of raw, dropping invalid and blank
// entries. Survivors keep their relative order; duplicates are kept.
func NormalizeBatch(raw []string) []string {
	return NormalizeReport(raw).IDs
}

// Report is the outcome of normalizing a batch of raw identifiers.
type Report struct {
	IDs []string
	// Rejected holds the trimmed non-blank inputs that failed validation.
	Rejected []string
}

// NormalizeReport behaves like NormalizeBatch but also records the rejected
// values. Blank lines are skipped without being counted as rejected.
func NormalizeReport(raw []string) Report {
	report := Report{IDs: make([]string, 0, len(raw))}
	for _, value := range raw {
		id, ok := Normalize(value)
		if ok {
			report.IDs = append(report.IDs, id)
			continue
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			report.Rejected = append(report.Rejected, trimmed)
		}
	}
	return report
}

// Prefixed renders a canonical identifier with the item marker, e.g. "Q42".
func Prefixed(id string) string {
	return string(Marker) + id
}

// EntityID returns the numeric entity id of a canonical identifier. It reports
// false for digit strings outside the int64 range, which no stored entity can
// carry.
func EntityID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ToInt64 converts canonical identifiers to integers for bound query
// parameters.
func ToInt64(ids []string) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("item id %q: %w", id, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Unique returns ids without duplicates, keeping the first occurrence order.
func Unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
