package language

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// maxCodeLength bounds codes such as "zh-classical" or "be-tarask".
const maxCodeLength = 35

// codePattern is the safe character class accepted for label languages:
// a lowercase primary subtag followed by optional hyphenated subtags.
var codePattern = regexp.MustCompile(`^[a-z][a-z0-9]{1,11}(-[a-z0-9]{1,12})*$`)

// Normalize trims and lower-cases code. It does not validate.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Valid reports whether code has the shape of a label language code. The
// check is purely syntactic; the code is not looked up in a registry.
func Valid(code string) bool {
	code = Normalize(code)
	if code == "" || len(code) > maxCodeLength {
		return false
	}
	return codePattern.MatchString(code)
}

// Validate returns the normalized code, or an error naming the rejected value.
func Validate(code string) (string, error) {
	normalized := Normalize(code)
	if !Valid(normalized) {
		return "", fmt.Errorf("invalid language code %q", strings.TrimSpace(code))
	}
	return normalized, nil
}

// ParseList splits a space or comma separated list of codes, normalizing and
// deduplicating while keeping the first occurrence order. Shape validation is
// left to the caller.
func ParseList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '|'
	})
	return NormalizeList(fields)
}

// NormalizeList normalizes and deduplicates codes, dropping blanks.
func NormalizeList(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		trimmed := Normalize(code)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		normalized = append(normalized, trimmed)
	}
	return normalized
}

// DisplayName returns an English name for code when it maps to a known BCP 47
// tag, or the uppercased code otherwise.
func DisplayName(code string) string {
	code = Normalize(code)
	if code == "" {
		return "Unknown"
	}
	tag, err := language.Parse(code)
	if err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	return strings.ToUpper(code)
}
