package sources

import "strings"

// Literal returns a copy of raw so callers may keep mutating their input.
func Literal(raw []string) []string {
	if raw == nil {
		return nil
	}
	out := make([]string, len(raw))
	copy(out, raw)
	return out
}

// SplitLines splits text on line breaks, accepting both \n and \r\n.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
