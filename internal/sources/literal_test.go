package sources

import (
	"reflect"
	"testing"
)

func TestLiteralCopies(t *testing.T) {
	in := []string{"Q1", " 2 "}
	out := Literal(in)
	in[0] = "changed"
	if !reflect.DeepEqual(out, []string{"Q1", " 2 "}) {
		t.Fatalf("Literal = %v", out)
	}
	if Literal(nil) != nil {
		t.Fatal("Literal(nil) should be nil")
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"Q1", []string{"Q1"}},
		{"Q1\r\nQ2\n\nQ3\n", []string{"Q1", "Q2", "", "Q3", ""}},
	}
	for _, tc := range cases {
		if got := SplitLines(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("SplitLines(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsValidURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.org/items.txt": true,
		"http://example.org":            true,
		" https://example.org/a ":       true,
		"ftp://example.org/items":       false,
		"example.org/items":             false,
		"Q42":                           false,
		"https://":                      false,
		"https://a.org/x\nQ1":           false,
		"":                              false,
	}
	for in, want := range cases {
		if got := IsValidURL(in); got != want {
			t.Errorf("IsValidURL(%q) = %v, want %v", in, got, want)
		}
	}
}
