package language

import (
	"reflect"
	"testing"
)

func TestValid(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"en", true},
		{"FR", true},
		{" de ", true},
		{"simple", true},
		{"be-tarask", true},
		{"zh-classical", true},
		{"map-bms", true},
		{"sr-el", true},
		{"", false},
		{" ", false},
		{"e", false},
		{"en_GB", false},
		{"fr'; DROP TABLE wb_terms; --", false},
		{"en-", false},
		{"-en", false},
		{"en--gb", false},
		{"1en", false},
		{"fr\n", true},
		{"é", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.input); got != tt.expected {
			t.Errorf("Valid(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	got, err := Validate(" EN ")
	if err != nil || got != "en" {
		t.Fatalf("Validate = (%q, %v)", got, err)
	}
	if _, err := Validate("x'y"); err == nil {
		t.Fatal("expected error for unsafe code")
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"en de", []string{"en", "de"}},
		{"en,de, EN", []string{"en", "de"}},
		{"  ", nil},
		{"", nil},
		{"fr|it\tes", []string{"fr", "it", "es"}},
	}
	for _, tt := range tests {
		got := ParseList(tt.input)
		if len(got) == 0 && len(tt.expected) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("ParseList(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"fr", "French"},
		{"DE", "German"},
		{"", "Unknown"},
		{"  ", "Unknown"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.input); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
