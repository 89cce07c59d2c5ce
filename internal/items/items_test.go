package items

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"Q500", "500", true},
		{" Q500", "500", true},
		{"500\t", "500", true},
		{"0", "0", true},
		{"Q0", "0", true},
		{"007", "7", true},
		{"Q002", "2", true},
		{"Q000", "0", true},
		{"Q99999999999999999999", "99999999999999999999", true},
		{"00099999999999999999999", "99999999999999999999999", true},
		{"Q", "", false},
		{"QQ5", "", false},
		{"q5", "", false},
		{"P31", "", false},
		{"Qabc", "", false},
		{"5Q", "", false},
		{"-5", "", false},
		{"1 2", "", false},
		{"", "", false},
		{"   ", "", false},
		{"Q１２", "", false},
	}
	for _, tt := range tests {
		got, ok := Normalize(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeBatchDropsInvalidAndKeepsOrder(t *testing.T) {
	got := NormalizeBatch([]string{"Q10", "20", "Qabc"})
	if want := []string{"10", "20"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeBatch = %v, want %v", got, want)
	}
}

func TestNormalizeBatchProperties(t *testing.T) {
	inputs := [][]string{
		nil,
		{""},
		{"Q1", "Q1", "1"},
		{"x", "Q3", "", " 2 ", "Q-1", "4"},
	}
	for _, in := range inputs {
		out := NormalizeBatch(in)
		if len(out) > len(in) {
			t.Fatalf("NormalizeBatch(%v) grew to %v", in, out)
		}
		for _, id := range out {
			if id == "" {
				t.Fatalf("NormalizeBatch(%v) returned empty element", in)
			}
			if again, ok := Normalize(id); !ok || again != id {
				t.Fatalf("NormalizeBatch(%v) returned non-canonical %q", in, id)
			}
		}
	}
	if got := NormalizeBatch([]string{"Q1", "Q1", "1"}); !reflect.DeepEqual(got, []string{"1", "1", "1"}) {
		t.Fatalf("expected duplicates to be kept, got %v", got)
	}
	if got := NormalizeBatch([]string{"x", "Q3", "", " 2 ", "Q-1", "4"}); !reflect.DeepEqual(got, []string{"3", "2", "4"}) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestNormalizeReportTracksRejected(t *testing.T) {
	report := NormalizeReport([]string{"Q1", "", "  ", " bad ", "Q", "2"})
	if !reflect.DeepEqual(report.IDs, []string{"1", "2"}) {
		t.Fatalf("unexpected ids: %v", report.IDs)
	}
	if !reflect.DeepEqual(report.Rejected, []string{"bad", "Q"}) {
		t.Fatalf("unexpected rejected: %v", report.Rejected)
	}
}

func TestToInt64(t *testing.T) {
	got, err := ToInt64([]string{"1", "007", "42"})
	if err != nil {
		t.Fatalf("ToInt64: %v", err)
	}
	if !reflect.DeepEqual(got, []int64{1, 7, 42}) {
		t.Fatalf("unexpected ints: %v", got)
	}
	if _, err := ToInt64([]string{"99999999999999999999"}); err == nil {
		t.Fatal("expected overflow error")
	}
}

func TestEntityID(t *testing.T) {
	tests := []struct {
		id   string
		want int64
		ok   bool
	}{
		{"42", 42, true},
		{"0", 0, true},
		{"9223372036854775807", 9223372036854775807, true},
		{"9223372036854775808", 0, false},
		{"99999999999999999999", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := EntityID(tt.id)
		if got != tt.want || ok != tt.ok {
			t.Errorf("EntityID(%q) = (%d, %v), want (%d, %v)", tt.id, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeReportKeepsOversizedIDs(t *testing.T) {
	report := NormalizeReport([]string{"Q2", "Q99999999999999999999", "Q002"})
	if want := []string{"2", "99999999999999999999", "2"}; !reflect.DeepEqual(report.IDs, want) {
		t.Fatalf("ids = %v, want %v", report.IDs, want)
	}
	if len(report.Rejected) != 0 {
		t.Fatalf("rejected = %v, want none", report.Rejected)
	}
}

func TestUniqueAndPrefixed(t *testing.T) {
	if got := Unique([]string{"3", "1", "3", "2", "1"}); !reflect.DeepEqual(got, []string{"3", "1", "2"}) {
		t.Fatalf("Unique = %v", got)
	}
	if got := Prefixed("42"); got != "Q42" {
		t.Fatalf("Prefixed = %q", got)
	}
}
