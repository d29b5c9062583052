package domain

import (
	"reflect"
	"testing"
)

func TestIgnoreSet_Contains(t *testing.T) {
	set := NewIgnoreSet(DefaultIgnoreDirs...)

	tests := []struct {
		name string
		want bool
	}{
		{"node_modules", true},
		{".git", true},
		{"__pycache__", true},
		{"src", false},
		{"Node_Modules", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := set.Contains(tt.name); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIgnoreSet_ZeroValue(t *testing.T) {
	var set IgnoreSet
	if set.Contains(".git") {
		t.Error("zero IgnoreSet should not ignore anything")
	}
	if names := set.Names(); len(names) != 0 {
		t.Errorf("Names() = %v, want empty", names)
	}
}

func TestNewIgnoreSet_TrimsAndDropsBlank(t *testing.T) {
	set := NewIgnoreSet(" vendor ", "", "  ", "dist", "vendor")

	want := []string{"dist", "vendor"}
	if got := set.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestParseIgnoreList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a, b ,,c", []string{"a", "b", "c"}},
		{" , ", nil},
	}

	for _, tt := range tests {
		if got := ParseIgnoreList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseIgnoreList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStats_Skipped(t *testing.T) {
	s := Stats{SkippedBinary: 2, SkippedErrored: 3}
	if s.Skipped() != 5 {
		t.Errorf("Skipped() = %d, want 5", s.Skipped())
	}
}
