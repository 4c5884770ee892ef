package sanitizer

import (
	"reflect"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Grand Hotel", "Grand Hotel"},
		{"leading and trailing spaces", "  Grand Hotel  ", "Grand Hotel"},
		{"internal whitespace run", "Grand \t\n Hotel", "Grand Hotel"},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimAndNormalize_Idempotent(t *testing.T) {
	input := "  Sea  View   Resort "
	once := TrimAndNormalize(input)
	twice := TrimAndNormalize(once)
	if once != twice {
		t.Errorf("normalization not idempotent: %q != %q", once, twice)
	}
}

func TestNormalizeAmenities(t *testing.T) {
	got := NormalizeAmenities([]string{"WiFi", " wifi", "Pool", "", "POOL", "Spa"})
	want := []string{"wifi", "pool", "spa"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeAmenities() = %v, want %v", got, want)
	}
}

func TestNormalizeStringSlice_Empty(t *testing.T) {
	got := NormalizeStringSlice(nil, NormalizeName)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}
