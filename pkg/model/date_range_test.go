package model

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    DateRange
		b    DateRange
		want bool
	}{
		{
			name: "disjoint ranges",
			a:    DateRange{CheckIn: day(1), CheckOut: day(3)},
			b:    DateRange{CheckIn: day(5), CheckOut: day(8)},
			want: false,
		},
		{
			name: "partial overlap",
			a:    DateRange{CheckIn: day(1), CheckOut: day(5)},
			b:    DateRange{CheckIn: day(3), CheckOut: day(7)},
			want: true,
		},
		{
			name: "contained range",
			a:    DateRange{CheckIn: day(1), CheckOut: day(10)},
			b:    DateRange{CheckIn: day(3), CheckOut: day(5)},
			want: true,
		},
		{
			name: "back-to-back checkout equals check-in",
			a:    DateRange{CheckIn: day(1), CheckOut: day(2)},
			b:    DateRange{CheckIn: day(2), CheckOut: day(3)},
			want: false,
		},
		{
			name: "identical positive-length range overlaps itself",
			a:    DateRange{CheckIn: day(1), CheckOut: day(5)},
			b:    DateRange{CheckIn: day(1), CheckOut: day(5)},
			want: true,
		},
		{
			name: "zero-length range never overlaps",
			a:    DateRange{CheckIn: day(3), CheckOut: day(3)},
			b:    DateRange{CheckIn: day(1), CheckOut: day(5)},
			want: false,
		},
		{
			name: "zero-length range does not overlap itself",
			a:    DateRange{CheckIn: day(3), CheckOut: day(3)},
			b:    DateRange{CheckIn: day(3), CheckOut: day(3)},
			want: false,
		},
		{
			name: "inverted range never overlaps",
			a:    DateRange{CheckIn: day(5), CheckOut: day(1)},
			b:    DateRange{CheckIn: day(2), CheckOut: day(4)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateRange_IsValid(t *testing.T) {
	valid := DateRange{CheckIn: day(1), CheckOut: day(2)}
	if !valid.IsValid() {
		t.Error("expected positive-length range to be valid")
	}

	zero := DateRange{CheckIn: day(1), CheckOut: day(1)}
	if zero.IsValid() {
		t.Error("expected zero-length range to be invalid")
	}

	inverted := DateRange{CheckIn: day(2), CheckOut: day(1)}
	if inverted.IsValid() {
		t.Error("expected inverted range to be invalid")
	}
}

func TestDateRange_Nights(t *testing.T) {
	tests := []struct {
		name  string
		r     DateRange
		want  int
	}{
		{
			name: "three whole nights",
			r:    DateRange{CheckIn: day(1), CheckOut: day(4)},
			want: 3,
		},
		{
			name: "partial day rounds up",
			r:    DateRange{CheckIn: day(1), CheckOut: day(2).Add(6 * time.Hour)},
			want: 2,
		},
		{
			name: "single night",
			r:    DateRange{CheckIn: day(1), CheckOut: day(2)},
			want: 1,
		},
		{
			name: "invalid range yields zero",
			r:    DateRange{CheckIn: day(4), CheckOut: day(1)},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Nights(); got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}
