package model

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestBooking_StatusHelpers(t *testing.T) {
	tests := []struct {
		status       string
		wantActive   bool
		wantTerminal bool
	}{
		{StatusPending, true, false},
		{StatusConfirmed, true, false},
		{StatusCancelled, false, true},
		{StatusCompleted, false, true},
	}

	for _, tt := range tests {
		b := &Booking{Status: tt.status}
		if got := b.IsActive(); got != tt.wantActive {
			t.Errorf("IsActive(%s) = %v, want %v", tt.status, got, tt.wantActive)
		}
		if got := b.IsTerminal(); got != tt.wantTerminal {
			t.Errorf("IsTerminal(%s) = %v, want %v", tt.status, got, tt.wantTerminal)
		}
	}
}
