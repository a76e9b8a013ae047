package models

import "testing"

func TestNextStatus(t *testing.T) {
	tests := []struct {
		current string
		want    string
		ok      bool
	}{
		{StatusPending, "", false}, // pending resolves by explicit choice, never automatically
		{StatusPaid, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusDelivered, "", false},
		{StatusCancelled, "", false},
		{"bogus", "", false},
	}

	for _, tt := range tests {
		got, ok := NextStatus(tt.current)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NextStatus(%q) = %q, %v; want %q, %v", tt.current, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{StatusPending, StatusPaid},
		{StatusPending, StatusCancelled},
		{StatusPaid, StatusShipped},
		{StatusShipped, StatusDelivered},
	}
	for _, tt := range allowed {
		if !CanTransition(tt.from, tt.to) {
			t.Errorf("CanTransition(%q, %q) = false, want true", tt.from, tt.to)
		}
	}

	denied := []struct{ from, to string }{
		{StatusPending, StatusShipped},  // cannot skip payment
		{StatusPaid, StatusDelivered},   // cannot skip shipment
		{StatusShipped, StatusPaid},     // no going backwards
		{StatusDelivered, StatusPaid},   // terminal
		{StatusCancelled, StatusPaid},   // terminal
		{StatusDelivered, StatusPending}, // terminal
	}
	for _, tt := range denied {
		if CanTransition(tt.from, tt.to) {
			t.Errorf("CanTransition(%q, %q) = true, want false", tt.from, tt.to)
		}
	}
}
