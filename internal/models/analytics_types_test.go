package models

import (
	"testing"
	"time"
)

func TestWindowFor(t *testing.T) {
	// Requested on the 15th of a month: the MTD window must cover day 1
	// of that month through "now".
	now := time.Date(2025, time.August, 15, 14, 30, 0, 0, time.UTC)

	mtd := WindowFor(WindowMTD, now)
	if want := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC); !mtd.Start.Equal(want) {
		t.Errorf("MTD start = %v, want %v", mtd.Start, want)
	}
	if !mtd.End.Equal(now) {
		t.Errorf("MTD end = %v, want %v", mtd.End, now)
	}

	qtd := WindowFor(WindowQTD, now)
	if want := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC); !qtd.Start.Equal(want) {
		t.Errorf("QTD start = %v, want %v", qtd.Start, want)
	}

	ytd := WindowFor(WindowYTD, now)
	if want := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC); !ytd.Start.Equal(want) {
		t.Errorf("YTD start = %v, want %v", ytd.Start, want)
	}

	// Unknown kinds fall back to MTD.
	def := WindowFor("weekly", now)
	if !def.Start.Equal(mtd.Start) {
		t.Errorf("unknown kind start = %v, want MTD start %v", def.Start, mtd.Start)
	}
}

func TestWindowForQuarterBoundaries(t *testing.T) {
	tests := []struct {
		month time.Month
		want  time.Month
	}{
		{time.January, time.January},
		{time.March, time.January},
		{time.April, time.April},
		{time.June, time.April},
		{time.October, time.October},
		{time.December, time.October},
	}
	for _, tt := range tests {
		now := time.Date(2025, tt.month, 20, 0, 0, 0, 0, time.UTC)
		got := WindowFor(WindowQTD, now)
		if got.Start.Month() != tt.want {
			t.Errorf("QTD start month for %v = %v, want %v", tt.month, got.Start.Month(), tt.want)
		}
	}
}
