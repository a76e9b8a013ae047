package ai

import (
	"strings"
	"testing"
	"time"

	"github.com/adliharahap/OffmodeStore-sub001/internal/models"
)

func TestFormatIDR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Rp 0"},
		{1500, "Rp 1.500"},
		{1500000, "Rp 1.500.000"},
		{249999.6, "Rp 250.000"},
	}
	for _, tt := range tests {
		if got := FormatIDR(tt.in); got != tt.want {
			t.Errorf("FormatIDR(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestComposeContext(t *testing.T) {
	now := time.Date(2025, time.August, 15, 10, 0, 0, 0, time.UTC)
	snap := &Snapshot{
		MTD:          models.DashboardKPI{Revenue: 5000000, OrderCount: 10, AvgOrderValue: 500000},
		YTD:          models.DashboardKPI{Revenue: 42000000, OrderCount: 120, CustomerCount: 80},
		TodayOrders:  3,
		TodayRevenue: 900000,
		TopProducts: []models.TopProduct{
			{ProductID: 1, Name: "Kaos Hitam", UnitsSold: 40, Revenue: 4000000},
		},
		LowStock: []models.StockStatus{
			{ProductID: 1, Name: "Kaos Hitam", Color: "hitam", Size: "L", Stock: 2},
		},
	}

	got := ComposeContext(snap, now)

	for _, want := range []string{
		"Rp 5.000.000",
		"10 orders",
		"Rp 42.000.000",
		"80 registered customers",
		"Today: 3 orders totalling Rp 900.000.",
		"Kaos Hitam: 40 sold",
		"Kaos Hitam hitam/L: 2 left",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("context missing %q\n--- got ---\n%s", want, got)
		}
	}

	// Sections with no data must simply disappear, never error.
	if strings.Contains(got, "Latest reviews") {
		t.Error("empty reviews section should be omitted")
	}
	if strings.Contains(got, "Recent orders") {
		t.Error("empty recent orders section should be omitted")
	}
}

func TestComposeContextEmptySnapshot(t *testing.T) {
	// A snapshot where every fetch failed still renders the headline
	// numbers as zeroes: partial data over no data.
	got := ComposeContext(&Snapshot{}, time.Now())
	if !strings.Contains(got, "Rp 0") {
		t.Errorf("empty snapshot should render zero amounts, got:\n%s", got)
	}
}
