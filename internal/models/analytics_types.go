package models

import "time"

// Reporting window kinds.
const (
	WindowMTD = "mtd"
	WindowQTD = "qtd"
	WindowYTD = "ytd"
)

// Window is a [Start, End) reporting interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor resolves a reporting window kind against "now". MTD starts
// on day 1 of the current month, QTD on day 1 of the current quarter,
// YTD on January 1. Unknown kinds fall back to MTD.
func WindowFor(kind string, now time.Time) Window {
	loc := now.Location()
	switch kind {
	case WindowYTD:
		return Window{Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc), End: now}
	case WindowQTD:
		qStart := time.Month(((int(now.Month())-1)/3)*3 + 1)
		return Window{Start: time.Date(now.Year(), qStart, 1, 0, 0, 0, 0, loc), End: now}
	default:
		return Window{Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), End: now}
	}
}

// DashboardKPI mirrors the get_dashboard_kpi aggregate.
type DashboardKPI struct {
	Revenue       float64 `json:"revenue"`
	OrderCount    int     `json:"orderCount"`
	CustomerCount int     `json:"customerCount"`
	AvgOrderValue float64 `json:"avgOrderValue"`
}

// RevenuePoint is one row of the revenue trend series.
type RevenuePoint struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
}

// StatusCount is one row of the order status distribution.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// TopProduct is one row of the top products listing.
type TopProduct struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	UnitsSold int     `json:"unitsSold"`
	Revenue   float64 `json:"revenue"`
}

// StockStatus is one row of the product stock report.
type StockStatus struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Stock     int    `json:"stock"`
}
