package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/adliharahap/OffmodeStore-sub001/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Caps for each context section. The snapshot must stay bounded no
// matter how much data the store accumulates.
const (
	topProductsCap  = 50
	recentOrdersCap = 10
	profilesCap     = 20
	reviewsCap      = 5
	lowStockCap     = 10
	lowStockLimit   = 10 // units; below this a variant counts as low stock
)

// Snapshot is the raw material of the business context. Every field is
// filled by its own fetch; a failed fetch leaves the zero value, which
// renders as an empty section.
type Snapshot struct {
	MTD          models.DashboardKPI
	YTD          models.DashboardKPI
	TopProducts  []models.TopProduct
	RecentOrders []models.Order
	Profiles     []models.Profile
	Reviews      []models.Review
	TodayOrders  int
	TodayRevenue float64
	LowStock     []models.StockStatus
}

// BuildBusinessContext assembles a bounded natural-language snapshot of
// the store for the AI prompt. All sub-fetches run concurrently; each
// writes a disjoint Snapshot field, so the join needs no ordering and
// no locking. Individual failures are swallowed; partial data beats no
// data for a conversational assistant.
func (s *Service) BuildBusinessContext(ctx context.Context) string {
	now := time.Now()
	snap := &Snapshot{}

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() { snap.MTD, _ = s.fetchKPI(ctx, models.WindowFor(models.WindowMTD, now)) })
	run(func() { snap.YTD, _ = s.fetchKPI(ctx, models.WindowFor(models.WindowYTD, now)) })
	run(func() { snap.TopProducts, _ = s.fetchTopProducts(ctx) })
	run(func() { snap.RecentOrders, _ = s.fetchRecentOrders(ctx) })
	run(func() { snap.Profiles, _ = s.fetchProfiles(ctx) })
	run(func() { snap.Reviews, _ = s.fetchReviews(ctx) })
	run(func() { snap.TodayOrders, snap.TodayRevenue, _ = s.fetchTodayOrders(ctx, now) })
	run(func() { snap.LowStock, _ = s.fetchLowStock(ctx) })
	wg.Wait()

	return ComposeContext(snap, now)
}

// ComposeContext renders a snapshot into the prompt text.
func ComposeContext(snap *Snapshot, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Offmode Store business snapshot (%s) ===\n\n", now.Format("2 January 2006 15:04"))

	fmt.Fprintf(&b, "This month so far: revenue %s from %d orders (avg %s per order).\n",
		FormatIDR(snap.MTD.Revenue), snap.MTD.OrderCount, FormatIDR(snap.MTD.AvgOrderValue))
	fmt.Fprintf(&b, "This year so far: revenue %s from %d orders, %d registered customers.\n",
		FormatIDR(snap.YTD.Revenue), snap.YTD.OrderCount, snap.YTD.CustomerCount)
	fmt.Fprintf(&b, "Today: %d orders totalling %s.\n\n", snap.TodayOrders, FormatIDR(snap.TodayRevenue))

	if len(snap.TopProducts) > 0 {
		b.WriteString("Top selling products:\n")
		for _, p := range snap.TopProducts {
			fmt.Fprintf(&b, "- %s: %d sold, %s revenue\n", p.Name, p.UnitsSold, FormatIDR(p.Revenue))
		}
		b.WriteString("\n")
	}

	if len(snap.RecentOrders) > 0 {
		b.WriteString("Recent orders:\n")
		for _, o := range snap.RecentOrders {
			fmt.Fprintf(&b, "- #%d %s, %s, status %s (%s)\n",
				o.ID, o.CustomerName, FormatIDR(o.TotalAmount), o.Status, o.CreatedAt.Format("2 Jan 15:04"))
		}
		b.WriteString("\n")
	}

	if len(snap.LowStock) > 0 {
		fmt.Fprintf(&b, "Low stock (below %d units):\n", lowStockLimit)
		for _, v := range snap.LowStock {
			fmt.Fprintf(&b, "- %s %s/%s: %d left\n", v.Name, v.Color, v.Size, v.Stock)
		}
		b.WriteString("\n")
	}

	if len(snap.Reviews) > 0 {
		b.WriteString("Latest reviews:\n")
		for _, r := range snap.Reviews {
			fmt.Fprintf(&b, "- %s on %s: %d/5: %s\n", r.ReviewerName, r.ProductName, r.Rating, r.Comment)
		}
		b.WriteString("\n")
	}

	if len(snap.Profiles) > 0 {
		fmt.Fprintf(&b, "Recently registered profiles (%d shown):\n", len(snap.Profiles))
		for _, p := range snap.Profiles {
			fmt.Fprintf(&b, "- %s (%s, joined %s)\n", p.FullName, p.Role, p.CreatedAt.Format("2 Jan 2006"))
		}
	}

	return b.String()
}

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount as Indonesian Rupiah with locale
// grouping, e.g. 1500000 -> "Rp 1.500.000".
func FormatIDR(v float64) string {
	return idPrinter.Sprintf("Rp %v", number.Decimal(v, number.MaxFractionDigits(0)))
}

//
// --- Sub-fetches ---
//

func (s *Service) fetchKPI(ctx context.Context, w models.Window) (models.DashboardKPI, error) {
	var kpi models.DashboardKPI
	err := s.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM orders
		WHERE status <> 'cancelled' AND created_at >= ? AND created_at < ?`,
		w.Start, w.End).Scan(&kpi.Revenue, &kpi.OrderCount)
	if err != nil {
		return models.DashboardKPI{}, err
	}
	if kpi.OrderCount > 0 {
		kpi.AvgOrderValue = kpi.Revenue / float64(kpi.OrderCount)
	}

	// Same windowed count the dashboard reports, so the assistant and
	// the back office never disagree on customer numbers.
	err = s.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM profiles
		WHERE role = 'customer' AND created_at >= ? AND created_at < ?`,
		w.Start, w.End).Scan(&kpi.CustomerCount)
	if err != nil {
		return models.DashboardKPI{}, err
	}
	return kpi, nil
}

func (s *Service) fetchTopProducts(ctx context.Context) ([]models.TopProduct, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT p.id, p.name, SUM(oi.quantity), SUM(oi.quantity * oi.price_at_purchase)
		FROM order_items oi
		JOIN product_variants v ON oi.variant_id = v.id
		JOIN products p ON v.product_id = p.id
		JOIN orders o ON oi.order_id = o.id
		WHERE o.status <> 'cancelled'
		GROUP BY p.id, p.name
		ORDER BY SUM(oi.quantity) DESC
		LIMIT ?`, topProductsCap)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TopProduct
	for rows.Next() {
		var p models.TopProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.UnitsSold, &p.Revenue); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Service) fetchRecentOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT o.id, o.status, o.total_amount, o.created_at, pr.full_name
		FROM orders o
		JOIN profiles pr ON o.profile_id = pr.id
		ORDER BY o.created_at DESC
		LIMIT ?`, recentOrdersCap)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.CustomerName); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *Service) fetchProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, full_name, role, created_at
		FROM profiles
		ORDER BY created_at DESC
		LIMIT ?`, profilesCap)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.Role, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Service) fetchReviews(ctx context.Context) ([]models.Review, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT r.id, r.rating, r.comment, pr.full_name, p.name
		FROM reviews r
		JOIN profiles pr ON r.profile_id = pr.id
		JOIN products p ON r.product_id = p.id
		ORDER BY r.created_at DESC
		LIMIT ?`, reviewsCap)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.Rating, &r.Comment, &r.ReviewerName, &r.ProductName); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Service) fetchTodayOrders(ctx context.Context, now time.Time) (int, float64, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var count int
	var revenue float64
	err := s.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE created_at >= ? AND status <> 'cancelled'`, dayStart).Scan(&count, &revenue)
	if err != nil {
		return 0, 0, err
	}
	return count, revenue, nil
}

func (s *Service) fetchLowStock(ctx context.Context) ([]models.StockStatus, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT p.id, p.name, v.color, v.size, v.stock
		FROM product_variants v
		JOIN products p ON v.product_id = p.id
		WHERE v.stock < ?
		ORDER BY v.stock ASC
		LIMIT ?`, lowStockLimit, lowStockCap)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.StockStatus
	for rows.Next() {
		var st models.StockStatus
		if err := rows.Scan(&st.ProductID, &st.Name, &st.Color, &st.Size, &st.Stock); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
