package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/adliharahap/OffmodeStore-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Admin: Analytics Dashboard ---
//
// Every handler recomputes its snapshot from a reporting window passed
// as ?window=mtd|qtd|ytd. Nothing here is persisted; the short-lived
// Redis view cache is the only reuse between requests.
//

// GetDashboardKPI returns the headline numbers for a window.
// GET /v1/admin/analytics/kpi
func (h *Handlers) GetDashboardKPI(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	window := models.WindowFor(c.DefaultQuery("window", models.WindowMTD), time.Now())
	cacheKey := "/admin/analytics/kpi?" + c.DefaultQuery("window", models.WindowMTD)

	if payload, hit := h.Cache.Get(c.Request.Context(), cacheKey); hit {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	var kpi models.DashboardKPI
	err := h.DB.QueryRow(`
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM orders
		WHERE status <> 'cancelled' AND created_at >= ? AND created_at < ?`,
		window.Start, window.End).Scan(&kpi.Revenue, &kpi.OrderCount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute KPI"})
		return
	}
	if kpi.OrderCount > 0 {
		kpi.AvgOrderValue = kpi.Revenue / float64(kpi.OrderCount)
	}

	err = h.DB.QueryRow(`
		SELECT COUNT(*) FROM profiles
		WHERE role = 'customer' AND created_at >= ? AND created_at < ?`,
		window.Start, window.End).Scan(&kpi.CustomerCount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count customers"})
		return
	}

	h.respondCached(c, cacheKey, kpi)
}

// GetRevenueTrend returns the per-day revenue series for a window.
// GET /v1/admin/analytics/revenue-trend
func (h *Handlers) GetRevenueTrend(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	window := models.WindowFor(c.DefaultQuery("window", models.WindowMTD), time.Now())

	rows, err := h.DB.Query(`
		SELECT DATE(created_at) AS day, COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE status <> 'cancelled' AND created_at >= ? AND created_at < ?
		GROUP BY DATE(created_at)
		ORDER BY day`, window.Start, window.End)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	// Empty is valid: no rows renders as "no data".
	points := []models.RevenuePoint{}
	for rows.Next() {
		var pt models.RevenuePoint
		if err := rows.Scan(&pt.Day, &pt.Revenue); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan trend row"})
			return
		}
		points = append(points, pt)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating trend rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": points})
}

// GetOrderStatusDistribution counts orders per status for a window.
// GET /v1/admin/analytics/status-distribution
func (h *Handlers) GetOrderStatusDistribution(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	window := models.WindowFor(c.DefaultQuery("window", models.WindowMTD), time.Now())

	rows, err := h.DB.Query(`
		SELECT status, COUNT(*)
		FROM orders
		WHERE created_at >= ? AND created_at < ?
		GROUP BY status`, window.Start, window.End)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	counts := []models.StatusCount{}
	for rows.Next() {
		var sc models.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan status row"})
			return
		}
		counts = append(counts, sc)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating status rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"distribution": counts})
}

// GetTopProducts ranks products by units sold in a window.
// GET /v1/admin/analytics/top-products
func (h *Handlers) GetTopProducts(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	window := models.WindowFor(c.DefaultQuery("window", models.WindowMTD), time.Now())

	rows, err := h.DB.Query(`
		SELECT p.id, p.name, SUM(oi.quantity), SUM(oi.quantity * oi.price_at_purchase)
		FROM order_items oi
		JOIN product_variants v ON oi.variant_id = v.id
		JOIN products p ON v.product_id = p.id
		JOIN orders o ON oi.order_id = o.id
		WHERE o.status <> 'cancelled' AND o.created_at >= ? AND o.created_at < ?
		GROUP BY p.id, p.name
		ORDER BY SUM(oi.quantity) DESC
		LIMIT 50`, window.Start, window.End)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	top := []models.TopProduct{}
	for rows.Next() {
		var tp models.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.UnitsSold, &tp.Revenue); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan product row"})
			return
		}
		top = append(top, tp)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating product rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"topProducts": top})
}

// GetProductStockStatus lists variant stock levels, lowest first. The
// only analytics call without a window parameter.
// GET /v1/admin/analytics/stock-status
func (h *Handlers) GetProductStockStatus(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	rows, err := h.DB.Query(`
		SELECT p.id, p.name, v.color, v.size, v.stock
		FROM product_variants v
		JOIN products p ON v.product_id = p.id
		ORDER BY v.stock ASC, p.name
		LIMIT 200`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	stock := []models.StockStatus{}
	for rows.Next() {
		var st models.StockStatus
		if err := rows.Scan(&st.ProductID, &st.Name, &st.Color, &st.Size, &st.Stock); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan stock row"})
			return
		}
		stock = append(stock, st)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating stock rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

// respondCached writes a JSON body and stores it in the view cache.
func (h *Handlers) respondCached(c *gin.Context, cacheKey string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode response"})
		return
	}
	h.Cache.Set(c.Request.Context(), cacheKey, payload)
	c.Data(http.StatusOK, "application/json", payload)
}
