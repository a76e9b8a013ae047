package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/adliharahap/OffmodeStore-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Customer Order Handlers ---
//

// GetMyOrders returns the signed-in profile's order history, newest
// first. Other profiles' orders are unreachable by construction: the
// query is scoped to the session id.
// GET /v1/orders-history
func (h *Handlers) GetMyOrders(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, profile_id, status, total_amount, payment_method,
		       shipping_address, shipping_cost, admin_fee, tracking_number, created_at, updated_at
		FROM orders
		WHERE profile_id = ?
		ORDER BY created_at DESC`, sess.ProfileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetMyOrderDetails returns one of the profile's own orders with items.
// GET /v1/orders-history/:id
func (h *Handlers) GetMyOrderDetails(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	order, err := h.loadOrder(c.Param("id"), &sess.ProfileID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

//
// --- Admin Order Handlers ---
//

// ListOrders returns the back-office order table, optionally filtered
// by status.
// GET /v1/admin/orders
func (h *Handlers) ListOrders(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	status := c.Query("status")

	// The unfiltered table is the hot path; it is the view every
	// order mutation invalidates.
	if status == "" {
		if payload, hit := h.Cache.Get(c.Request.Context(), "/admin/orders"); hit {
			c.Data(http.StatusOK, "application/json", payload)
			return
		}
	}

	query := `
		SELECT o.id, o.profile_id, o.status, o.total_amount, o.payment_method,
		       o.shipping_address, o.shipping_cost, o.admin_fee, o.tracking_number,
		       o.created_at, o.updated_at, pr.full_name
		FROM orders o
		JOIN profiles pr ON o.profile_id = pr.id`
	args := []interface{}{}

	if status != "" {
		query += " WHERE o.status = ?"
		args = append(args, status)
	}
	query += " ORDER BY o.created_at DESC LIMIT 200"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.ProfileID, &o.Status, &o.TotalAmount, &o.PaymentMethod,
			&o.ShippingAddress, &o.ShippingCost, &o.AdminFee, &o.TrackingNumber,
			&o.CreatedAt, &o.UpdatedAt, &o.CustomerName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order row"})
			return
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating order rows"})
		return
	}

	if status == "" {
		h.respondCached(c, "/admin/orders", gin.H{"orders": orders})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder returns one order with its items for the back office.
// GET /v1/admin/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	// The back-office page mounts this under /admin/:id/orders/:order_id,
	// where :id is the admin's own profile segment.
	orderID := c.Param("order_id")
	if orderID == "" {
		orderID = c.Param("id")
	}

	order, err := h.loadOrder(orderID, nil)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending paid shipped delivered cancelled"`
}

// UpdateOrderStatus moves an order forward through the fixed next-step
// mapping. Role membership is re-checked here regardless of what the
// gate decided earlier.
// PATCH /v1/admin/orders/:id/status
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID := c.Param("id")

	var current string
	err := h.DB.QueryRow("SELECT status FROM orders WHERE id = ?", orderID).Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, MutationResult{Success: false, Message: "Order not found"})
			return
		}
		mutationFailed(c, "Failed to load order")
		return
	}

	if !models.CanTransition(current, input.Status) {
		c.JSON(http.StatusConflict, MutationResult{
			Success: false,
			Message: fmt.Sprintf("Cannot move order from %s to %s", current, input.Status),
		})
		return
	}

	// Guard on the current status so concurrent updates cannot race
	// past the transition check.
	result, err := h.DB.Exec(`
		UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		input.Status, time.Now(), orderID, current)
	if err != nil {
		mutationFailed(c, "Failed to update order status")
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusConflict, MutationResult{Success: false, Message: "Order status changed concurrently"})
		return
	}

	h.Cache.Invalidate(c.Request.Context(), "/admin/orders")
	mutationOK(c, fmt.Sprintf("Order moved to %s", input.Status))
}

// NextOrderStatus tells the UI which single forward step an order has,
// if any. Pending resolves by explicit choice and reports none.
// GET /v1/admin/orders/:id/next-status
func (h *Handlers) NextOrderStatus(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	var current string
	err := h.DB.QueryRow("SELECT status FROM orders WHERE id = ?", c.Param("id")).Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	next, has := models.NextStatus(current)
	c.JSON(http.StatusOK, gin.H{"current": current, "next": next, "hasNext": has})
}

//
// --- Shared helpers ---
//

// loadOrder reads one order and its items. When ownerID is non-nil the
// order must belong to that profile.
func (h *Handlers) loadOrder(orderID string, ownerID *int64) (*models.Order, error) {
	query := `
		SELECT o.id, o.profile_id, o.status, o.total_amount, o.payment_method,
		       o.shipping_address, o.shipping_cost, o.admin_fee, o.tracking_number,
		       o.created_at, o.updated_at, pr.full_name
		FROM orders o
		JOIN profiles pr ON o.profile_id = pr.id
		WHERE o.id = ?`
	args := []interface{}{orderID}
	if ownerID != nil {
		query += " AND o.profile_id = ?"
		args = append(args, *ownerID)
	}

	var o models.Order
	err := h.DB.QueryRow(query, args...).Scan(
		&o.ID, &o.ProfileID, &o.Status, &o.TotalAmount, &o.PaymentMethod,
		&o.ShippingAddress, &o.ShippingCost, &o.AdminFee, &o.TrackingNumber,
		&o.CreatedAt, &o.UpdatedAt, &o.CustomerName)
	if err != nil {
		return nil, err
	}

	rows, err := h.DB.Query(`
		SELECT oi.id, oi.order_id, oi.variant_id, oi.quantity, oi.price_at_purchase,
		       oi.created_at, p.name, v.color, v.size
		FROM order_items oi
		JOIN product_variants v ON oi.variant_id = v.id
		JOIN products p ON v.product_id = p.id
		WHERE oi.order_id = ?
		ORDER BY oi.id`, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.VariantID, &item.Quantity,
			&item.PriceAtPurchase, &item.CreatedAt, &item.ProductName, &item.Color, &item.Size); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return &o, rows.Err()
}

func scanOrders(rows *sql.Rows) ([]*models.Order, error) {
	var orders []*models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.ProfileID, &o.Status, &o.TotalAmount, &o.PaymentMethod,
			&o.ShippingAddress, &o.ShippingCost, &o.AdminFee, &o.TrackingNumber,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}
