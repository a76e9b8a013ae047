package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/adliharahap/OffmodeStore-sub001/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// --- Cart Handlers ---
//

// getOrCreateCartID finds the profile's cart or creates one. Must be
// called inside a transaction.
func (h *Handlers) getOrCreateCartID(tx *sql.Tx, profileID int64) (int64, error) {
	var cartID int64
	err := tx.QueryRow("SELECT id FROM carts WHERE profile_id = ?", profileID).Scan(&cartID)
	if err == nil {
		return cartID, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	now := time.Now()
	result, err := tx.Exec("INSERT INTO carts (profile_id, created_at, updated_at) VALUES (?, ?, ?)",
		profileID, now, now)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

type AddToCartInput struct {
	VariantID int64 `json:"variant_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// AddToCart upserts a variant into the profile's cart.
// POST /v1/cart/items
func (h *Handlers) AddToCart(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	cartID, err := h.getOrCreateCartID(tx, sess.ProfileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart initialization failed"})
		return
	}

	var stock int
	err = tx.QueryRow("SELECT stock FROM product_variants WHERE id = ?", input.VariantID).Scan(&stock)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if stock < input.Quantity {
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock"})
		return
	}

	_, err = tx.Exec(`
		INSERT INTO cart_items (cart_id, variant_id, quantity, updated_at)
		VALUES (?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			quantity = quantity + VALUES(quantity),
			updated_at = NOW()`,
		cartID, input.VariantID, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart"})
}

// CartItemResponse is one row of the cart view.
type CartItemResponse struct {
	VariantID   int64   `json:"variantId"`
	ProductName string  `json:"productName"`
	Color       string  `json:"color"`
	Size        string  `json:"size"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Stock       int     `json:"stock"`
}

// GetCart returns the profile's cart contents with current prices.
// GET /v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	rows, err := h.DB.Query(`
		SELECT ci.variant_id, p.name, v.color, v.size, ci.quantity, v.price, v.stock
		FROM cart_items ci
		JOIN carts ct ON ci.cart_id = ct.id
		JOIN product_variants v ON ci.variant_id = v.id
		JOIN products p ON v.product_id = p.id
		WHERE ct.profile_id = ?
		ORDER BY ci.id`, sess.ProfileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	var items []CartItemResponse
	var total float64
	for rows.Next() {
		var item CartItemResponse
		if err := rows.Scan(&item.VariantID, &item.ProductName, &item.Color, &item.Size,
			&item.Quantity, &item.UnitPrice, &item.Stock); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan cart item"})
			return
		}
		total += item.UnitPrice * float64(item.Quantity)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating cart rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

// UpdateCartItem sets a cart line's quantity.
// PUT /v1/cart/items/:variant_id
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	var input struct {
		Quantity int `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Exec(`
		UPDATE cart_items ci
		JOIN carts ct ON ci.cart_id = ct.id
		SET ci.quantity = ?, ci.updated_at = NOW()
		WHERE ct.profile_id = ? AND ci.variant_id = ?`,
		input.Quantity, sess.ProfileID, c.Param("variant_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

// DeleteCartItem removes a line from the cart.
// DELETE /v1/cart/items/:variant_id
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	_, err := h.DB.Exec(`
		DELETE ci FROM cart_items ci
		JOIN carts ct ON ci.cart_id = ct.id
		WHERE ct.profile_id = ? AND ci.variant_id = ?`,
		sess.ProfileID, c.Param("variant_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

//
// --- Checkout ---
//

// adminFees per payment method.
var adminFees = map[string]float64{
	"transfer": 0,
	"ewallet":  1500,
	"cod":      2500,
}

type CheckoutInput struct {
	PaymentMethod   string  `json:"paymentMethod" binding:"required,oneof=transfer ewallet cod"`
	ShippingAddress string  `json:"shippingAddress" binding:"required"`
	ShippingCost    float64 `json:"shippingCost" binding:"gte=0"`
}

// cartLine is a helper for reading cart contents during checkout.
type cartLine struct {
	VariantID int64
	Quantity  int
	Price     float64 // current variant price, snapshotted into the order
	Stock     int
}

// Checkout turns the cart into a pending order. Item prices are
// snapshotted at this moment and never change afterwards.
// POST /v1/checkout
func (h *Handlers) Checkout(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.DB.BeginTx(c, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	var cartID int64
	err = tx.QueryRow("SELECT id FROM carts WHERE profile_id = ?", sess.ProfileID).Scan(&cartID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find cart"})
		return
	}

	// Lock the variant rows while we check stock and snapshot prices.
	rows, err := tx.Query(`
		SELECT ci.variant_id, ci.quantity, v.price, v.stock
		FROM cart_items ci
		JOIN product_variants v ON ci.variant_id = v.id
		WHERE ci.cart_id = ?
		FOR UPDATE`, cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart items"})
		return
	}
	defer rows.Close()

	var lines []cartLine
	var subtotal float64
	for rows.Next() {
		var line cartLine
		if err := rows.Scan(&line.VariantID, &line.Quantity, &line.Price, &line.Stock); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan cart item"})
			return
		}
		if line.Stock < line.Quantity {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Not enough stock for variant ID %d", line.VariantID)})
			return
		}
		subtotal += line.Price * float64(line.Quantity)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating cart rows"})
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		return
	}

	adminFee := adminFees[input.PaymentMethod]
	total := subtotal + input.ShippingCost + adminFee
	now := time.Now()
	tracking := fmt.Sprintf("OFF-%s", uuid.New().String()[:8])

	result, err := tx.Exec(`
		INSERT INTO orders (profile_id, status, total_amount, payment_method,
			shipping_address, shipping_cost, admin_fee, tracking_number, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ProfileID, models.StatusPending, total, input.PaymentMethod,
		input.ShippingAddress, input.ShippingCost, adminFee, tracking, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new order ID"})
		return
	}

	for _, line := range lines {
		// Snapshot the line, then reserve the stock.
		_, err := tx.Exec(`
			INSERT INTO order_items (order_id, variant_id, quantity, price_at_purchase, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			orderID, line.VariantID, line.Quantity, line.Price, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order item"})
			return
		}
		_, err = tx.Exec("UPDATE product_variants SET stock = stock - ? WHERE id = ?",
			line.Quantity, line.VariantID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deduct stock"})
			return
		}
	}

	if _, err := tx.Exec("DELETE FROM cart_items WHERE cart_id = ?", cartID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	h.Cache.Invalidate(c.Request.Context(), "/admin/orders")
	c.JSON(http.StatusCreated, gin.H{
		"message":        "Order created",
		"orderId":        orderID,
		"status":         models.StatusPending,
		"total":          total,
		"trackingNumber": tracking,
	})
}
