package handlers

import (
	"net/http"
	"time"

	"github.com/adliharahap/OffmodeStore-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Review Handlers ---
//

// ListProductReviews returns a product's reviews, newest first.
// GET /v1/products/:slug/reviews
func (h *Handlers) ListProductReviews(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT r.id, r.product_id, r.profile_id, r.rating, r.comment, r.created_at, pr.full_name
		FROM reviews r
		JOIN products p ON r.product_id = p.id
		JOIN profiles pr ON r.profile_id = pr.id
		WHERE p.slug = ?
		ORDER BY r.created_at DESC
		LIMIT 50`, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.ProfileID, &r.Rating, &r.Comment, &r.CreatedAt, &r.ReviewerName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan review row"})
			return
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating review rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

type CreateReviewInput struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"required"`
}

// CreateReview lets a signed-in customer review a product they have
// received. One review per profile per product.
// POST /v1/reviews
func (h *Handlers) CreateReview(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	var input CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only buyers with a delivered order containing the product may
	// review it.
	var delivered int
	err := h.DB.QueryRow(`
		SELECT COUNT(*)
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		JOIN product_variants v ON oi.variant_id = v.id
		WHERE o.profile_id = ? AND v.product_id = ? AND o.status = 'delivered'`,
		sess.ProfileID, input.ProductID).Scan(&delivered)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if delivered == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only review products from delivered orders"})
		return
	}

	_, err = h.DB.Exec(`
		INSERT INTO reviews (product_id, profile_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		input.ProductID, sess.ProfileID, input.Rating, input.Comment, time.Now())
	if err != nil {
		// Unique (product_id, profile_id) index rejects duplicates.
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review submitted"})
}
