package models

import (
	"math"
	"time"
)

// Product is the model for the 'products' table.
type Product struct {
	ID            int64    `json:"id" db:"id"`
	Slug          string   `json:"slug" db:"slug"`
	Name          string   `json:"name" db:"name"`
	Description   string   `json:"description" db:"description"`
	Price         float64  `json:"price" db:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty" db:"original_price"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joins (populated manually)
	Images   []ProductImage   `json:"images,omitempty" db:"-"`
	Variants []ProductVariant `json:"variants,omitempty" db:"-"`
}

// DiscountPercent returns the discount badge percentage for the
// product, and whether a badge should be shown at all. The badge only
// appears when the original price is a real markdown source: greater
// than zero and strictly above the sale price.
func (p *Product) DiscountPercent() (int, bool) {
	if p.OriginalPrice == nil {
		return 0, false
	}
	return DiscountPercent(p.Price, *p.OriginalPrice)
}

// DiscountPercent computes round((original-sale)/original*100).
func DiscountPercent(sale, original float64) (int, bool) {
	if original <= 0 || original <= sale {
		return 0, false
	}
	return int(math.Round((original - sale) / original * 100)), true
}

// ProductVariant is the model for the 'product_variants' table.
// Variants are keyed by (color, size) and carry independent price and
// stock.
type ProductVariant struct {
	ID        int64     `json:"id" db:"id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Color     string    `json:"color" db:"color"`
	Size      string    `json:"size" db:"size"`
	Price     float64   `json:"price" db:"price"`
	Stock     int       `json:"stock" db:"stock"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductImage is the model for the 'product_images' table. An image
// may be linked to a color so the gallery can follow variant selection.
type ProductImage struct {
	ID        int64   `json:"id" db:"id"`
	ProductID int64   `json:"productId" db:"product_id"`
	URL       string  `json:"url" db:"url"`
	Color     *string `json:"color,omitempty" db:"color"`
}

// Review is the model for the 'reviews' table.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	ProductID int64     `json:"productId" db:"product_id"`
	ProfileID int64     `json:"profileId" db:"profile_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	ReviewerName string `json:"reviewerName,omitempty" db:"-"`
	ProductName  string `json:"productName,omitempty" db:"-"`
}
