package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/adliharahap/OffmodeStore-sub001/internal/middleware"
	"github.com/adliharahap/OffmodeStore-sub001/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

//
// --- Public Product Handlers ---
//

// ListProducts returns the storefront catalogue.
// GET /v1/products
func (h *Handlers) ListProducts(c *gin.Context) {
	if payload, hit := h.Cache.Get(c.Request.Context(), "/products"); hit {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, slug, name, description, price, original_price, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
		LIMIT 100`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		var original sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.Price, &original, &p.CreatedAt, &p.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan product row"})
			return
		}
		if original.Valid {
			p.OriginalPrice = &original.Float64
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating product rows"})
		return
	}

	h.respondCached(c, "/products", gin.H{"products": products})
}

// GetProductBySlug returns a product detail page payload: the product,
// its variant matrix, images, and the discount badge when the pricing
// rule allows one. The gate annotated this request with the visitor's
// authentication state; the page uses it to decide whether to show the
// buy controls.
// GET /v1/products/:slug
func (h *Handlers) GetProductBySlug(c *gin.Context) {
	productSlug := c.Param("slug")

	var p models.Product
	var original sql.NullFloat64
	err := h.DB.QueryRow(`
		SELECT id, slug, name, description, price, original_price, created_at, updated_at
		FROM products WHERE slug = ?`, productSlug).
		Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.Price, &original, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if original.Valid {
		p.OriginalPrice = &original.Float64
	}

	if err := h.attachVariants(&p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load variants"})
		return
	}
	if err := h.attachImages(&p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load images"})
		return
	}

	payload := gin.H{
		"product":         p,
		"isAuthenticated": c.GetHeader(middleware.AuthenticatedHeader) == "true",
	}
	if pct, show := p.DiscountPercent(); show {
		payload["discountPercent"] = pct
	}

	c.JSON(http.StatusOK, payload)
}

func (h *Handlers) attachVariants(p *models.Product) error {
	rows, err := h.DB.Query(`
		SELECT id, product_id, color, size, price, stock, created_at, updated_at
		FROM product_variants WHERE product_id = ?
		ORDER BY color, size`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v models.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Color, &v.Size, &v.Price, &v.Stock, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return err
		}
		p.Variants = append(p.Variants, v)
	}
	return rows.Err()
}

func (h *Handlers) attachImages(p *models.Product) error {
	rows, err := h.DB.Query(`
		SELECT id, product_id, url, color
		FROM product_images WHERE product_id = ?
		ORDER BY id`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var img models.ProductImage
		var color sql.NullString
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &color); err != nil {
			return err
		}
		if color.Valid {
			img.Color = &color.String
		}
		p.Images = append(p.Images, img)
	}
	return rows.Err()
}

//
// --- Admin Product Handlers ---
//

type VariantInput struct {
	Color string  `json:"color" binding:"required"`
	Size  string  `json:"size" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
	Stock int     `json:"stock" binding:"gte=0"`
}

type ImageInput struct {
	URL   string  `json:"url" binding:"required"`
	Color *string `json:"color"`
}

type CreateProductInput struct {
	Name          string         `json:"name" binding:"required"`
	Description   string         `json:"description"`
	Price         float64        `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64       `json:"originalPrice"`
	Variants      []VariantInput `json:"variants" binding:"required,min=1,dive"`
	Images        []ImageInput   `json:"images" binding:"dive"`
}

// CreateProduct inserts a product and its dependent variant and image
// rows. The inserts are issued step by step; if a later step fails, the
// product row is deleted as compensation. Images already pushed to
// storage are NOT retracted by that compensation, a known gap kept as
// is until the intended partial-failure behavior is decided.
// POST /v1/admin/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	productSlug := slug.Make(input.Name)

	result, err := h.DB.Exec(`
		INSERT INTO products (slug, name, description, price, original_price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		productSlug, input.Name, input.Description, input.Price, input.OriginalPrice, now, now)
	if err != nil {
		mutationFailed(c, "Failed to create product")
		return
	}
	productID, err := result.LastInsertId()
	if err != nil {
		mutationFailed(c, "Failed to read new product ID")
		return
	}

	for _, v := range input.Variants {
		_, err := h.DB.Exec(`
			INSERT INTO product_variants (product_id, color, size, price, stock, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			productID, v.Color, v.Size, v.Price, v.Stock, now, now)
		if err != nil {
			h.compensateProductCreate(productID)
			mutationFailed(c, fmt.Sprintf("Failed to create variant %s/%s", v.Color, v.Size))
			return
		}
	}

	for _, img := range input.Images {
		_, err := h.DB.Exec(`
			INSERT INTO product_images (product_id, url, color)
			VALUES (?, ?, ?)`, productID, img.URL, img.Color)
		if err != nil {
			h.compensateProductCreate(productID)
			mutationFailed(c, "Failed to save product image")
			return
		}
	}

	h.Cache.Invalidate(c.Request.Context(), "/products")
	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Product created",
		"productId": productID,
		"slug":      productSlug,
	})
}

// compensateProductCreate deletes a half-created product. Dependent
// rows inserted before the failure ride on ON DELETE CASCADE; uploaded
// storage objects are not cleaned up here.
func (h *Handlers) compensateProductCreate(productID int64) {
	if _, err := h.DB.Exec("DELETE FROM products WHERE id = ?", productID); err != nil {
		log.Printf("WARNING: compensating delete of product %d failed: %v", productID, err)
	}
}

type UpdateProductInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
}

// UpdateProduct patches base product fields.
// PATCH /v1/admin/products/:id
func (h *Handlers) UpdateProduct(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Exec(`
		UPDATE products SET
			name = COALESCE(?, name),
			description = COALESCE(?, description),
			price = COALESCE(?, price),
			original_price = COALESCE(?, original_price),
			updated_at = ?
		WHERE id = ?`,
		input.Name, input.Description, input.Price, input.OriginalPrice, time.Now(), c.Param("id"))
	if err != nil {
		mutationFailed(c, "Failed to update product")
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, MutationResult{Success: false, Message: "Product not found"})
		return
	}

	h.Cache.Invalidate(c.Request.Context(), "/products")
	mutationOK(c, "Product updated")
}

type UpdateVariantInput struct {
	Price        *float64 `json:"price"`
	InheritPrice bool     `json:"inheritPrice"`
	Stock        *int     `json:"stock"`
}

// variantPriceState maps the edit-form input to the row's price state.
// An explicit price always overrides; without one the row inherits the
// product base price.
func variantPriceState(override *float64, base float64) models.VariantPrice {
	if override != nil {
		return models.OverriddenPrice(*override)
	}
	return models.InheritedPrice(base)
}

// UpdateVariant patches one variant row. Price edits go through the
// inherited/overridden resolution: an explicit price overrides the
// base, the inheritPrice flag returns the row to the product base
// price, and omitting both leaves the price untouched.
// PATCH /v1/admin/variants/:id
func (h *Handlers) UpdateVariant(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	var input UpdateVariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var newPrice *float64
	if input.Price != nil || input.InheritPrice {
		var base float64
		err := h.DB.QueryRow(`
			SELECT p.price FROM products p
			JOIN product_variants v ON v.product_id = p.id
			WHERE v.id = ?`, c.Param("id")).Scan(&base)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, MutationResult{Success: false, Message: "Variant not found"})
				return
			}
			mutationFailed(c, "Failed to load base price")
			return
		}
		resolved := variantPriceState(input.Price, base).Resolve(base)
		newPrice = &resolved
	}

	result, err := h.DB.Exec(`
		UPDATE product_variants SET
			price = COALESCE(?, price),
			stock = COALESCE(?, stock),
			updated_at = ?
		WHERE id = ?`, newPrice, input.Stock, time.Now(), c.Param("id"))
	if err != nil {
		mutationFailed(c, "Failed to update variant")
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, MutationResult{Success: false, Message: "Variant not found"})
		return
	}

	h.Cache.Invalidate(c.Request.Context(), "/products")
	mutationOK(c, "Variant updated")
}

// DeleteProduct removes a product; variants and images cascade.
// DELETE /v1/admin/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	result, err := h.DB.Exec("DELETE FROM products WHERE id = ?", c.Param("id"))
	if err != nil {
		mutationFailed(c, "Failed to delete product")
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, MutationResult{Success: false, Message: "Product not found"})
		return
	}

	h.Cache.Invalidate(c.Request.Context(), "/products")
	mutationOK(c, "Product deleted")
}

// UploadProductImage saves an uploaded file to the local uploads folder
// and returns its public URL. The URL is then attached to a product via
// CreateProduct/ImageInput.
// POST /v1/admin/uploads
func (h *Handlers) UploadProductImage(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	uploadPath := "./uploads"
	if _, err := os.Stat(uploadPath); os.IsNotExist(err) {
		os.Mkdir(uploadPath, 0755)
	}

	// Unique filename: uuid + original extension.
	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	savePath := filepath.Join(uploadPath, newFilename)

	if err := c.SaveUploadedFile(file, savePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url": fmt.Sprintf("%s/uploads/%s", h.BaseURL, newFilename),
	})
}
