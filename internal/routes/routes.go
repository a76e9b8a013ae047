package routes

import (
	"net/http"

	"github.com/adliharahap/OffmodeStore-sub001/internal/bot"
	"github.com/adliharahap/OffmodeStore-sub001/internal/config"
	"github.com/adliharahap/OffmodeStore-sub001/internal/handlers"
	"github.com/adliharahap/OffmodeStore-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the local frontend dev server to call us.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:5173")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupRouter wires the page routes (behind the access gate), the /v1
// API, and the Telegram webhook. The bot may be nil when no token is
// configured.
func SetupRouter(h *handlers.Handlers, gate *middleware.Gate, tgBot *bot.Bot) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())

	// Every request passes the gate; paths outside the configured
	// pattern set bypass it untouched.
	router.Use(gate.Middleware())

	router.Static("/uploads", "./uploads")

	// The shared redirect target for "doesn't exist" and "not allowed".
	router.GET(middleware.NotFoundPath, func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
	})

	//
	// --- Page routes (gated) ---
	//

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"page":  "home",
			"theme": config.ThemeFor(c.Request.URL.Path),
		})
	})
	router.GET("/login", func(c *gin.Context) {
		// The gate already bounced signed-in visitors home.
		c.JSON(http.StatusOK, gin.H{"page": "login"})
	})

	// Product detail: pass-through with the authentication annotation.
	router.GET("/product/:slug", h.GetProductBySlug)
	router.GET("/product/:slug/reviews", h.ListProductReviews)

	// Authenticated-user pages.
	router.GET("/cart", h.GetCart)
	router.GET("/profile", h.Me)
	router.GET("/checkout", h.GetCart) // checkout summary is the cart plus fees
	router.POST("/checkout", h.Checkout)
	router.GET("/orders-history", h.GetMyOrders)
	router.GET("/orders-history/:id", h.GetMyOrderDetails)

	// Admin pages, self-scoped under the session's own id segment.
	router.GET("/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"page":  "admin",
			"theme": config.ThemeFor(c.Request.URL.Path),
		})
	})
	adminPages := router.Group("/admin/:id")
	{
		adminPages.GET("/orders", h.ListOrders)
		adminPages.GET("/orders/:order_id", h.GetOrder)
		adminPages.GET("/users", h.ListProfiles)
		adminPages.GET("/analytics", h.GetDashboardKPI)
		adminPages.GET("/analytics/revenue-trend", h.GetRevenueTrend)
		adminPages.GET("/analytics/status-distribution", h.GetOrderStatusDistribution)
		adminPages.GET("/analytics/top-products", h.GetTopProducts)
		adminPages.GET("/analytics/stock-status", h.GetProductStockStatus)
	}

	//
	// --- API routes ---
	// Mutations never trust the gate: each one re-validates its own
	// session and role.
	//

	v1 := router.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})
		v1.GET("/theme", h.GetTheme)

		// Auth
		v1.POST("/auth/register", h.Register)
		v1.POST("/auth/login", h.Login)
		v1.POST("/auth/login-link", h.RequestLoginLink)
		v1.POST("/auth/exchange", h.ExchangeCode)
		v1.POST("/auth/logout", h.Logout)
		v1.GET("/profile/me", h.Me)

		// Catalogue
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/:slug", h.GetProductBySlug)
		v1.GET("/products/:slug/reviews", h.ListProductReviews)

		// Cart and checkout
		v1.GET("/cart", h.GetCart)
		v1.POST("/checkout", h.Checkout)
		v1.POST("/cart/items", h.AddToCart)
		v1.PUT("/cart/items/:variant_id", h.UpdateCartItem)
		v1.DELETE("/cart/items/:variant_id", h.DeleteCartItem)

		// Reviews
		v1.POST("/reviews", h.CreateReview)

		// Order history
		v1.GET("/orders-history", h.GetMyOrders)
		v1.GET("/orders-history/:id", h.GetMyOrderDetails)

		// Admin mutations and tools
		admin := v1.Group("/admin")
		{
			admin.POST("/products", h.CreateProduct)
			admin.PATCH("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)
			admin.PATCH("/variants/:id", h.UpdateVariant)
			admin.POST("/uploads", h.UploadProductImage)

			admin.GET("/users", h.ListProfiles)
			admin.GET("/users/:id", h.GetProfile)
			admin.PATCH("/users/:id/role", h.UpdateProfileRole)
			admin.DELETE("/users/:id", h.DeleteProfile)

			admin.GET("/analytics/kpi", h.GetDashboardKPI)
			admin.GET("/analytics/revenue-trend", h.GetRevenueTrend)
			admin.GET("/analytics/status-distribution", h.GetOrderStatusDistribution)
			admin.GET("/analytics/top-products", h.GetTopProducts)
			admin.GET("/analytics/stock-status", h.GetProductStockStatus)

			admin.GET("/orders", h.ListOrders)
			admin.GET("/orders/:id", h.GetOrder)
			admin.GET("/orders/:id/next-status", h.NextOrderStatus)
			admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)

			admin.POST("/ai/chat", h.ChatAI)
		}
	}

	// Telegram webhook
	if tgBot != nil {
		router.POST("/telegram/webhook", tgBot.WebhookHandler)
	}

	return router
}
