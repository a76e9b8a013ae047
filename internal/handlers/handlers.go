package handlers

import (
	"database/sql"
	"net/http"

	"github.com/adliharahap/OffmodeStore-sub001/internal/ai"
	"github.com/adliharahap/OffmodeStore-sub001/internal/auth"
	"github.com/adliharahap/OffmodeStore-sub001/internal/cache"
	"github.com/adliharahap/OffmodeStore-sub001/internal/config"
	"github.com/adliharahap/OffmodeStore-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

// Handlers holds all dependencies for our handlers.
type Handlers struct {
	DB        *sql.DB
	Cache     *cache.ViewCache
	AIService *ai.Service

	Sessions auth.SessionResolver
	Roles    auth.RoleLookup

	JWTSecret []byte
	BaseURL   string
}

// MutationResult is the structured outcome every role-gated mutation
// returns. Failures are reported here, never thrown at a global error
// surface.
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func mutationDenied(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, MutationResult{Success: false, Message: message})
}

func mutationFailed(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, MutationResult{Success: false, Message: message})
}

func mutationOK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MutationResult{Success: true, Message: message})
}

// currentSession re-resolves the session from the request cookie.
func (h *Handlers) currentSession(c *gin.Context) auth.Session {
	cookieValue, _ := c.Cookie(auth.SessionCookie)
	return h.Sessions.Resolve(c.Request.Context(), cookieValue)
}

// requireSession aborts with 401 when the request carries no valid
// session. Handlers behind the gate still call this: the gate protects
// page routes, the handler protects itself.
func (h *Handlers) requireSession(c *gin.Context) (auth.Session, bool) {
	sess := h.currentSession(c)
	if sess.Anonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return auth.Session{}, false
	}
	return sess, true
}

// requireAdmin re-resolves the session and re-checks role membership
// against the admin set. Every mutation runs this independently; the
// gate's earlier decision is not trusted as sufficient for writes.
func (h *Handlers) requireAdmin(c *gin.Context) (auth.Session, string, bool) {
	sess := h.currentSession(c)
	if sess.Anonymous() {
		mutationDenied(c, "Not authorized")
		return auth.Session{}, "", false
	}
	role, err := h.Roles.Role(c.Request.Context(), sess.ProfileID)
	if err != nil || !models.IsAdminRole(role) {
		// Lookup failure denies, same as a bad role.
		mutationDenied(c, "Not authorized")
		return auth.Session{}, "", false
	}
	return sess, role, true
}

// GetTheme resolves the route-scoped theme for a path.
// GET /v1/theme?path=/admin/7/orders
func (h *Handlers) GetTheme(c *gin.Context) {
	path := c.DefaultQuery("path", "/")
	c.JSON(http.StatusOK, config.ThemeFor(path))
}
