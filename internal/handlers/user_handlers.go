package handlers

import (
	"database/sql"
	"net/http"

	"github.com/adliharahap/OffmodeStore-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Admin: User Management ---
//

// ListProfiles returns the back-office user table.
// GET /v1/admin/users
func (h *Handlers) ListProfiles(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	if payload, hit := h.Cache.Get(c.Request.Context(), "/admin/users"); hit {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, role, email, full_name, phone_number, avatar_url, created_at
		FROM profiles
		ORDER BY created_at DESC
		LIMIT 200`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var p models.Profile
		var avatar sql.NullString
		if err := rows.Scan(&p.ID, &p.Role, &p.Email, &p.FullName, &p.PhoneNumber, &avatar, &p.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan profile row"})
			return
		}
		if avatar.Valid {
			p.AvatarURL = &avatar.String
		}
		profiles = append(profiles, &p)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating profile rows"})
		return
	}

	h.respondCached(c, "/admin/users", gin.H{"users": profiles})
}

// GetProfile returns one profile for the back-office user detail view.
// GET /v1/admin/users/:id
func (h *Handlers) GetProfile(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	target, err := h.loadProfile(c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": target})
}

type UpdateRoleInput struct {
	Role string `json:"role" binding:"required,oneof=admin pegawai customer"`
}

// UpdateProfileRole changes a profile's role. The owner cannot be
// demoted, and this surface never promotes anyone to owner. Both are
// rejected before any write is issued.
// PATCH /v1/admin/users/:id/role
func (h *Handlers) UpdateProfileRole(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	var input UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, err := h.loadProfile(c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, MutationResult{Success: false, Message: "User not found"})
			return
		}
		mutationFailed(c, "Failed to load user")
		return
	}

	if !target.CanChangeRoleTo(input.Role) {
		mutationDenied(c, "The owner role cannot be changed")
		return
	}

	if _, err := h.DB.Exec("UPDATE profiles SET role = ? WHERE id = ?", input.Role, target.ID); err != nil {
		mutationFailed(c, "Failed to update role")
		return
	}

	h.Cache.Invalidate(c.Request.Context(), "/admin/users")
	mutationOK(c, "Role updated")
}

// DeleteProfile removes a non-owner profile.
// DELETE /v1/admin/users/:id
func (h *Handlers) DeleteProfile(c *gin.Context) {
	if _, _, ok := h.requireAdmin(c); !ok {
		return
	}

	target, err := h.loadProfile(c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, MutationResult{Success: false, Message: "User not found"})
			return
		}
		mutationFailed(c, "Failed to load user")
		return
	}

	if !target.CanDelete() {
		mutationDenied(c, "The owner account cannot be deleted")
		return
	}

	if _, err := h.DB.Exec("DELETE FROM profiles WHERE id = ?", target.ID); err != nil {
		mutationFailed(c, "Failed to delete user")
		return
	}

	h.Cache.Invalidate(c.Request.Context(), "/admin/users")
	mutationOK(c, "User deleted")
}

func (h *Handlers) loadProfile(id string) (*models.Profile, error) {
	var p models.Profile
	err := h.DB.QueryRow(`
		SELECT id, role, email, full_name, phone_number, created_at
		FROM profiles WHERE id = ?`, id).
		Scan(&p.ID, &p.Role, &p.Email, &p.FullName, &p.PhoneNumber, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
