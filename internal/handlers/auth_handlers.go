package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/adliharahap/OffmodeStore-sub001/internal/auth"
	"github.com/adliharahap/OffmodeStore-sub001/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionMaxAge matches the token expiry in internal/auth.
const sessionMaxAge = 72 * 60 * 60

//
// --- Registration & Login ---
//

type RegisterInput struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// Register creates a customer profile. Staff roles are only ever
// assigned by the owner through the admin surface.
// POST /v1/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	result, err := h.DB.Exec(`
		INSERT INTO profiles (role, email, password_hash, full_name, phone_number, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		models.RoleCustomer, input.Email, password.Hash, input.FullName, input.PhoneNumber, now)
	if err != nil {
		// Most likely a duplicate email (unique index).
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		return
	}

	profileID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read new profile ID"})
		return
	}

	if err := h.issueSession(c, profileID, models.RoleCustomer); err != nil {
		log.Printf("WARNING: Failed to sign session token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Registered successfully",
		"profileId": profileID,
	})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login signs a customer or staff member in with email and password.
// POST /v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.Profile
	err := h.DB.QueryRow(`
		SELECT id, role, password_hash FROM profiles WHERE email = ?`,
		input.Email).Scan(&profile.ID, &profile.Role, &profile.PasswordHash)
	if err != nil {
		// Same answer for "no such user" and a database error: the
		// caller learns nothing about which emails exist.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	password := models.Password{Hash: profile.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil || !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := h.issueSession(c, profile.ID, profile.Role); err != nil {
		log.Printf("WARNING: Failed to sign session token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Logged in",
		"profileId": profile.ID,
		"role":      profile.Role,
	})
}

//
// --- One-time-link login ---
//

type LoginLinkInput struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestLoginLink creates a single-use login code for an email. The
// code expires in 15 minutes. In production the link is mailed; the
// response never reveals whether the email exists.
// POST /v1/auth/login-link
func (h *Handlers) RequestLoginLink(c *gin.Context) {
	var input LoginLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profileID int64
	err := h.DB.QueryRow("SELECT id FROM profiles WHERE email = ?", input.Email).Scan(&profileID)
	if err == nil {
		code := uuid.New().String()
		expires := time.Now().Add(15 * time.Minute)
		_, err = h.DB.Exec(`
			INSERT INTO magic_links (code, profile_id, expires_at, used)
			VALUES (?, ?, ?, 0)`, code, profileID, expires)
		if err != nil {
			log.Printf("WARNING: Failed to store login link: %v", err)
		} else {
			// Mail delivery is outside this service; the link is logged
			// so development setups can complete the flow.
			log.Printf("Login link for %s: %s/login?code=%s", input.Email, h.BaseURL, code)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If that email is registered, a login link has been sent.",
	})
}

// ExchangeCode redeems a one-time login code for a session cookie.
// POST /v1/auth/exchange
func (h *Handlers) ExchangeCode(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	var profileID int64
	var expires time.Time
	err = tx.QueryRow(`
		SELECT profile_id, expires_at FROM magic_links
		WHERE code = ? AND used = 0 FOR UPDATE`, input.Code).Scan(&profileID, &expires)
	if err != nil || time.Now().After(expires) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		return
	}

	// Single use: burn the code before issuing the session.
	if _, err := tx.Exec("UPDATE magic_links SET used = 1 WHERE code = ?", input.Code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem code"})
		return
	}

	var role string
	if err := tx.QueryRow("SELECT role FROM profiles WHERE id = ?", profileID).Scan(&role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	if err := h.issueSession(c, profileID, role); err != nil {
		log.Printf("WARNING: Failed to sign session token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged in", "profileId": profileID, "role": role})
}

// Logout clears the session cookie.
// POST /v1/auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// issueSession signs a token and sets the session cookie. A signing
// failure must fail the whole request: answering success without a
// cookie would strand the caller logged out.
func (h *Handlers) issueSession(c *gin.Context, profileID int64, role string) error {
	token, err := auth.GenerateToken(h.JWTSecret, profileID, role)
	if err != nil {
		return err
	}
	c.SetCookie(auth.SessionCookie, token, sessionMaxAge, "/", "", false, true)
	return nil
}

// Me returns the signed-in profile.
// GET /v1/profile/me
func (h *Handlers) Me(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	var p models.Profile
	var avatar sql.NullString
	err := h.DB.QueryRow(`
		SELECT id, role, email, full_name, phone_number, avatar_url, created_at
		FROM profiles WHERE id = ?`, sess.ProfileID).
		Scan(&p.ID, &p.Role, &p.Email, &p.FullName, &p.PhoneNumber, &avatar, &p.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	if avatar.Valid {
		p.AvatarURL = &avatar.String
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}
