package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adliharahap/OffmodeStore-sub001/internal/auth"
	"github.com/adliharahap/OffmodeStore-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

func TestIssueSessionSetsValidCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	secret := []byte("test-secret")
	h := &Handlers{JWTSecret: secret}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)

	if err := h.issueSession(c, 7, models.RoleCustomer); err != nil {
		t.Fatalf("issueSession returned %v", err)
	}

	res := w.Result()
	var session *http.Cookie
	for _, ck := range res.Cookies() {
		if ck.Name == auth.SessionCookie {
			session = ck
		}
	}
	if session == nil {
		t.Fatal("no session cookie set")
	}
	if !session.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	// The cookie value must validate back to the same profile.
	profileID, err := auth.ValidateToken(secret, session.Value)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if profileID != 7 {
		t.Errorf("token subject = %d, want 7", profileID)
	}
}

func TestIssueSessionCookieClearedOnLogoutPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handlers{JWTSecret: []byte("test-secret")}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)

	h.Logout(c)

	res := w.Result()
	for _, ck := range res.Cookies() {
		if ck.Name == auth.SessionCookie && ck.MaxAge >= 0 && ck.Value != "" {
			t.Errorf("logout left a live session cookie: %+v", ck)
		}
	}
	if w.Code != http.StatusOK {
		t.Errorf("logout status = %d, want 200", w.Code)
	}
}
