package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"github.com/adliharahap/OffmodeStore-sub001/internal/auth"
	"github.com/adliharahap/OffmodeStore-sub001/internal/models"
)

type stubSessions struct{ id int64 }

func (s stubSessions) Resolve(context.Context, string) auth.Session {
	return auth.Session{ProfileID: s.id}
}

type stubRoles struct{ role string }

func (s stubRoles) Role(context.Context, int64) (string, error) {
	return s.role, nil
}

func newVariantPatchContext(t *testing.T, variantID, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/v1/admin/variants/"+variantID, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: variantID}}
	return c, w
}

func TestUpdateVariantInheritsBasePrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	h := &Handlers{DB: db, Sessions: stubSessions{id: 1}, Roles: stubRoles{role: models.RoleAdmin}}

	mock.ExpectQuery("SELECT p.price FROM products p").
		WithArgs("5").
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(100000.0))
	// Clearing the override writes the base price back to the row.
	mock.ExpectExec("UPDATE product_variants SET").
		WithArgs(100000.0, nil, sqlmock.AnyArg(), "5").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := newVariantPatchContext(t, "5", `{"inheritPrice": true}`)
	h.UpdateVariant(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet query expectations: %v", err)
	}
}

func TestUpdateVariantOverrideWinsOverInherit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	h := &Handlers{DB: db, Sessions: stubSessions{id: 1}, Roles: stubRoles{role: models.RoleAdmin}}

	mock.ExpectQuery("SELECT p.price FROM products p").
		WithArgs("5").
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(100000.0))
	// The explicit price is written, not the base.
	mock.ExpectExec("UPDATE product_variants SET").
		WithArgs(90000.0, nil, sqlmock.AnyArg(), "5").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := newVariantPatchContext(t, "5", `{"price": 90000, "inheritPrice": true}`)
	h.UpdateVariant(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet query expectations: %v", err)
	}
}

func TestUpdateVariantStockOnlySkipsPriceLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	h := &Handlers{DB: db, Sessions: stubSessions{id: 1}, Roles: stubRoles{role: models.RoleAdmin}}

	// No base-price query: the price column stays untouched.
	mock.ExpectExec("UPDATE product_variants SET").
		WithArgs(nil, 3, sqlmock.AnyArg(), "5").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := newVariantPatchContext(t, "5", `{"stock": 3}`)
	h.UpdateVariant(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet query expectations: %v", err)
	}
}
