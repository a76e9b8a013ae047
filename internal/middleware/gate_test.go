package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/adliharahap/OffmodeStore-sub001/internal/auth"
)

type fakeSessions struct {
	profileID int64 // 0 means anonymous
}

func (f *fakeSessions) Resolve(_ context.Context, cookieValue string) auth.Session {
	if cookieValue == "" {
		return auth.Session{}
	}
	return auth.Session{ProfileID: f.profileID}
}

type fakeRoles struct {
	role string
	err  error
}

func (f *fakeRoles) Role(context.Context, int64) (string, error) {
	return f.role, f.err
}

func newTestGate(profileID int64, role string, roleErr error) *Gate {
	return NewGate(&fakeSessions{profileID: profileID}, &fakeRoles{role: role, err: roleErr})
}

func TestProtectedPathsWithoutSession(t *testing.T) {
	g := newTestGate(0, "", nil)

	paths := []string{
		"/orders-history",
		"/cart",
		"/profile",
		"/checkout",
		"/checkout/payment",
		"/admin",
		"/admin/7/orders",
	}
	for _, path := range paths {
		d := g.Decide(context.Background(), path, "")
		if d.Action != ActionRedirect || d.Target != NotFoundPath {
			t.Errorf("%s without session: got %+v, want redirect to %s", path, d, NotFoundPath)
		}
	}
}

func TestAdminSelfScoping(t *testing.T) {
	g := newTestGate(7, "owner", nil)

	// A subject segment that is not the session's own id is rejected,
	// even for the owner role.
	d := g.Decide(context.Background(), "/admin/8/orders", "cookie")
	if d.Action != ActionRedirect || d.Target != NotFoundPath {
		t.Errorf("mismatched subject id: got %+v, want redirect to %s", d, NotFoundPath)
	}

	// The matching segment continues.
	d = g.Decide(context.Background(), "/admin/7/orders", "cookie")
	if d.Action != ActionContinue {
		t.Errorf("own subject id: got %+v, want continue", d)
	}

	// The base admin index has no subject segment and only needs role.
	d = g.Decide(context.Background(), "/admin", "cookie")
	if d.Action != ActionContinue {
		t.Errorf("admin index: got %+v, want continue", d)
	}
}

func TestAdminRoleDenied(t *testing.T) {
	g := newTestGate(7, "customer", nil)
	d := g.Decide(context.Background(), "/admin", "cookie")
	if d.Action != ActionRedirect || d.Target != NotFoundPath {
		t.Errorf("customer role on admin route: got %+v, want redirect to %s", d, NotFoundPath)
	}
}

func TestAdminRoleLookupFailureDenies(t *testing.T) {
	g := newTestGate(7, "", errors.New("backend down"))
	d := g.Decide(context.Background(), "/admin", "cookie")
	if d.Action != ActionRedirect || d.Target != NotFoundPath {
		t.Errorf("role lookup failure must fail closed: got %+v", d)
	}
}

func TestAdminRolesAllowed(t *testing.T) {
	for _, role := range []string{"owner", "admin", "pegawai"} {
		g := newTestGate(7, role, nil)
		d := g.Decide(context.Background(), "/admin", "cookie")
		if d.Action != ActionContinue {
			t.Errorf("role %s on admin index: got %+v, want continue", role, d)
		}
	}
}

func TestLoginRedirect(t *testing.T) {
	g := newTestGate(7, "customer", nil)

	// With a session the login path always bounces home, and repeating
	// the call changes nothing.
	for i := 0; i < 3; i++ {
		d := g.Decide(context.Background(), "/login", "cookie")
		if d.Action != ActionRedirect || d.Target != HomePath {
			t.Fatalf("login with session (call %d): got %+v, want redirect home", i+1, d)
		}
	}

	// Without a session it renders normally.
	d := g.Decide(context.Background(), "/login", "")
	if d.Action != ActionContinue {
		t.Errorf("login without session: got %+v, want continue", d)
	}
}

func TestProductDetailHeaderInjection(t *testing.T) {
	g := newTestGate(7, "customer", nil)

	d := g.Decide(context.Background(), "/product/kaos-hitam", "cookie")
	if d.Action != ActionContinueWithHeader || d.HeaderValue != "true" {
		t.Errorf("product detail with session: got %+v", d)
	}

	d = g.Decide(context.Background(), "/product/kaos-hitam", "")
	if d.Action != ActionContinueWithHeader || d.HeaderValue != "false" {
		t.Errorf("product detail without session: got %+v", d)
	}
}

func TestUnmatchedPathsBypass(t *testing.T) {
	g := newTestGate(0, "", nil)
	for _, path := range []string{"/", "/about", "/cartoons", "/products"} {
		d := g.Decide(context.Background(), path, "")
		if d.Action != ActionContinue {
			t.Errorf("%s should bypass the gate: got %+v", path, d)
		}
	}
}

func TestClassify(t *testing.T) {
	p := DefaultPatterns()
	tests := []struct {
		path string
		want RouteClass
	}{
		{"/product/kaos-hitam", ClassProductDetail},
		{"/login", ClassLogin},
		{"/orders-history", ClassAccount},
		{"/cart/items", ClassAccount},
		{"/cartoons", ClassBypass},
		{"/admin", ClassAdmin},
		{"/admin/7", ClassAdmin},
		{"/administrator", ClassBypass},
		{"/", ClassBypass},
	}
	for _, tt := range tests {
		if got := p.Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSubjectSegment(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/admin", ""},
		{"/admin/7", "7"},
		{"/admin/7/orders", "7"},
		{"/admin/", ""},
	}
	for _, tt := range tests {
		if got := subjectSegment(tt.path); got != tt.want {
			t.Errorf("subjectSegment(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
