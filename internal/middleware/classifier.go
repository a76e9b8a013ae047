package middleware

import "strings"

// RouteClass is the policy bucket a request path falls into.
type RouteClass int

const (
	// ClassBypass paths are not intercepted by the gate at all.
	ClassBypass RouteClass = iota
	// ClassProductDetail paths get an authentication header injected
	// and always continue. This is an annotation, not a gate.
	ClassProductDetail
	// ClassLogin is the login page: already-authenticated sessions are
	// bounced back home.
	ClassLogin
	// ClassAccount paths require any authenticated session.
	ClassAccount
	// ClassAdmin paths require an admin role and self-scoping.
	ClassAdmin
)

// Patterns is the explicit allow-list of path patterns the gate
// intercepts. Anything not matched bypasses the gate entirely.
type Patterns struct {
	ProductDetail string   // prefix, e.g. "/product/"
	Login         string   // exact, e.g. "/login"
	Account       []string // prefixes: orders-history, cart, profile, checkout
	Admin         string   // prefix, e.g. "/admin"
}

// DefaultPatterns is the route set of the storefront.
func DefaultPatterns() Patterns {
	return Patterns{
		ProductDetail: "/product/",
		Login:         "/login",
		Account:       []string{"/orders-history", "/cart", "/profile", "/checkout"},
		Admin:         "/admin",
	}
}

// Classify maps a request path to its policy bucket.
func (p Patterns) Classify(path string) RouteClass {
	switch {
	case p.ProductDetail != "" && strings.HasPrefix(path, p.ProductDetail):
		return ClassProductDetail
	case path == p.Login:
		return ClassLogin
	case p.Admin != "" && matchesPrefix(path, p.Admin):
		return ClassAdmin
	}
	for _, prefix := range p.Account {
		if matchesPrefix(path, prefix) {
			return ClassAccount
		}
	}
	return ClassBypass
}

// matchesPrefix matches a whole path segment prefix: "/cart" matches
// "/cart" and "/cart/items" but not "/cartoons".
func matchesPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

// subjectSegment extracts the second path segment of an admin route,
// e.g. "/admin/42/orders" -> "42". Empty when the segment is absent.
func subjectSegment(path string) string {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
