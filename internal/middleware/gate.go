package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/adliharahap/OffmodeStore-sub001/internal/auth"
	"github.com/adliharahap/OffmodeStore-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

// Redirect targets. Unauthorized and not-found deliberately collapse to
// the same target so a stranger cannot tell "doesn't exist" apart from
// "you can't see this".
const (
	NotFoundPath = "/not-found"
	HomePath     = "/"

	// AuthenticatedHeader is injected on product-detail requests.
	AuthenticatedHeader = "X-Authenticated"
)

// Action is the gate's verdict for a request.
type Action int

const (
	ActionContinue Action = iota
	ActionContinueWithHeader
	ActionRedirect
)

// Decision is the full outcome the middleware applies.
type Decision struct {
	Action      Action
	HeaderValue string // for ActionContinueWithHeader
	Target      string // for ActionRedirect
}

// Gate decides, for every inbound request matching the configured
// pattern set, whether it may continue, continue annotated, or be
// redirected. Session and role resolution errors always deny.
type Gate struct {
	Sessions auth.SessionResolver
	Roles    auth.RoleLookup
	Patterns Patterns
}

// NewGate builds a gate over the given resolvers with the default
// storefront route patterns.
func NewGate(sessions auth.SessionResolver, roles auth.RoleLookup) *Gate {
	return &Gate{Sessions: sessions, Roles: roles, Patterns: DefaultPatterns()}
}

// Decide runs the gate algorithm for one request.
func (g *Gate) Decide(ctx context.Context, path, cookieValue string) Decision {
	class := g.Patterns.Classify(path)
	if class == ClassBypass {
		return Decision{Action: ActionContinue}
	}

	// Resolution failure is identical to "no session" (fail-closed).
	sess := g.Sessions.Resolve(ctx, cookieValue)

	switch class {
	case ClassProductDetail:
		// Pass-through annotation: tell the page whether the visitor is
		// signed in, never block.
		return Decision{
			Action:      ActionContinueWithHeader,
			HeaderValue: strconv.FormatBool(!sess.Anonymous()),
		}

	case ClassLogin:
		// A signed-in visitor has no business on the login page.
		if !sess.Anonymous() {
			return Decision{Action: ActionRedirect, Target: HomePath}
		}
		return Decision{Action: ActionContinue}

	case ClassAccount:
		if sess.Anonymous() {
			return Decision{Action: ActionRedirect, Target: NotFoundPath}
		}
		return Decision{Action: ActionContinue}

	case ClassAdmin:
		if sess.Anonymous() {
			return Decision{Action: ActionRedirect, Target: NotFoundPath}
		}
		role, err := g.Roles.Role(ctx, sess.ProfileID)
		if err != nil || !models.IsAdminRole(role) {
			return Decision{Action: ActionRedirect, Target: NotFoundPath}
		}
		// Self-scoping: an admin may only browse under their own id
		// segment, regardless of role. The base admin index carries no
		// subject segment and is unconstrained beyond role.
		if sub := subjectSegment(path); sub != "" && sub != strconv.FormatInt(sess.ProfileID, 10) {
			return Decision{Action: ActionRedirect, Target: NotFoundPath}
		}
		return Decision{Action: ActionContinue}
	}

	return Decision{Action: ActionContinue}
}

// Middleware adapts the gate to a gin handler chain.
func (g *Gate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookieValue, _ := c.Cookie(auth.SessionCookie)

		d := g.Decide(c.Request.Context(), c.Request.URL.Path, cookieValue)
		switch d.Action {
		case ActionRedirect:
			c.Redirect(http.StatusFound, d.Target)
			c.Abort()
		case ActionContinueWithHeader:
			c.Request.Header.Set(AuthenticatedHeader, d.HeaderValue)
			c.Next()
		default:
			c.Next()
		}
	}
}
