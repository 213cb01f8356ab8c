package access

import (
	"github.com/MKhiriev/commerce-console/models"
)

// Screen names a console screen.
type Screen string

const (
	ScreenLogin         Screen = "login"
	ScreenRegister      Screen = "register"
	ScreenDashboard     Screen = "dashboard"
	ScreenUsers         Screen = "users"
	ScreenOrders        Screen = "orders"
	ScreenInventory     Screen = "inventory"
	ScreenNotifications Screen = "notifications"
	ScreenModeration    Screen = "moderation"
	ScreenSupport       Screen = "support"
	ScreenProfile       Screen = "profile"
)

// Constraints are evaluated in field order; the first failing one decides.
// Zero values are skipped.
type Constraints struct {
	RequiredRole  models.Role
	RequiredRoles []models.Role
	MinimumRole   models.Role
}

// Allows reports whether user satisfies every constraint in c.
func (c Constraints) Allows(user *models.User) bool {
	if c.RequiredRole != "" && !HasRole(user, c.RequiredRole) {
		return false
	}
	if len(c.RequiredRoles) > 0 && !HasAnyRole(user, c.RequiredRoles...) {
		return false
	}
	if c.MinimumRole != "" && !HasMinimumRole(user, c.MinimumRole) {
		return false
	}
	return true
}

// Outcome is what the console does with a guarded screen.
type Outcome int

const (
	// OutcomeLoading shows a placeholder while the session initializes.
	OutcomeLoading Outcome = iota
	// OutcomeLogin sends an anonymous operator to the login screen.
	OutcomeLogin
	// OutcomeFallback renders the guard's fallback content instead of the
	// screen.
	OutcomeFallback
	// OutcomeRedirect navigates to Decision.Target.
	OutcomeRedirect
	// OutcomeRender renders the screen.
	OutcomeRender
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoading:
		return "loading"
	case OutcomeLogin:
		return "login"
	case OutcomeFallback:
		return "fallback"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeRender:
		return "render"
	default:
		return "unknown"
	}
}

// Decision is the result of [Guard.Decide].
type Decision struct {
	Outcome Outcome
	// Target is set for OutcomeLogin and OutcomeRedirect.
	Target Screen
	// Fallback is set for OutcomeFallback.
	Fallback string
}

// Guard protects a screen or a piece of content.
type Guard struct {
	Constraints

	// Fallback, when not empty, is shown in place of the content on a
	// failed constraint instead of redirecting.
	Fallback string

	// RedirectTo is where a failed constraint navigates. Defaults to the
	// dashboard.
	RedirectTo Screen
}

// Decide applies the guard to a session snapshot.
func (g Guard) Decide(s models.Session) Decision {
	if s.Loading {
		return Decision{Outcome: OutcomeLoading}
	}
	if s.User == nil {
		return Decision{Outcome: OutcomeLogin, Target: ScreenLogin}
	}

	if g.Allows(s.User) {
		return Decision{Outcome: OutcomeRender}
	}

	if g.Fallback != "" {
		return Decision{Outcome: OutcomeFallback, Fallback: g.Fallback}
	}

	target := g.RedirectTo
	if target == "" {
		target = ScreenDashboard
	}
	return Decision{Outcome: OutcomeRedirect, Target: target}
}
