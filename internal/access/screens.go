package access

import "github.com/MKhiriev/commerce-console/models"

// ScreenSpec describes a navigable screen of the console.
type ScreenSpec struct {
	Screen Screen
	Title  string
	Guard  Guard
}

// screenTable is ordered as shown in the navigation menu.
var screenTable = []ScreenSpec{
	{Screen: ScreenDashboard, Title: "Dashboard"},
	{Screen: ScreenUsers, Title: "Users", Guard: Guard{
		Constraints: Constraints{RequiredRoles: []models.Role{models.RoleAdmin, models.RoleSupport}},
	}},
	{Screen: ScreenOrders, Title: "Orders"},
	{Screen: ScreenInventory, Title: "Inventory", Guard: Guard{
		Constraints: Constraints{MinimumRole: models.RoleModerator},
	}},
	{Screen: ScreenModeration, Title: "Moderation", Guard: Guard{
		Constraints: Constraints{RequiredRoles: []models.Role{models.RoleAdmin, models.RoleModerator}},
	}},
	{Screen: ScreenSupport, Title: "Support", Guard: Guard{
		Constraints: Constraints{RequiredRoles: []models.Role{models.RoleAdmin, models.RoleSupport}},
	}},
	{Screen: ScreenNotifications, Title: "Notifications"},
	{Screen: ScreenProfile, Title: "Profile"},
}

// Screens returns the guarded screens in menu order.
func Screens() []ScreenSpec {
	return append([]ScreenSpec(nil), screenTable...)
}

// Lookup returns the spec of screen.
func Lookup(screen Screen) (ScreenSpec, bool) {
	for _, s := range screenTable {
		if s.Screen == screen {
			return s, true
		}
	}
	return ScreenSpec{}, false
}

// Navigate decides what happens when the operator opens screen. Unknown
// screens redirect to the dashboard; login and register are public.
func Navigate(s models.Session, screen Screen) Decision {
	if screen == ScreenLogin || screen == ScreenRegister {
		return Decision{Outcome: OutcomeRender}
	}
	spec, ok := Lookup(screen)
	if !ok {
		d := Guard{}.Decide(s)
		if d.Outcome == OutcomeRender {
			return Decision{Outcome: OutcomeRedirect, Target: ScreenDashboard}
		}
		return d
	}
	return spec.Guard.Decide(s)
}

// Menu returns the screens user may open.
func Menu(user *models.User) []ScreenSpec {
	var out []ScreenSpec
	for _, s := range screenTable {
		if user != nil && s.Guard.Allows(user) {
			out = append(out, s)
		}
	}
	return out
}
