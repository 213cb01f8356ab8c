package tui

import (
	"github.com/MKhiriev/commerce-console/internal/access"
	"github.com/MKhiriev/commerce-console/models"
)

// Console-only screens that are not guarded by the access table.
const (
	screenMenu   access.Screen = "menu"
	screenForgot access.Screen = "forgot"
)

// NavigateTo asks the root model to open Screen. The guard of the screen
// decides whether it is rendered.
type NavigateTo struct {
	Screen access.Screen
}

type sessionChangedMsg struct {
	session models.Session
}

type sessionInitializedMsg struct {
	err error
}

type authResultMsg struct {
	err error
}

type loggedOutMsg struct {
	err error
}

type passwordResultMsg struct {
	reset bool
	err   error
}

// passwordResetNotice tells the login page that the password was reset.
type passwordResetNotice struct{}

type unreadCountMsg struct {
	count int64
}

type dashboardLoadedMsg struct {
	screen access.Screen
	dash   models.Dashboard
	err    error
}

type moderatedMsg struct {
	screen  access.Screen
	name    string
	approve bool
	err     error
}

type listFetchedMsg struct {
	screen access.Screen
	err    error
}

type listActionMsg struct {
	screen access.Screen
	status string
	err    error
}

type profileLoadedMsg struct {
	user models.DirectoryUser
	err  error
}

type profileSavedMsg struct {
	user models.DirectoryUser
	err  error
}

// screenMsg is a result addressed to one page. The root model delivers it to
// that page even when another page is shown.
type screenMsg interface {
	target() access.Screen
}

func (m dashboardLoadedMsg) target() access.Screen { return m.screen }
func (m moderatedMsg) target() access.Screen       { return m.screen }
func (m listFetchedMsg) target() access.Screen     { return m.screen }
func (m listActionMsg) target() access.Screen      { return m.screen }
func (profileLoadedMsg) target() access.Screen     { return access.ScreenProfile }
func (profileSavedMsg) target() access.Screen      { return access.ScreenProfile }
func (passwordResultMsg) target() access.Screen    { return screenForgot }
