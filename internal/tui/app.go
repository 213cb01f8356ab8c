package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/commerce-console/internal/access"
	"github.com/MKhiriev/commerce-console/internal/app"
	"github.com/MKhiriev/commerce-console/internal/service"
	"github.com/MKhiriev/commerce-console/internal/workers"
	"github.com/MKhiriev/commerce-console/models"
)

// Poller job names.
const (
	jobScreen = "screen"
	jobUnread = "unread"
)

// scheduler runs background refresh jobs. It is satisfied by
// *workers.Poller.
type scheduler interface {
	Schedule(name string, job workers.Job)
	Unschedule(name string)
}

type unreadCounter interface {
	RefreshUnreadCount(ctx context.Context)
	UnreadCount() int64
}

// polled is implemented by pages refreshed in the background while shown.
// poll runs outside the program loop and returns the message to deliver.
type polled interface {
	poll(ctx context.Context) (tea.Msg, error)
}

type rootDeps struct {
	ctx       context.Context
	session   service.SessionService
	updates   <-chan models.Session
	pages     map[access.Screen]tea.Model
	scheduler scheduler
	unread    unreadCounter
	notify    func(tea.Msg)
	buildInfo models.BuildInfo
}

// RootModel is the console router:
// 1) follows the session and sends the operator to login or the dashboard
// 2) runs every navigation through the screen guards
// 3) keeps the shown page polled in the background
// 4) delegates all other messages to the pages
type RootModel struct {
	rootDeps

	screen   access.Screen
	state    models.Session
	fallback string
	spinner  spinner.Model

	quitByUser    bool
	showBuildInfo bool
}

func NewRootModel(deps rootDeps) RootModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return RootModel{
		rootDeps: deps,
		state:    models.Session{Loading: true},
		spinner:  s,
	}
}

func (r RootModel) Init() tea.Cmd {
	ctx, session := r.ctx, r.session
	return tea.Batch(
		r.waitSession(),
		func() tea.Msg {
			return sessionInitializedMsg{err: session.Initialize(ctx)}
		},
		r.spinner.Tick,
	)
}

func (r RootModel) waitSession() tea.Cmd {
	updates := r.updates
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return sessionChangedMsg{session: s}
	}
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			r.quitByUser = true
			return r, tea.Quit
		case "v":
			if r.screen == screenMenu {
				r.showBuildInfo = !r.showBuildInfo
				return r, nil
			}
		case "esc":
			if r.showBuildInfo {
				r.showBuildInfo = false
				return r, nil
			}
			if r.fallback != "" {
				return r, r.navigate(screenMenu)
			}
		}

		if r.showBuildInfo || r.fallback != "" {
			return r, nil
		}
	}

	switch msg := msg.(type) {
	case sessionChangedMsg:
		cmd := r.onSession(msg.session)
		return r, tea.Batch(r.waitSession(), cmd)

	case sessionInitializedMsg:
		if msg.err != nil {
			r.loginNotice(humanize(msg.err, app.MsgServiceUnavailable))
		}
		return r, nil

	case NavigateTo:
		return r, r.navigate(msg.Screen)

	case loggedOutMsg:
		if msg.err != nil {
			r.loginNotice(humanize(msg.err, "Sign out failed"))
		}
		return r, r.deliver(screenMenu, msg)

	case passwordResetNotice:
		r.loginNotice("Password changed. Sign in with the new password.")
		return r, nil

	case unreadCountMsg:
		return r, r.deliver(screenMenu, msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case screenMsg:
		return r, r.deliver(msg.target(), msg)
	}

	return r, r.deliver(r.screen, msg)
}

// onSession reacts to a session change: a signed-out operator is sent to
// login, a fresh sign-in lands on the dashboard.
func (r *RootModel) onSession(s models.Session) tea.Cmd {
	prev := r.state
	r.state = s

	if s.Loading {
		return nil
	}

	if s.User == nil {
		r.unschedule(jobScreen)
		r.unschedule(jobUnread)
		if s.Expired && prev.User != nil {
			r.loginNotice(app.MsgSessionExpired)
		}
		if !isPublic(r.screen) || r.screen == "" {
			return r.open(access.ScreenLogin)
		}
		return nil
	}

	if prev.User == nil || prev.User.Username != s.User.Username {
		r.scheduleUnread()
	}
	if isPublic(r.screen) || r.screen == "" {
		return r.navigate(access.ScreenDashboard)
	}
	return nil
}

func (r *RootModel) decide(screen access.Screen) access.Decision {
	switch screen {
	case screenForgot:
		return access.Decision{Outcome: access.OutcomeRender}
	case screenMenu:
		return access.Guard{}.Decide(r.state)
	default:
		return access.Navigate(r.state, screen)
	}
}

func (r *RootModel) navigate(screen access.Screen) tea.Cmd {
	if _, ok := r.pages[screen]; !ok {
		return nil
	}

	d := r.decide(screen)
	switch d.Outcome {
	case access.OutcomeLoading:
		return nil
	case access.OutcomeLogin:
		return r.open(access.ScreenLogin)
	case access.OutcomeRedirect:
		if d.Target == screen {
			return nil
		}
		return r.navigate(d.Target)
	case access.OutcomeFallback:
		r.unschedule(jobScreen)
		r.screen = screen
		r.fallback = d.Fallback
		return nil
	}
	return r.open(screen)
}

func (r *RootModel) open(screen access.Screen) tea.Cmd {
	page, ok := r.pages[screen]
	if !ok {
		return nil
	}

	r.showBuildInfo = false
	r.fallback = ""
	r.screen = screen

	r.unschedule(jobScreen)
	if p, ok := page.(polled); ok && r.state.User != nil {
		r.schedule(jobScreen, func(ctx context.Context) error {
			msg, err := p.poll(ctx)
			r.send(msg)
			return err
		})
	}
	return page.Init()
}

// deliver updates the page registered for screen.
func (r *RootModel) deliver(screen access.Screen, msg tea.Msg) tea.Cmd {
	page, ok := r.pages[screen]
	if !ok {
		return nil
	}
	updated, cmd := page.Update(msg)
	r.pages[screen] = updated
	return cmd
}

func (r *RootModel) loginNotice(msg string) {
	if login, ok := r.pages[access.ScreenLogin].(*loginPage); ok {
		login.setNotice(msg)
	}
}

func (r *RootModel) scheduleUnread() {
	if r.unread == nil {
		return
	}
	unread := r.unread
	r.schedule(jobUnread, func(ctx context.Context) error {
		unread.RefreshUnreadCount(ctx)
		r.send(unreadCountMsg{count: unread.UnreadCount()})
		return nil
	})
}

func (r *RootModel) schedule(name string, job workers.Job) {
	if r.scheduler != nil {
		r.scheduler.Schedule(name, job)
	}
}

func (r *RootModel) unschedule(name string) {
	if r.scheduler != nil {
		r.scheduler.Unschedule(name)
	}
}

func (r *RootModel) send(msg tea.Msg) {
	if msg != nil && r.notify != nil {
		r.notify(msg)
	}
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	if r.fallback != "" {
		return renderPage("ACCESS", warningStyle.Render(r.fallback), "esc: menu")
	}

	page, ok := r.pages[r.screen]
	if !ok || (r.state.Loading && !isPublic(r.screen)) {
		return renderPage("COMMERCE CONSOLE", r.spinner.View()+" Loading session...", "")
	}
	return page.View()
}

// isPublic reports whether screen is reachable without a session.
func isPublic(screen access.Screen) bool {
	switch screen {
	case access.ScreenLogin, access.ScreenRegister, screenForgot:
		return true
	}
	return false
}
