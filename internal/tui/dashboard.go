package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/commerce-console/internal/access"
	"github.com/MKhiriev/commerce-console/internal/app"
	"github.com/MKhiriev/commerce-console/internal/service"
	"github.com/MKhiriev/commerce-console/models"
)

// dashboardPage shows the counters and activity feed of one dashboard
// variant. An empty role follows the signed-in operator's role.
type dashboardPage struct {
	ctx     context.Context
	screen  access.Screen
	title   string
	role    models.Role
	svc     *service.DashboardService
	session service.SessionService

	dash    models.Dashboard
	loaded  bool
	errMsg  string
	status  string
	cursor  int
	working bool
}

func newDashboardPage(ctx context.Context, screen access.Screen, title string, role models.Role, svc *service.DashboardService, session service.SessionService) *dashboardPage {
	return &dashboardPage{
		ctx:     ctx,
		screen:  screen,
		title:   title,
		role:    role,
		svc:     svc,
		session: session,
	}
}

func (p *dashboardPage) Init() tea.Cmd {
	p.status = ""
	return p.loadCmd()
}

func (p *dashboardPage) poll(ctx context.Context) (tea.Msg, error) {
	dash, err := p.load(ctx)
	return dashboardLoadedMsg{screen: p.screen, dash: dash, err: err}, err
}

func (p *dashboardPage) load(ctx context.Context) (models.Dashboard, error) {
	if p.role == "" {
		return p.svc.Load(ctx)
	}
	return p.svc.LoadRole(ctx, p.role)
}

func (p *dashboardPage) loadCmd() tea.Cmd {
	ctx := p.ctx
	return func() tea.Msg {
		msg, _ := p.poll(ctx)
		return msg
	}
}

func (p *dashboardPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.err != nil {
			p.errMsg = humanize(msg.err, app.MsgServiceUnavailable)
			return p, nil
		}
		p.errMsg = ""
		p.dash = msg.dash
		p.loaded = true
		p.cursor = min(p.cursor, max(len(p.dash.Pending)-1, 0))
		return p, nil

	case moderatedMsg:
		p.working = false
		p.dash = p.svc.Current()
		p.cursor = min(p.cursor, max(len(p.dash.Pending)-1, 0))
		if msg.err != nil {
			fallback := app.MsgRejectFailed
			if msg.approve {
				fallback = app.MsgApproveFailed
			}
			p.errMsg = humanize(msg.err, fallback)
			p.status = ""
			return p, nil
		}
		p.errMsg = ""
		if msg.approve {
			p.status = fmt.Sprintf("Approved %s", msg.name)
		} else {
			p.status = fmt.Sprintf("Rejected %s", msg.name)
		}
		return p, nil

	case tea.KeyMsg:
		return p, p.updateKeys(msg)
	}
	return p, nil
}

func (p *dashboardPage) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.esc):
		return navigate(screenMenu)
	case key.Matches(msg, keys.refresh):
		p.status = ""
		return p.loadCmd()
	case key.Matches(msg, keys.up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.down):
		if p.cursor < len(p.dash.Pending)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.approve):
		return p.moderate(true)
	case key.Matches(msg, keys.reject):
		return p.moderate(false)
	}
	return nil
}

func (p *dashboardPage) canModerate() bool {
	return access.HasAnyRole(p.session.Session().User, models.RoleAdmin, models.RoleModerator)
}

func (p *dashboardPage) moderate(approve bool) tea.Cmd {
	if p.working || p.cursor >= len(p.dash.Pending) {
		return nil
	}
	if !p.canModerate() {
		p.errMsg = app.MsgAccessDenied
		return nil
	}

	item := p.dash.Pending[p.cursor]
	p.working = true
	ctx, svc, screen := p.ctx, p.svc, p.screen
	return func() tea.Msg {
		var err error
		if approve {
			err = svc.Approve(ctx, item.ProductID)
		} else {
			err = svc.Reject(ctx, item.ProductID)
		}
		return moderatedMsg{screen: screen, name: item.Name, approve: approve, err: err}
	}
}

func (p *dashboardPage) View() string {
	if !p.loaded {
		if p.errMsg != "" {
			overlay := errorOverlayModel{message: p.errMsg}
			return renderPage(p.title, overlay.View(), "r: retry │ esc: menu")
		}
		return renderPage(p.title, "Loading...", "esc: menu")
	}

	var b strings.Builder
	b.WriteString(p.statsView())

	if len(p.dash.Failed) > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("Unavailable: " + strings.Join(p.dash.Failed, ", ")))
		b.WriteString("\n")
	}

	if len(p.dash.Pending) > 0 {
		b.WriteString("\nAwaiting review\n")
		rows := make([][]string, 0, len(p.dash.Pending))
		for i, item := range p.dash.Pending {
			marker := " "
			if i == p.cursor {
				marker = ">"
			}
			submitted := "-"
			if !item.Submitted.IsZero() {
				submitted = item.Submitted.Format("2006-01-02 15:04")
			}
			rows = append(rows, []string{marker, item.SKU, item.Name, submitted})
		}
		b.WriteString(renderTable([]string{" ", "SKU", "Name", "Submitted"}, rows))
		b.WriteString("\n")
	}

	if len(p.dash.Activities) > 0 {
		b.WriteString("\nRecent activity\n")
		for _, a := range p.dash.Activities {
			b.WriteString(activityStyle(a.Level).Render(fmt.Sprintf("%s  %s", a.At.Format("15:04:05"), a.Message)))
			b.WriteString("\n")
		}
	}

	b.WriteString(fmt.Sprintf("\nUpdated %s", p.dash.UpdatedAt.Format("15:04:05")))
	if p.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + p.errMsg))
	}
	if p.status != "" {
		b.WriteString("\n")
		b.WriteString(successStyle.Render(p.status))
	}

	hotKeys := "esc: menu │ r: refresh"
	if len(p.dash.Pending) > 0 && p.canModerate() {
		hotKeys += " │ ↑/↓: move │ a: approve │ x: reject"
	}
	return renderPage(p.title, b.String(), hotKeys)
}

func (p *dashboardPage) statsView() string {
	s := p.dash.Stats
	var rows [][]string
	add := func(label string, v int64) {
		rows = append(rows, []string{label, fmt.Sprintf("%d", v)})
	}

	switch p.dash.Role {
	case models.RoleAdmin:
		add("Users", s.TotalUsers)
		add("Orders", s.TotalOrders)
		rows = append(rows, []string{"Revenue (page)", money(s.Revenue)})
		add("Products", s.TotalProducts)
		add("Low stock", s.LowStockProducts)
		add("Unread notifications", s.UnreadNotifications)
	case models.RoleModerator:
		add("Products", s.TotalProducts)
		add("Pending reviews", s.PendingReviews)
		add("Unread notifications", s.UnreadNotifications)
	case models.RoleSupport:
		add("Users", s.TotalUsers)
		add("Notifications", s.TotalNotifications)
	default:
		add("My orders", s.TotalOrders)
		rows = append(rows, []string{"Spent (page)", money(s.Revenue)})
		add("Notifications", s.TotalNotifications)
	}
	return renderTable([]string{"Metric", "Value"}, rows)
}
