package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/commerce-console/internal/access"
	"github.com/MKhiriev/commerce-console/internal/service"
)

const signOutTitle = "Sign out"

// MenuModel lists the screens the signed-in operator may open.
type MenuModel struct {
	ctx     context.Context
	session service.SessionService

	idx     int
	unread  int64
	leaving bool
	errMsg  string
}

func NewMenuModel(ctx context.Context, session service.SessionService) *MenuModel {
	return &MenuModel{ctx: ctx, session: session}
}

func (m *MenuModel) Init() tea.Cmd {
	m.leaving = false
	return nil
}

func (m *MenuModel) entries() []access.ScreenSpec {
	return append(access.Menu(m.session.Session().User), access.ScreenSpec{Title: signOutTitle})
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case unreadCountMsg:
		m.unread = msg.count
		return m, nil
	case loggedOutMsg:
		m.leaving = false
		if msg.err != nil {
			m.errMsg = humanize(msg.err, "Sign out failed")
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	entries := m.entries()
	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(entries)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		m.idx = min(m.idx, len(entries)-1)
		entry := entries[m.idx]
		if entry.Screen != "" {
			return m, navigate(entry.Screen)
		}
		if m.leaving {
			return m, nil
		}
		m.leaving = true
		ctx, session := m.ctx, m.session
		return m, func() tea.Msg {
			return loggedOutMsg{err: session.Logout(ctx)}
		}
	}

	return m, nil
}

func (m *MenuModel) View() string {
	user := m.session.Session().User
	entries := m.entries()

	var b strings.Builder
	if user != nil {
		b.WriteString(fmt.Sprintf("Signed in as %s (%s)", user.DisplayName(), user.PrimaryRole()))
		if m.unread > 0 {
			b.WriteString(warningStyle.Render(fmt.Sprintf("   %d unread", m.unread)))
		}
		b.WriteString("\n\n")
	}

	width := 0
	for _, e := range entries {
		width = max(width, lipgloss.Width(e.Title))
	}
	for i, e := range entries {
		cursor := " "
		title := fmt.Sprintf("%-*s", width, e.Title)
		if i == m.idx {
			cursor = ">"
			title = cursorStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s %d │ %s\n", cursor, i+1, title))
	}

	if m.leaving {
		b.WriteString("\nSigning out...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("MAIN MENU", strings.TrimRight(b.String(), "\n"), "enter: open │ ↑/↓: move │ v: version")
}
