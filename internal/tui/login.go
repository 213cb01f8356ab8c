// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/commerce-console/internal/access"
	"github.com/MKhiriev/commerce-console/internal/app"
	"github.com/MKhiriev/commerce-console/internal/service"
	"github.com/MKhiriev/commerce-console/models"
)

// loginPage signs the operator in. A successful login changes the session;
// the root model reacts to that and leaves this page.
type loginPage struct {
	ctx     context.Context
	session service.SessionService

	form   *formModel
	notice string
}

func newLoginPage(ctx context.Context, session service.SessionService) *loginPage {
	return &loginPage{ctx: ctx, session: session, form: newLoginForm()}
}

func newLoginForm() *formModel {
	return newFormModel("SIGN IN",
		formField{label: "Username", charLimit: 64},
		formField{label: "Password", secret: true},
	)
}

// setNotice shows msg above the form until the next attempt.
func (m *loginPage) setNotice(msg string) {
	m.notice = msg
}

func (m *loginPage) Init() tea.Cmd {
	m.form = newLoginForm()
	return textinput.Blink
}

func (m *loginPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResultMsg); ok {
		if result.err != nil {
			m.form.fail(humanize(result.err, app.MsgLoginFailed))
			return m, nil
		}
		m.form.submitting = false
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.register):
			return m, navigate(access.ScreenRegister)
		case key.Matches(keyMsg, keys.forgot):
			return m, navigate(screenForgot)
		}
	}

	state, cmd := m.form.Update(msg)
	if state != formSubmitted {
		return m, cmd
	}

	v := m.form.values()
	username, password := v.get("Username"), v["Password"]
	if username == "" || password == "" {
		m.form.fail("Username and password are required")
		return m, nil
	}

	m.notice = ""
	ctx, session := m.ctx, m.session
	return m, func() tea.Msg {
		return authResultMsg{err: session.Login(ctx, username, password)}
	}
}

func (m *loginPage) View() string {
	view := m.form.View()
	if m.notice != "" {
		view = warningStyle.Render(m.notice) + "\n" + view
	}
	return view + "\n" + helpStyle.Render("  ctrl+r: register │ ctrl+f: forgot password")
}

// registerPage creates an account and signs it in.
type registerPage struct {
	ctx     context.Context
	session service.SessionService
	form    *formModel
}

func newRegisterPage(ctx context.Context, session service.SessionService) *registerPage {
	return &registerPage{ctx: ctx, session: session, form: newRegisterForm()}
}

func newRegisterForm() *formModel {
	return newFormModel("REGISTER",
		formField{label: "Username", charLimit: 64},
		formField{label: "Email"},
		formField{label: "Password", secret: true},
		formField{label: "First name"},
		formField{label: "Last name"},
		formField{label: "Phone"},
	)
}

func (m *registerPage) Init() tea.Cmd {
	m.form = newRegisterForm()
	return textinput.Blink
}

func (m *registerPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResultMsg); ok {
		if result.err != nil {
			m.form.fail(humanize(result.err, app.MsgRegistrationFailed))
			return m, nil
		}
		m.form.submitting = false
		return m, nil
	}

	state, cmd := m.form.Update(msg)
	switch state {
	case formCancelled:
		return m, navigate(access.ScreenLogin)
	case formEditing:
		return m, cmd
	}

	v := m.form.values()
	if err := required(v, "Username", "Email", "Password"); err != nil {
		m.form.fail(humanize(err, app.MsgRegistrationFailed))
		return m, nil
	}
	if len(v["Password"]) < 6 {
		m.form.fail("Password must be at least 6 characters")
		return m, nil
	}

	req := models.RegisterRequest{
		Username:  v.get("Username"),
		Email:     v.get("Email"),
		Password:  v["Password"],
		FirstName: v.get("First name"),
		LastName:  v.get("Last name"),
		Phone:     v.get("Phone"),
	}
	ctx, session := m.ctx, m.session
	return m, func() tea.Msg {
		return authResultMsg{err: session.Register(ctx, req)}
	}
}

func (m *registerPage) View() string {
	return m.form.View()
}

// forgotPage requests a reset token by email and then sets a new password
// with it.
type forgotPage struct {
	ctx     context.Context
	session service.SessionService

	form    *formModel
	reset   bool
	message string
}

func newForgotPage(ctx context.Context, session service.SessionService) *forgotPage {
	p := &forgotPage{ctx: ctx, session: session}
	p.Init()
	return p
}

func (m *forgotPage) Init() tea.Cmd {
	m.reset = false
	m.message = ""
	m.form = newFormModel("FORGOT PASSWORD", formField{label: "Email"})
	return textinput.Blink
}

func (m *forgotPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(passwordResultMsg); ok {
		return m, m.handleResult(result)
	}

	state, cmd := m.form.Update(msg)
	switch state {
	case formCancelled:
		return m, navigate(access.ScreenLogin)
	case formEditing:
		return m, cmd
	}

	v := m.form.values()
	ctx, session := m.ctx, m.session

	if !m.reset {
		email := v.get("Email")
		if email == "" {
			m.form.fail("Email is required")
			return m, nil
		}
		return m, func() tea.Msg {
			return passwordResultMsg{err: session.ForgotPassword(ctx, email)}
		}
	}

	token, password := v.get("Reset token"), v["New password"]
	if token == "" || password == "" {
		m.form.fail("Token and new password are required")
		return m, nil
	}
	if password != v["Repeat password"] {
		m.form.fail("Passwords do not match")
		return m, nil
	}
	return m, func() tea.Msg {
		return passwordResultMsg{reset: true, err: session.ResetPassword(ctx, token, password)}
	}
}

func (m *forgotPage) handleResult(result passwordResultMsg) tea.Cmd {
	if !result.reset {
		if result.err != nil {
			m.form.fail(humanize(result.err, app.MsgForgotPasswordFailed))
			return nil
		}
		m.reset = true
		m.message = "Check your email for the reset token."
		m.form = newFormModel("RESET PASSWORD",
			formField{label: "Reset token"},
			formField{label: "New password", secret: true},
			formField{label: "Repeat password", secret: true},
		)
		return textinput.Blink
	}

	if result.err != nil {
		m.form.fail(humanize(result.err, app.MsgResetPasswordFailed))
		return nil
	}
	return tea.Sequence(
		func() tea.Msg { return passwordResetNotice{} },
		navigate(access.ScreenLogin),
	)
}

func (m *forgotPage) View() string {
	view := m.form.View()
	if m.message != "" {
		view = successStyle.Render(m.message) + "\n" + view
	}
	return view
}
