package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/commerce-console/internal/app"
	"github.com/MKhiriev/commerce-console/internal/service"
	"github.com/MKhiriev/commerce-console/models"
)

const maxPictureSize = 5 << 20

const (
	fieldFirstName = "First name"
	fieldLastName  = "Last name"
	fieldEmail     = "Email"
	fieldPhone     = "Phone"
	fieldAddress   = "Address"
	fieldBio       = "Bio"
	fieldPicture   = "Picture file"
)

// profilePage edits the operator's own users-service record.
type profilePage struct {
	ctx context.Context
	svc *service.ProfileService

	record  models.DirectoryUser
	form    *formModel
	loadErr string
	status  string
}

func newProfilePage(ctx context.Context, svc *service.ProfileService) *profilePage {
	return &profilePage{ctx: ctx, svc: svc}
}

func (p *profilePage) Init() tea.Cmd {
	p.form = nil
	p.loadErr = ""
	p.status = ""
	ctx, svc := p.ctx, p.svc
	return func() tea.Msg {
		user, err := svc.Load(ctx)
		return profileLoadedMsg{user: user, err: err}
	}
}

func (p *profilePage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.err != nil {
			p.loadErr = humanize(msg.err, app.MsgLoadProfileFailed)
			return p, nil
		}
		p.record = msg.user
		p.form = p.newForm()
		return p, nil

	case profileSavedMsg:
		if p.form == nil {
			return p, nil
		}
		if msg.err != nil {
			p.form.fail(humanize(msg.err, app.MsgUpdateProfileFailed))
			return p, nil
		}
		p.record = msg.user
		p.form = p.newForm()
		p.status = "Profile updated"
		return p, nil
	}

	if p.form == nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, keys.esc):
				return p, navigate(screenMenu)
			case key.Matches(keyMsg, keys.refresh):
				return p, p.Init()
			}
		}
		return p, nil
	}

	state, cmd := p.form.Update(msg)
	switch state {
	case formCancelled:
		return p, navigate(screenMenu)
	case formSubmitted:
		p.status = ""
		return p, p.saveCmd(p.form.values())
	}
	return p, cmd
}

func (p *profilePage) newForm() *formModel {
	r := p.record
	return newFormModel(fmt.Sprintf("PROFILE: %s", r.Username),
		formField{label: fieldFirstName, value: r.FirstName},
		formField{label: fieldLastName, value: r.LastName},
		formField{label: fieldEmail, value: r.Email},
		formField{label: fieldPhone, value: deref(r.Phone)},
		formField{label: fieldAddress, value: deref(r.Address)},
		formField{label: fieldBio, value: deref(r.Bio), charLimit: 1000},
		formField{label: fieldPicture, placeholder: "path to an image, empty keeps the current one"},
	)
}

func (p *profilePage) saveCmd(v formValues) tea.Cmd {
	ctx, svc := p.ctx, p.svc
	current := deref(p.record.ProfilePictureURL)

	return func() tea.Msg {
		upd := service.ProfileUpdate{
			FirstName:         v.get(fieldFirstName),
			LastName:          v.get(fieldLastName),
			Email:             v.get(fieldEmail),
			Phone:             v.get(fieldPhone),
			Address:           v.get(fieldAddress),
			Bio:               v.get(fieldBio),
			ProfilePictureURL: current,
		}
		if upd.FirstName == "" || upd.Email == "" {
			return profileSavedMsg{err: invalid("First name and email are required")}
		}

		if path := v.get(fieldPicture); path != "" {
			pic, err := readPicture(path)
			if err != nil {
				return profileSavedMsg{err: err}
			}
			upd.Picture = pic
		}

		user, err := svc.Save(ctx, upd)
		return profileSavedMsg{user: user, err: err}
	}
}

func readPicture(path string) (*service.Picture, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, invalid("cannot read %s", path)
	}
	if info.Size() > maxPictureSize {
		return nil, invalid("%s is larger than 5 MB", filepath.Base(path))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, invalid("cannot read %s", path)
	}
	return &service.Picture{FileName: filepath.Base(path), Content: content}, nil
}

func (p *profilePage) View() string {
	if p.loadErr != "" {
		overlay := errorOverlayModel{message: p.loadErr}
		return renderPage("PROFILE", overlay.View(), "r: retry │ esc: menu")
	}
	if p.form == nil {
		return renderPage("PROFILE", "Loading...", "esc: menu")
	}

	view := p.form.View()
	if p.status != "" {
		view = successStyle.Render(p.status) + "\n" + view
	}
	return view
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
