package tui

import (
	"context"
	"errors"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/commerce-console/internal/access"
	"github.com/MKhiriev/commerce-console/internal/app"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/internal/mock"
	"github.com/MKhiriev/commerce-console/internal/service"
	"github.com/MKhiriev/commerce-console/models"
)

type entry struct {
	id   int64
	name string
	kind string
}

type listFixture struct {
	page    *listPage[entry]
	ctrl    *service.ListController[entry]
	queries []models.ListQuery
	deleted []int64
	copied  []string
}

func newListFixture(t *testing.T, role models.Role) *listFixture {
	t.Helper()
	session := mock.NewMockSessionService(gomock.NewController(t))
	session.EXPECT().Session().Return(models.Session{
		User: &models.User{Username: "op", Roles: []models.Role{role}},
	}).AnyTimes()

	f := &listFixture{}
	f.ctrl = service.NewListController(service.ListConfig[entry]{
		Name: "entries",
		Fetch: func(_ context.Context, q models.ListQuery) (models.Page[entry], error) {
			f.queries = append(f.queries, q)
			return models.Page[entry]{
				Items:         []entry{{1, "alpha", "a"}, {2, "beta", "b"}, {3, "gamma", "a"}},
				TotalElements: 3,
				TotalPages:    1,
			}, nil
		},
		ID:         func(e entry) int64 { return e.id },
		TextFields: []func(entry) string{func(e entry) string { return e.name }},
		ServerFilters: map[string]func(*models.ListQuery, string){
			"kind": func(q *models.ListQuery, v string) { q.Status = v },
		},
		SortFields: map[string]service.SortField[entry]{
			"name": {Kind: service.SortText, Text: func(e entry) string { return e.name }},
		},
		DefaultSort: service.Sort{Key: "name"},
	}, logger.Nop())

	f.page = newListPage(context.Background(), session, listPageConfig[entry]{
		screen: access.ScreenUsers,
		title:  "ENTRIES",
		ctrl:   f.ctrl,
		id:     func(e entry) int64 { return e.id },
		columns: []column[entry]{
			{"ID", func(e entry) string { return strconv.FormatInt(e.id, 10) }},
			{"Name", func(e entry) string { return e.name }},
		},
		filters: []filterSpec{{name: "kind", label: "Kind", values: []string{service.FilterAll, "a", "b"}}},
		actions: []listAction[entry]{
			{
				key:       "d",
				label:     "delete",
				allow:     adminOnly,
				needsItem: true,
				done:      "Deleted",
				confirm:   func(e *entry) string { return "Delete " + e.name },
				run: func(_ context.Context, e *entry) error {
					f.deleted = append(f.deleted, e.id)
					return nil
				},
			},
			{
				key:   "n",
				label: "new",
				form: func(*entry) *formModel {
					return newFormModel("NEW", formField{label: "Name"})
				},
				submit: func(_ context.Context, _ *entry, v formValues) error {
					return required(v, "Name")
				},
			},
		},
	})
	f.page.copyText = func(s string) error {
		f.copied = append(f.copied, s)
		return nil
	}
	return f
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send updates the page with msg and runs the returned command once,
// feeding its result back.
func (f *listFixture) send(t *testing.T, msg tea.Msg) {
	t.Helper()
	_, cmd := f.page.Update(msg)
	if cmd == nil {
		return
	}
	if out := cmd(); out != nil {
		switch out.(type) {
		case listFetchedMsg, listActionMsg:
			f.page.Update(out)
		}
	}
}

func (f *listFixture) load(t *testing.T) {
	t.Helper()
	msg := f.page.Init()()
	require.IsType(t, listFetchedMsg{}, msg)
	f.page.Update(msg)
}

func TestListPage_LoadAndRender(t *testing.T) {
	f := newListFixture(t, models.RoleAdmin)
	f.load(t)

	view := f.page.View()
	assert.Contains(t, view, "ENTRIES")
	assert.Contains(t, view, "alpha")
	assert.Contains(t, view, "Page 1 of 1 │ 3 total │ 0 selected")
	assert.Contains(t, view, "d: delete")
}

func TestListPage_ServerFilterRefetches(t *testing.T) {
	f := newListFixture(t, models.RoleAdmin)
	f.load(t)

	f.send(t, press("f"))

	require.Len(t, f.queries, 2)
	assert.Equal(t, "a", f.queries[1].Status)
	assert.Equal(t, "a", f.ctrl.Filter("kind"))
}

func TestListPage_LocalSearch(t *testing.T) {
	f := newListFixture(t, models.RoleAdmin)
	f.load(t)

	// typing only, the cursor blink commands are not run
	f.page.Update(press("/"))
	for _, r := range "gam" {
		f.page.Update(press(string(r)))
	}
	f.send(t, press("enter"))

	view := f.ctrl.View()
	require.Len(t, view, 1)
	assert.Equal(t, "gamma", view[0].name)
	assert.Len(t, f.queries, 1, "local search does not refetch")
}

func TestListPage_ActionDeniedForRole(t *testing.T) {
	f := newListFixture(t, models.RoleUser)
	f.load(t)

	f.send(t, press("d"))

	assert.Nil(t, f.page.confirming)
	assert.Empty(t, f.deleted)
	assert.Equal(t, app.MsgAccessDenied, f.ctrl.Snapshot().InlineError)
	assert.NotContains(t, f.page.View(), "d: delete")
}

func TestListPage_ConfirmedAction(t *testing.T) {
	f := newListFixture(t, models.RoleAdmin)
	f.load(t)
	f.send(t, press("j"))

	f.send(t, press("d"))
	require.NotNil(t, f.page.confirming)
	assert.Contains(t, f.page.View(), "Delete beta?")

	f.send(t, press("y"))
	assert.Equal(t, []int64{2}, f.deleted)
	assert.Nil(t, f.page.confirming)
	assert.Equal(t, "Deleted", f.page.status)
}

func TestListPage_DeclinedAction(t *testing.T) {
	f := newListFixture(t, models.RoleAdmin)
	f.load(t)

	f.send(t, press("d"))
	f.send(t, press("n"))

	assert.Empty(t, f.deleted)
	assert.Nil(t, f.page.confirming)
}

func TestListPage_FormErrorKeepsFormOpen(t *testing.T) {
	f := newListFixture(t, models.RoleUser)
	f.load(t)

	f.send(t, press("n"))
	require.NotNil(t, f.page.form)

	f.send(t, press("enter"))
	require.NotNil(t, f.page.form)
	assert.Contains(t, f.page.View(), "Error: Name is required")

	f.send(t, press("esc"))
	assert.Nil(t, f.page.form)
}

func TestListPage_Copy(t *testing.T) {
	f := newListFixture(t, models.RoleAdmin)
	f.load(t)

	f.send(t, press("y"))
	f.send(t, press(" "))
	f.send(t, press("j"))
	f.send(t, press(" "))
	f.send(t, press("y"))

	assert.Equal(t, []string{"1\talpha", "1,2"}, f.copied)
	assert.Equal(t, "Copied to clipboard", f.page.status)
}

func TestListPage_CopyFailure(t *testing.T) {
	f := newListFixture(t, models.RoleAdmin)
	f.load(t)
	f.page.copyText = func(string) error { return errors.New("no clipboard") }

	f.send(t, press("y"))

	assert.Equal(t, app.MsgCopyFailed, f.ctrl.Snapshot().InlineError)
}
