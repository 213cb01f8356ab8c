package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/commerce-console/internal/access"
	"github.com/MKhiriev/commerce-console/internal/app"
	"github.com/MKhiriev/commerce-console/internal/service"
	"github.com/MKhiriev/commerce-console/models"
)

type column[T any] struct {
	title string
	value func(T) string
}

// filterSpec is a categorical filter cycled with the filter key. values[0]
// is always service.FilterAll.
type filterSpec struct {
	name   string
	label  string
	values []string
}

// listAction is a keyed operation of a list page.
//
// run acts on the item under the cursor (nil on an empty page). form, when
// set, opens a form first and submit runs with its values.
type listAction[T any] struct {
	key       string
	label     string
	allow     access.Constraints
	confirm   func(item *T) string
	needsItem bool
	done      string

	run    func(ctx context.Context, item *T) error
	form   func(item *T) *formModel
	submit func(ctx context.Context, item *T, v formValues) error
}

type listPageConfig[T any] struct {
	screen  access.Screen
	title   string
	ctrl    *service.ListController[T]
	id      func(T) int64
	columns []column[T]
	filters []filterSpec
	actions []listAction[T]

	// refresh replaces ctrl.Fetch when the page loads more than the list.
	refresh func(ctx context.Context) error
}

// listPage renders a resource list: search, filters, sort, paging,
// selection and the guarded per-resource actions.
type listPage[T any] struct {
	listPageConfig[T]

	ctx      context.Context
	session  service.SessionService
	copyText func(string) error

	cursor      int
	filterIdx   int
	search      textinput.Model
	searching   bool
	searchDirty bool

	status string

	confirming *listAction[T]
	confirmMsg string
	target     *T

	form       *formModel
	formAction *listAction[T]
}

func newListPage[T any](ctx context.Context, session service.SessionService, cfg listPageConfig[T]) *listPage[T] {
	search := textinput.New()
	search.Placeholder = "search"
	search.Width = 30
	search.CharLimit = 128

	if cfg.refresh == nil {
		cfg.refresh = cfg.ctrl.Fetch
	}

	return &listPage[T]{
		listPageConfig: cfg,
		ctx:            ctx,
		session:        session,
		copyText:       clipboard.WriteAll,
		search:         search,
	}
}

func (p *listPage[T]) Init() tea.Cmd {
	return p.fetchCmd()
}

func (p *listPage[T]) poll(ctx context.Context) (tea.Msg, error) {
	err := p.refresh(ctx)
	return listFetchedMsg{screen: p.screen, err: err}, err
}

func (p *listPage[T]) fetchCmd() tea.Cmd {
	ctx, refresh, screen := p.ctx, p.refresh, p.screen
	return func() tea.Msg {
		return listFetchedMsg{screen: screen, err: refresh(ctx)}
	}
}

func (p *listPage[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listFetchedMsg:
		p.clampCursor()
		return p, nil
	case listActionMsg:
		return p, p.handleActionResult(msg)
	}

	if p.form != nil {
		return p, p.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.searching {
			var cmd tea.Cmd
			p.search, cmd = p.search.Update(msg)
			return p, cmd
		}
		return p, nil
	}

	if p.confirming != nil {
		return p, p.updateConfirm(keyMsg)
	}
	if p.searching {
		return p, p.updateSearch(keyMsg)
	}

	return p, p.updateKeys(keyMsg)
}

func (p *listPage[T]) updateKeys(msg tea.KeyMsg) tea.Cmd {
	view := p.ctrl.View()

	switch {
	case key.Matches(msg, keys.esc):
		return navigate(screenMenu)
	case key.Matches(msg, keys.up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.down):
		if p.cursor < len(view)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.prevPage):
		if p.ctrl.PrevPage() {
			p.cursor = 0
			return p.fetchCmd()
		}
	case key.Matches(msg, keys.nextPage):
		if p.ctrl.NextPage() {
			p.cursor = 0
			return p.fetchCmd()
		}
	case key.Matches(msg, keys.refresh):
		p.status = ""
		return p.fetchCmd()
	case key.Matches(msg, keys.search):
		p.searching = true
		p.search.SetValue(p.ctrl.Snapshot().Search)
		p.search.CursorEnd()
		return p.search.Focus()
	case key.Matches(msg, keys.tab):
		if len(p.filters) > 0 {
			p.filterIdx = (p.filterIdx + 1) % len(p.filters)
		}
	case key.Matches(msg, keys.filter):
		return p.cycleFilter()
	case key.Matches(msg, keys.sort):
		p.cycleSort()
	case key.Matches(msg, keys.sortFlip):
		p.ctrl.SortBy(p.ctrl.Snapshot().Sort.Key)
	case key.Matches(msg, keys.selectOne):
		if item, ok := p.current(view); ok {
			p.ctrl.ToggleSelect(p.id(item))
		}
	case key.Matches(msg, keys.selectAll):
		p.ctrl.SelectAll()
	case key.Matches(msg, keys.copy):
		p.copySelection(view)
	default:
		return p.startAction(msg.String(), view)
	}
	return nil
}

func (p *listPage[T]) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.enter):
		p.searching = false
		p.search.Blur()
		p.cursor = 0
		if p.searchDirty {
			p.searchDirty = false
			return p.fetchCmd()
		}
		return nil
	case key.Matches(msg, keys.esc):
		p.searching = false
		p.search.Blur()
		p.search.SetValue("")
		p.cursor = 0
		if p.ctrl.SetSearch("") || p.searchDirty {
			p.searchDirty = false
			return p.fetchCmd()
		}
		return nil
	}

	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	if p.ctrl.SetSearch(p.search.Value()) {
		p.searchDirty = true
	}
	p.clampCursor()
	return cmd
}

func (p *listPage[T]) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	action, item := p.confirming, p.target
	switch {
	case key.Matches(msg, keys.yes):
		p.confirming, p.target = nil, nil
		return p.runAction(action, item)
	case key.Matches(msg, keys.no):
		p.confirming, p.target = nil, nil
	}
	return nil
}

func (p *listPage[T]) updateForm(msg tea.Msg) tea.Cmd {
	state, cmd := p.form.Update(msg)
	switch state {
	case formCancelled:
		p.form, p.formAction = nil, nil
		return nil
	case formSubmitted:
		action, item, values := p.formAction, p.target, p.form.values()
		ctx, screen := p.ctx, p.screen
		return func() tea.Msg {
			return listActionMsg{screen: screen, status: action.done, err: action.submit(ctx, item, values)}
		}
	}
	return cmd
}

func (p *listPage[T]) handleActionResult(msg listActionMsg) tea.Cmd {
	p.clampCursor()
	if msg.err != nil {
		text := humanize(msg.err, app.MsgPerformActionFailed)
		if p.form != nil {
			p.form.fail(text)
			return nil
		}
		p.ctrl.SetInlineError(text)
		p.status = ""
		return nil
	}

	p.form, p.formAction, p.target = nil, nil, nil
	p.status = msg.status
	return nil
}

func (p *listPage[T]) startAction(pressed string, view []T) tea.Cmd {
	idx := slices.IndexFunc(p.actions, func(a listAction[T]) bool { return a.key == pressed })
	if idx < 0 {
		return nil
	}
	action := &p.actions[idx]

	d := access.Guard{Constraints: action.allow, Fallback: app.MsgAccessDenied}.Decide(p.session.Session())
	if d.Outcome != access.OutcomeRender {
		p.ctrl.SetInlineError(app.MsgAccessDenied)
		return nil
	}

	var item *T
	if cur, ok := p.current(view); ok {
		item = &cur
	}
	if action.needsItem && item == nil {
		return nil
	}

	p.status = ""
	if action.form != nil {
		p.target = item
		p.formAction = action
		p.form = action.form(item)
		return textinput.Blink
	}
	if action.confirm != nil {
		p.confirming = action
		p.confirmMsg = action.confirm(item)
		p.target = item
		return nil
	}
	return p.runAction(action, item)
}

func (p *listPage[T]) runAction(action *listAction[T], item *T) tea.Cmd {
	ctx, screen := p.ctx, p.screen
	return func() tea.Msg {
		return listActionMsg{screen: screen, status: action.done, err: action.run(ctx, item)}
	}
}

func (p *listPage[T]) cycleFilter() tea.Cmd {
	if len(p.filters) == 0 {
		return nil
	}
	spec := p.filters[p.filterIdx]
	currentIdx := slices.Index(spec.values, p.ctrl.Filter(spec.name))
	next := spec.values[(currentIdx+1)%len(spec.values)]

	p.cursor = 0
	if p.ctrl.SetFilter(spec.name, next) {
		return p.fetchCmd()
	}
	return nil
}

func (p *listPage[T]) cycleSort() {
	sortKeys := p.ctrl.SortKeys()
	if len(sortKeys) == 0 {
		return
	}
	idx := slices.Index(sortKeys, p.ctrl.Snapshot().Sort.Key)
	p.ctrl.SetSort(service.Sort{Key: sortKeys[(idx+1)%len(sortKeys)]})
}

// copySelection copies the selected ids, or the row under the cursor when
// nothing is selected.
func (p *listPage[T]) copySelection(view []T) {
	var text string
	if ids := p.ctrl.Selected(); len(ids) > 0 {
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.FormatInt(id, 10)
		}
		text = strings.Join(parts, ",")
	} else if item, ok := p.current(view); ok {
		cells := make([]string, len(p.columns))
		for i, c := range p.columns {
			cells[i] = c.value(item)
		}
		text = strings.Join(cells, "\t")
	} else {
		return
	}

	if err := p.copyText(text); err != nil {
		p.ctrl.SetInlineError(app.MsgCopyFailed)
		return
	}
	p.status = "Copied to clipboard"
}

func (p *listPage[T]) current(view []T) (T, bool) {
	if p.cursor < 0 || p.cursor >= len(view) {
		var zero T
		return zero, false
	}
	return view[p.cursor], true
}

func (p *listPage[T]) clampCursor() {
	n := len(p.ctrl.View())
	p.cursor = min(p.cursor, max(n-1, 0))
}

func (p *listPage[T]) View() string {
	if p.form != nil {
		return p.form.View()
	}

	snap := p.ctrl.Snapshot()
	view := p.ctrl.View()

	if snap.PageError != nil && len(snap.Items) == 0 {
		overlay := errorOverlayModel{message: humanize(snap.PageError, snap.PageError.Message)}
		return renderPage(p.title, overlay.View(), "r: retry │ esc: menu")
	}

	var b strings.Builder
	b.WriteString(p.toolbar(snap))
	b.WriteString("\n\n")

	if len(view) == 0 {
		if snap.Loading {
			b.WriteString("Loading...")
		} else {
			b.WriteString("Nothing to show.")
		}
	} else {
		b.WriteString(p.table(view))
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Page %d of %d │ %d total │ %d selected", snap.Page, snap.TotalPages, snap.TotalElements, len(snap.Selected)))

	if snap.PageError != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(humanize(snap.PageError, snap.PageError.Message)))
	}
	if snap.InlineError != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + snap.InlineError))
	}
	if p.status != "" {
		b.WriteString("\n")
		b.WriteString(successStyle.Render(p.status))
	}
	if p.confirming != nil {
		b.WriteString("\n\n")
		b.WriteString(confirmModel{message: p.confirmMsg}.View())
	}

	return renderPage(p.title, b.String(), p.help())
}

func (p *listPage[T]) toolbar(snap service.ListState[T]) string {
	var parts []string

	if p.searching {
		parts = append(parts, "Search: "+p.search.View())
	} else if snap.Search != "" {
		parts = append(parts, "Search: "+snap.Search)
	}

	for i, f := range p.filters {
		label := fmt.Sprintf("%s: %s", f.label, p.ctrl.Filter(f.name))
		if i == p.filterIdx {
			label = cursorStyle.Render(label)
		}
		parts = append(parts, label)
	}

	if snap.Sort.Key != "" {
		parts = append(parts, fmt.Sprintf("Sort: %s %s", snap.Sort.Key, snap.Sort.Direction))
	}
	return strings.Join(parts, " │ ")
}

func (p *listPage[T]) table(view []T) string {
	header := make([]string, 0, len(p.columns)+1)
	header = append(header, "  ")
	for _, c := range p.columns {
		header = append(header, c.title)
	}

	rows := make([][]string, 0, len(view))
	for i, item := range view {
		marker := " "
		if i == p.cursor {
			marker = ">"
		}
		sel := " "
		if p.ctrl.IsSelected(p.id(item)) {
			sel = "*"
		}

		row := make([]string, 0, len(p.columns)+1)
		row = append(row, marker+sel)
		for _, c := range p.columns {
			row = append(row, fitText(c.value(item), 32))
		}
		rows = append(rows, row)
	}
	return renderTable(header, rows)
}

func (p *listPage[T]) help() string {
	if p.confirming != nil {
		return "y: confirm │ n: cancel"
	}
	if p.searching {
		return "enter: apply │ esc: clear"
	}

	parts := []string{"esc: menu", "↑/↓: move", "←/→: page", "/: search"}
	if len(p.filters) > 0 {
		parts = append(parts, "tab/f: filter")
	}
	parts = append(parts, "o/O: sort", "space/A: select", "y: copy", "r: refresh")

	user := p.session.Session().User
	for _, a := range p.actions {
		if a.allow.Allows(user) {
			parts = append(parts, a.key+": "+a.label)
		}
	}
	return strings.Join(parts, " │ ")
}

func navigate(screen access.Screen) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Screen: screen} }
}

// sessionUserID returns the numeric id of the signed-in operator, or 0.
func sessionUserID(s models.Session) int64 {
	if s.User == nil {
		return 0
	}
	id, _ := strconv.ParseInt(s.User.ID, 10, 64)
	return id
}
