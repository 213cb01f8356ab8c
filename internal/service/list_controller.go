package service

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/models"
)

// FilterAll is the filter value that disables a filter.
const FilterAll = "all"

type SortDirection int

const (
	SortAsc SortDirection = iota
	SortDesc
)

func (d SortDirection) String() string {
	if d == SortDesc {
		return "desc"
	}
	return "asc"
}

type SortKind int

const (
	// SortText compares case-folded strings.
	SortText SortKind = iota
	// SortNumeric compares numbers.
	SortNumeric
	// SortDate compares Unix times.
	SortDate
)

// SortField extracts the sort value of an item. Text is used for SortText,
// Number for the other kinds.
type SortField[T any] struct {
	Kind   SortKind
	Text   func(T) string
	Number func(T) float64
}

func (f SortField[T]) compare(a, b T) int {
	if f.Kind == SortText {
		return strings.Compare(strings.ToLower(f.Text(a)), strings.ToLower(f.Text(b)))
	}
	return cmp.Compare(f.Number(a), f.Number(b))
}

type Sort struct {
	Key       string
	Direction SortDirection
}

// ListConfig describes one resource collection.
type ListConfig[T any] struct {
	// Name labels log entries.
	Name string

	Fetch func(ctx context.Context, q models.ListQuery) (models.Page[T], error)
	ID    func(T) int64

	// TextFields are searched case-insensitively for the search term.
	TextFields []func(T) string

	// Filters are categorical predicates applied to the fetched page.
	Filters map[string]func(item T, value string) bool

	// ServerFilters are sent with the fetch instead of being applied
	// locally. Changing one goes back to the first page.
	ServerFilters map[string]func(q *models.ListQuery, value string)

	// ServerSearch sends the search term with the fetch as well.
	ServerSearch bool

	SortFields  map[string]SortField[T]
	DefaultSort Sort
	PageSize    int

	// FetchFailed is the page error shown when the backend sends no
	// message.
	FetchFailed string
}

// ListState is a snapshot of a [ListController].
type ListState[T any] struct {
	// Items is the current page in server order.
	Items []T

	Search   string
	Filters  map[string]string
	Sort     Sort
	Selected []int64

	// Page is 1-based.
	Page          int
	TotalPages    int
	TotalElements int64

	Loading     bool
	PageError   *UserError
	InlineError string
}

// ListController fetches one page of a collection and presents a filtered,
// sorted view of it with a selection set.
//
// Every fetch is numbered. A response older than the latest applied one is
// dropped, so a slow earlier fetch cannot overwrite newer state.
type ListController[T any] struct {
	cfg    ListConfig[T]
	logger *logger.Logger

	mu       sync.Mutex
	state    ListState[T]
	selected map[int64]struct{}
	issued   uint64
	applied  uint64
}

func NewListController[T any](cfg ListConfig[T], log *logger.Logger) *ListController[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return &ListController[T]{
		cfg:    cfg,
		logger: log,
		state: ListState[T]{
			Filters:    map[string]string{},
			Sort:       cfg.DefaultSort,
			Page:       1,
			TotalPages: 1,
		},
		selected: map[int64]struct{}{},
	}
}

func (c *ListController[T]) Name() string {
	return c.cfg.Name
}

// Snapshot returns a copy of the current state.
func (c *ListController[T]) Snapshot() ListState[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Items = slices.Clone(c.state.Items)
	s.Filters = maps.Clone(c.state.Filters)
	s.Selected = c.selectedLocked()
	return s
}

// View returns the filtered and sorted items of the current page.
func (c *ListController[T]) View() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Fetch loads the current page. A failure is recorded as the page error and
// returned. When the page range shrank below the current page, Fetch moves to
// the last page and loads it.
func (c *ListController[T]) Fetch(ctx context.Context) error {
	for {
		moved, err := c.fetch(ctx)
		if err != nil || !moved {
			return err
		}
	}
}

func (c *ListController[T]) fetch(ctx context.Context) (bool, error) {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	q := c.queryLocked()
	c.state.Loading = true
	c.mu.Unlock()

	page, err := c.cfg.Fetch(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.applied {
		c.logger.Debug().Str("list", c.cfg.Name).Uint64("seq", seq).Msg("dropping stale page")
		return false, nil
	}
	c.applied = seq
	c.state.Loading = c.applied < c.issued

	if err != nil {
		ue := toUserError(err, c.cfg.FetchFailed)
		c.state.PageError = ue
		c.logger.Err(err).Str("list", c.cfg.Name).Msg("fetch failed")
		return false, ue
	}

	c.state.Items = page.Items
	if c.state.Items == nil {
		c.state.Items = []T{}
	}
	c.state.TotalPages = max(page.TotalPages, 1)
	c.state.TotalElements = page.TotalElements
	c.state.PageError = nil
	c.pruneSelectionLocked()

	if c.state.Page > c.state.TotalPages {
		c.state.Page = c.state.TotalPages
		return true, nil
	}
	return false, nil
}

// SetPage moves to page n (1-based), clamped to the known page range. It
// reports whether the page changed.
func (c *ListController[T]) SetPage(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n = min(max(n, 1), c.state.TotalPages)
	if n == c.state.Page {
		return false
	}
	c.state.Page = n
	return true
}

func (c *ListController[T]) NextPage() bool {
	c.mu.Lock()
	page := c.state.Page
	c.mu.Unlock()
	return c.SetPage(page + 1)
}

func (c *ListController[T]) PrevPage() bool {
	c.mu.Lock()
	page := c.state.Page
	c.mu.Unlock()
	return c.SetPage(page - 1)
}

// SetSearch sets the search term. It reports whether a refetch is needed.
func (c *ListController[T]) SetSearch(term string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Search == term {
		return false
	}
	c.state.Search = term
	if c.cfg.ServerSearch {
		c.state.Page = 1
		return true
	}
	return false
}

// SetFilter sets filter name to value. It reports whether a refetch is
// needed.
func (c *ListController[T]) SetFilter(name, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if value == "" {
		value = FilterAll
	}
	if c.state.Filters[name] == value {
		return false
	}
	c.state.Filters[name] = value

	if _, ok := c.cfg.ServerFilters[name]; ok {
		c.state.Page = 1
		return true
	}
	return false
}

// Filter returns the value of filter name.
func (c *ListController[T]) Filter(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.state.Filters[name]; ok {
		return v
	}
	return FilterAll
}

// SortBy sorts by key ascending, or flips the direction when key is already
// active. Unknown keys are ignored.
func (c *ListController[T]) SortBy(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.cfg.SortFields[key]; !ok {
		return
	}
	if c.state.Sort.Key == key {
		if c.state.Sort.Direction == SortAsc {
			c.state.Sort.Direction = SortDesc
		} else {
			c.state.Sort.Direction = SortAsc
		}
		return
	}
	c.state.Sort = Sort{Key: key, Direction: SortAsc}
}

func (c *ListController[T]) SetSort(s Sort) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.cfg.SortFields[s.Key]; ok {
		c.state.Sort = s
	}
}

// SortKeys lists the sortable keys in a stable order.
func (c *ListController[T]) SortKeys() []string {
	return slices.Sorted(maps.Keys(c.cfg.SortFields))
}

func (c *ListController[T]) ToggleSelect(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
		return
	}
	c.selected[id] = struct{}{}
}

// SelectAll selects every item of the filtered view, or clears the
// selection when the view is already fully selected.
func (c *ListController[T]) SelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := c.viewLocked()
	if len(view) > 0 && len(c.selected) == len(view) && c.allSelectedLocked(view) {
		clear(c.selected)
		return
	}

	clear(c.selected)
	for _, item := range view {
		c.selected[c.cfg.ID(item)] = struct{}{}
	}
}

func (c *ListController[T]) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.selected)
}

func (c *ListController[T]) IsSelected(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.selected[id]
	return ok
}

// Selected returns the selected ids in ascending order.
func (c *ListController[T]) Selected() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedLocked()
}

// RemoveLocal drops the item with id from the current page without a
// backend call. It reports whether the item was present.
func (c *ListController[T]) RemoveLocal(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.state.Items)
	c.state.Items = slices.DeleteFunc(slices.Clone(c.state.Items), func(item T) bool {
		return c.cfg.ID(item) == id
	})
	delete(c.selected, id)
	return len(c.state.Items) != before
}

// Mutate runs fn and refetches the current page on success. On failure the
// inline error is set and the list state is left untouched.
func (c *ListController[T]) Mutate(ctx context.Context, fallback string, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		ue := toUserError(err, fallback)
		c.SetInlineError(ue.Message)
		c.logger.Err(err).Str("list", c.cfg.Name).Msg("mutation failed")
		return ue
	}

	c.SetInlineError("")
	if err := c.Fetch(ctx); err != nil {
		c.logger.Warn().Err(err).Str("list", c.cfg.Name).Msg("refetch after mutation failed")
	}
	return nil
}

func (c *ListController[T]) SetInlineError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.InlineError = msg
}

func (c *ListController[T]) queryLocked() models.ListQuery {
	q := models.ListQuery{
		Page: c.state.Page - 1,
		Size: c.cfg.PageSize,
	}
	if c.cfg.ServerSearch {
		q.Search = strings.TrimSpace(c.state.Search)
	}
	for name, apply := range c.cfg.ServerFilters {
		if v := c.state.Filters[name]; v != "" && v != FilterAll {
			apply(&q, v)
		}
	}
	return q
}

func (c *ListController[T]) viewLocked() []T {
	term := strings.ToLower(strings.TrimSpace(c.state.Search))

	view := make([]T, 0, len(c.state.Items))
	for _, item := range c.state.Items {
		if c.matchesLocked(item, term) {
			view = append(view, item)
		}
	}

	if f, ok := c.cfg.SortFields[c.state.Sort.Key]; ok {
		desc := c.state.Sort.Direction == SortDesc
		slices.SortStableFunc(view, func(a, b T) int {
			if desc {
				return f.compare(b, a)
			}
			return f.compare(a, b)
		})
	}
	return view
}

func (c *ListController[T]) matchesLocked(item T, term string) bool {
	if term != "" && len(c.cfg.TextFields) > 0 {
		found := false
		for _, field := range c.cfg.TextFields {
			if strings.Contains(strings.ToLower(field(item)), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for name, match := range c.cfg.Filters {
		v := c.state.Filters[name]
		if v == "" || v == FilterAll {
			continue
		}
		if !match(item, v) {
			return false
		}
	}
	return true
}

func (c *ListController[T]) allSelectedLocked(view []T) bool {
	for _, item := range view {
		if _, ok := c.selected[c.cfg.ID(item)]; !ok {
			return false
		}
	}
	return true
}

func (c *ListController[T]) selectedLocked() []int64 {
	return slices.Sorted(maps.Keys(c.selected))
}

// pruneSelectionLocked drops selected ids that left the page.
func (c *ListController[T]) pruneSelectionLocked() {
	present := make(map[int64]struct{}, len(c.state.Items))
	for _, item := range c.state.Items {
		present[c.cfg.ID(item)] = struct{}{}
	}
	for id := range c.selected {
		if _, ok := present[id]; !ok {
			delete(c.selected, id)
		}
	}
}
