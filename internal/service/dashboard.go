package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/commerce-console/internal/adapter"
	"github.com/MKhiriev/commerce-console/internal/app"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/models"
)

// Dashboard sources, used in activity entries and models.Dashboard.Failed.
const (
	SourceUsers         = "users"
	SourceOrders        = "orders"
	SourceProducts      = "products"
	SourceNotifications = "notifications"
	SourceLowStock      = "low stock"
	SourceModeration    = "moderation queue"
)

// counterQuery asks only for the totals of a collection.
var counterQuery = models.ListQuery{Page: 0, Size: 1}

// DashboardService computes the role-specific dashboards. Every source is
// loaded concurrently and a failing source only zeroes its own counters.
type DashboardService struct {
	users         adapter.UsersAPI
	orders        adapter.OrdersAPI
	inventory     adapter.InventoryAPI
	notifications adapter.NotificationsAPI
	session       SessionService
	queueSize     int
	logger        *logger.Logger
	now           func() time.Time

	mu   sync.Mutex
	last models.Dashboard
}

func NewDashboardService(
	users adapter.UsersAPI,
	orders adapter.OrdersAPI,
	inventory adapter.InventoryAPI,
	notifications adapter.NotificationsAPI,
	session SessionService,
	queueSize int,
	log *logger.Logger,
) *DashboardService {
	return &DashboardService{
		users:         users,
		orders:        orders,
		inventory:     inventory,
		notifications: notifications,
		session:       session,
		queueSize:     queueSize,
		logger:        log,
		now:           time.Now,
	}
}

// Current returns the last loaded dashboard.
func (d *DashboardService) Current() models.Dashboard {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cloneDashboard(d.last)
}

// Load refreshes the dashboard of the signed-in operator's role.
func (d *DashboardService) Load(ctx context.Context) (models.Dashboard, error) {
	user := d.session.Session().User
	if user == nil {
		return models.Dashboard{}, ErrNotAuthenticated
	}
	return d.LoadRole(ctx, user.PrimaryRole())
}

// LoadRole refreshes the dashboard variant of role.
func (d *DashboardService) LoadRole(ctx context.Context, role models.Role) (models.Dashboard, error) {
	user := d.session.Session().User
	if user == nil {
		return models.Dashboard{}, ErrNotAuthenticated
	}

	b := &dashboardBuilder{dash: models.Dashboard{Role: role}, now: d.now()}

	var g errgroup.Group
	switch role {
	case models.RoleAdmin:
		g.Go(b.source(ctx, SourceUsers, d.countUsers))
		g.Go(b.source(ctx, SourceOrders, d.countOrders(0)))
		g.Go(b.source(ctx, SourceProducts, d.countProducts))
		g.Go(b.source(ctx, SourceNotifications, d.countUnread))
		g.Go(b.source(ctx, SourceLowStock, d.countLowStock))
	case models.RoleModerator:
		g.Go(b.source(ctx, SourceProducts, d.countProducts))
		g.Go(b.source(ctx, SourceNotifications, d.countUnread))
		g.Go(b.source(ctx, SourceModeration, d.loadQueue))
	case models.RoleSupport:
		g.Go(b.source(ctx, SourceNotifications, d.countNotifications))
		g.Go(b.source(ctx, SourceUsers, d.countUsers))
	default:
		userID, _ := strconv.ParseInt(user.ID, 10, 64)
		g.Go(b.source(ctx, SourceNotifications, d.countNotifications))
		g.Go(b.source(ctx, SourceOrders, d.countOrders(userID)))
	}
	_ = g.Wait()

	dash := b.result()
	for _, name := range dash.Failed {
		d.logger.Warn().Str("source", name).Str("role", role.String()).Msg("dashboard source failed")
	}

	d.mu.Lock()
	d.last = dash
	d.mu.Unlock()

	return cloneDashboard(dash), nil
}

// Approve activates a product from the moderation queue. The item leaves
// the local queue before the request is sent; a failure is reconciled by
// the next refresh.
func (d *DashboardService) Approve(ctx context.Context, productID int64) error {
	return d.moderate(ctx, productID, models.ProductActive, app.MsgApproveFailed)
}

// Reject discontinues a product from the moderation queue.
func (d *DashboardService) Reject(ctx context.Context, productID int64) error {
	return d.moderate(ctx, productID, models.ProductDiscontinued, app.MsgRejectFailed)
}

func (d *DashboardService) moderate(ctx context.Context, productID int64, status models.ProductStatus, fallback string) error {
	d.mu.Lock()
	before := len(d.last.Pending)
	d.last.Pending = slices.DeleteFunc(d.last.Pending, func(p models.PendingItem) bool {
		return p.ProductID == productID
	})
	if len(d.last.Pending) != before && d.last.Stats.PendingReviews > 0 {
		d.last.Stats.PendingReviews--
	}
	d.mu.Unlock()

	product, err := d.inventory.Get(ctx, productID)
	if err != nil {
		return userError(err, fallback)
	}

	req := product.Request()
	req.Status = status
	if _, err = d.inventory.Update(ctx, productID, req); err != nil {
		return userError(err, fallback)
	}

	d.logger.Info().Int64("product_id", productID).Str("status", string(status)).Msg("product moderated")
	return nil
}

func (d *DashboardService) countUsers(ctx context.Context, b *dashboardBuilder) error {
	page, err := d.users.List(ctx, counterQuery)
	if err != nil {
		b.activity(SourceUsers, "Failed to load users data", models.ActivityError)
		return err
	}
	b.update(func(dash *models.Dashboard) { dash.Stats.TotalUsers = page.TotalElements })
	b.activity(SourceUsers, fmt.Sprintf("Loaded %d users", page.TotalElements), models.ActivitySuccess)
	return nil
}

// countOrders counts all orders, or the orders of userID when it is set.
func (d *DashboardService) countOrders(userID int64) func(context.Context, *dashboardBuilder) error {
	return func(ctx context.Context, b *dashboardBuilder) error {
		var (
			page models.Page[models.Order]
			err  error
		)
		if userID > 0 {
			page, err = d.orders.ListByUser(ctx, userID)
		} else {
			page, err = d.orders.List(ctx, counterQuery)
		}
		if err != nil {
			b.activity(SourceOrders, "Failed to load orders data", models.ActivityError)
			return err
		}

		var revenue float64
		for _, o := range page.Items {
			revenue += o.TotalAmount
		}
		b.update(func(dash *models.Dashboard) {
			dash.Stats.TotalOrders = page.TotalElements
			dash.Stats.Revenue = revenue
		})
		b.activity(SourceOrders, fmt.Sprintf("Loaded %d orders", page.TotalElements), models.ActivitySuccess)
		return nil
	}
}

func (d *DashboardService) countProducts(ctx context.Context, b *dashboardBuilder) error {
	page, err := d.inventory.List(ctx, counterQuery)
	if err != nil {
		return err
	}
	b.update(func(dash *models.Dashboard) { dash.Stats.TotalProducts = page.TotalElements })
	return nil
}

func (d *DashboardService) countLowStock(ctx context.Context, b *dashboardBuilder) error {
	page, err := d.inventory.LowStock(ctx)
	if err != nil {
		return err
	}
	b.update(func(dash *models.Dashboard) { dash.Stats.LowStockProducts = page.TotalElements })
	if page.TotalElements > 0 {
		b.activity(SourceLowStock, fmt.Sprintf("%d products low on stock", page.TotalElements), models.ActivityWarning)
	}
	return nil
}

func (d *DashboardService) countUnread(ctx context.Context, b *dashboardBuilder) error {
	page, err := d.notifications.List(ctx, models.ListQuery{Page: 0, Size: 1, UnreadOnly: true})
	if err != nil {
		return err
	}
	level := models.ActivitySuccess
	if page.TotalElements > 0 {
		level = models.ActivityWarning
	}
	b.update(func(dash *models.Dashboard) { dash.Stats.UnreadNotifications = page.TotalElements })
	b.activity(SourceNotifications, fmt.Sprintf("%d pending notifications", page.TotalElements), level)
	return nil
}

func (d *DashboardService) countNotifications(ctx context.Context, b *dashboardBuilder) error {
	page, err := d.notifications.List(ctx, counterQuery)
	if err != nil {
		return err
	}
	b.update(func(dash *models.Dashboard) { dash.Stats.TotalNotifications = page.TotalElements })
	b.activity(SourceNotifications, fmt.Sprintf("%d notifications", page.TotalElements), models.ActivitySuccess)
	return nil
}

// loadQueue lists the INACTIVE products awaiting review.
func (d *DashboardService) loadQueue(ctx context.Context, b *dashboardBuilder) error {
	page, err := d.inventory.List(ctx, models.ListQuery{
		Page:   0,
		Size:   d.queueSize,
		Status: string(models.ProductInactive),
	})
	if err != nil {
		return err
	}

	pending := make([]models.PendingItem, 0, len(page.Items))
	for _, p := range page.Items {
		item := models.PendingItem{ProductID: p.ID, Name: p.Name, SKU: p.SKU}
		if p.CreatedAt != nil {
			item.Submitted = p.CreatedAt.Time
		}
		pending = append(pending, item)
	}

	b.update(func(dash *models.Dashboard) {
		dash.Pending = pending
		dash.Stats.PendingReviews = page.TotalElements
	})
	if len(pending) > 0 {
		b.activity(SourceModeration, fmt.Sprintf("%d products awaiting review", page.TotalElements), models.ActivityWarning)
	}
	return nil
}

// dashboardBuilder collects the results of concurrently loaded sources.
type dashboardBuilder struct {
	mu   sync.Mutex
	dash models.Dashboard
	now  time.Time
}

// source adapts fn to errgroup. Failures are recorded, never returned, so
// one source cannot cancel or hide the others.
func (b *dashboardBuilder) source(ctx context.Context, name string, fn func(context.Context, *dashboardBuilder) error) func() error {
	return func() error {
		if err := fn(ctx, b); err != nil {
			b.update(func(dash *models.Dashboard) { dash.Failed = append(dash.Failed, name) })
		}
		return nil
	}
}

func (b *dashboardBuilder) update(fn func(*models.Dashboard)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.dash)
}

func (b *dashboardBuilder) activity(kind, msg string, level models.ActivityLevel) {
	b.update(func(dash *models.Dashboard) {
		dash.Activities = append(dash.Activities, models.Activity{Kind: kind, Message: msg, Level: level, At: b.now})
	})
}

func (b *dashboardBuilder) result() models.Dashboard {
	b.mu.Lock()
	defer b.mu.Unlock()

	dash := b.dash
	dash.UpdatedAt = b.now
	slices.Sort(dash.Failed)
	slices.SortStableFunc(dash.Activities, func(a, c models.Activity) int {
		return strings.Compare(a.Kind, c.Kind)
	})
	return dash
}

func cloneDashboard(d models.Dashboard) models.Dashboard {
	d.Activities = slices.Clone(d.Activities)
	d.Pending = slices.Clone(d.Pending)
	d.Failed = slices.Clone(d.Failed)
	return d
}
