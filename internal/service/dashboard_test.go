package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/commerce-console/internal/adapter"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/internal/mock"
	"github.com/MKhiriev/commerce-console/models"
)

type dashboardFixture struct {
	svc           *DashboardService
	users         *mock.MockUsersAPI
	orders        *mock.MockOrdersAPI
	inventory     *mock.MockInventoryAPI
	notifications *mock.MockNotificationsAPI
	session       *mock.MockSessionService
}

func newDashboardFixture(t *testing.T, user *models.User) *dashboardFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &dashboardFixture{
		users:         mock.NewMockUsersAPI(ctrl),
		orders:        mock.NewMockOrdersAPI(ctrl),
		inventory:     mock.NewMockInventoryAPI(ctrl),
		notifications: mock.NewMockNotificationsAPI(ctrl),
		session:       mock.NewMockSessionService(ctrl),
	}
	f.session.EXPECT().Session().Return(models.Session{User: user}).AnyTimes()
	f.svc = NewDashboardService(f.users, f.orders, f.inventory, f.notifications, f.session, 10, logger.Nop())
	f.svc.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

var unreadQuery = models.ListQuery{Page: 0, Size: 1, UnreadOnly: true}

func TestDashboardService_NotAuthenticated(t *testing.T) {
	f := newDashboardFixture(t, nil)

	_, err := f.svc.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestDashboardService_AdminSourcesSettleIndependently(t *testing.T) {
	f := newDashboardFixture(t, &models.User{Username: "root", Roles: []models.Role{models.RoleAdmin}})

	f.users.EXPECT().List(gomock.Any(), counterQuery).Return(models.Page[models.DirectoryUser]{}, adapter.ErrBadGateway)
	f.orders.EXPECT().List(gomock.Any(), counterQuery).Return(models.Page[models.Order]{
		Items:         []models.Order{{TotalAmount: 10}, {TotalAmount: 5.5}},
		TotalElements: 12,
		TotalPages:    6,
	}, nil)
	f.inventory.EXPECT().List(gomock.Any(), counterQuery).Return(models.Page[models.Product]{TotalElements: 30}, nil)
	f.notifications.EXPECT().List(gomock.Any(), unreadQuery).Return(models.Page[models.Notification]{TotalElements: 3}, nil)
	f.inventory.EXPECT().LowStock(gomock.Any()).Return(models.Page[models.Product]{TotalElements: 2}, nil)

	dash, err := f.svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.RoleAdmin, dash.Role)
	assert.Equal(t, []string{SourceUsers}, dash.Failed)
	assert.Equal(t, int64(0), dash.Stats.TotalUsers)
	assert.Equal(t, int64(12), dash.Stats.TotalOrders)
	assert.InDelta(t, 15.5, dash.Stats.Revenue, 1e-9)
	assert.Equal(t, int64(30), dash.Stats.TotalProducts)
	assert.Equal(t, int64(3), dash.Stats.UnreadNotifications)
	assert.Equal(t, int64(2), dash.Stats.LowStockProducts)
	assert.Equal(t, f.svc.now(), dash.UpdatedAt)

	levels := map[string]models.ActivityLevel{}
	for _, a := range dash.Activities {
		levels[a.Kind] = a.Level
	}
	assert.Equal(t, models.ActivityError, levels[SourceUsers])
	assert.Equal(t, models.ActivitySuccess, levels[SourceOrders])
	assert.Equal(t, models.ActivityWarning, levels[SourceNotifications])
	assert.Equal(t, models.ActivityWarning, levels[SourceLowStock])

	assert.Equal(t, dash, f.svc.Current())
}

func TestDashboardService_AllSourcesFailing(t *testing.T) {
	f := newDashboardFixture(t, &models.User{Username: "sup", Roles: []models.Role{models.RoleSupport}})

	f.notifications.EXPECT().List(gomock.Any(), counterQuery).Return(models.Page[models.Notification]{}, adapter.ErrTransport)
	f.users.EXPECT().List(gomock.Any(), counterQuery).Return(models.Page[models.DirectoryUser]{}, adapter.ErrForbidden)

	dash, err := f.svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{SourceNotifications, SourceUsers}, dash.Failed)
	assert.Equal(t, models.DashboardStats{}, dash.Stats)
}

func TestDashboardService_UserSeesOwnOrders(t *testing.T) {
	f := newDashboardFixture(t, &models.User{ID: "15", Username: "bob", Roles: []models.Role{models.RoleUser}})

	f.notifications.EXPECT().List(gomock.Any(), counterQuery).Return(models.Page[models.Notification]{TotalElements: 4}, nil)
	f.orders.EXPECT().ListByUser(gomock.Any(), int64(15)).Return(models.Page[models.Order]{
		Items:         []models.Order{{TotalAmount: 20}},
		TotalElements: 1,
	}, nil)

	dash, err := f.svc.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dash.Failed)
	assert.Equal(t, int64(4), dash.Stats.TotalNotifications)
	assert.Equal(t, int64(1), dash.Stats.TotalOrders)
	assert.InDelta(t, 20.0, dash.Stats.Revenue, 1e-9)
}

func TestDashboardService_UserWithoutIDListsAllOrders(t *testing.T) {
	f := newDashboardFixture(t, &models.User{Username: "new", Roles: []models.Role{models.RoleUser}})

	f.notifications.EXPECT().List(gomock.Any(), counterQuery).Return(models.Page[models.Notification]{}, nil)
	f.orders.EXPECT().List(gomock.Any(), counterQuery).Return(models.Page[models.Order]{}, nil)

	_, err := f.svc.Load(context.Background())
	require.NoError(t, err)
}

func moderatorDashboard(t *testing.T) *dashboardFixture {
	t.Helper()
	f := newDashboardFixture(t, &models.User{Username: "mod", Roles: []models.Role{models.RoleModerator}})

	submitted := mustTimestamp(t, `"2026-04-30T09:00:00"`)
	f.inventory.EXPECT().List(gomock.Any(), counterQuery).Return(models.Page[models.Product]{TotalElements: 40}, nil)
	f.notifications.EXPECT().List(gomock.Any(), unreadQuery).Return(models.Page[models.Notification]{TotalElements: 0}, nil)
	f.inventory.EXPECT().List(gomock.Any(), models.ListQuery{Page: 0, Size: 10, Status: "INACTIVE"}).Return(models.Page[models.Product]{
		Items: []models.Product{
			{ID: 7, Name: "Lamp", SKU: "L-7", Status: models.ProductInactive, CreatedAt: submitted},
			{ID: 8, Name: "Desk", SKU: "D-8", Status: models.ProductInactive},
		},
		TotalElements: 2,
	}, nil)

	dash, err := f.svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, dash.Pending, 2)
	assert.Equal(t, int64(2), dash.Stats.PendingReviews)
	assert.Equal(t, submitted.Time, dash.Pending[0].Submitted)
	return f
}

func TestDashboardService_Approve(t *testing.T) {
	f := moderatorDashboard(t)
	ctx := context.Background()

	lamp := models.Product{ID: 7, Name: "Lamp", SKU: "L-7", Price: 25, Quantity: 3, Status: models.ProductInactive}
	f.inventory.EXPECT().Get(ctx, int64(7)).Return(lamp, nil)
	f.inventory.EXPECT().Update(ctx, int64(7), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, req models.ProductRequest) (models.Product, error) {
			assert.Equal(t, models.ProductActive, req.Status)
			assert.Equal(t, 25.0, req.Price)
			return lamp, nil
		})

	require.NoError(t, f.svc.Approve(ctx, 7))

	dash := f.svc.Current()
	require.Len(t, dash.Pending, 1)
	assert.Equal(t, int64(8), dash.Pending[0].ProductID)
	assert.Equal(t, int64(1), dash.Stats.PendingReviews)
}

func TestDashboardService_RejectFailureStillRemovesLocally(t *testing.T) {
	f := moderatorDashboard(t)
	ctx := context.Background()

	desk := models.Product{ID: 8, Name: "Desk", Status: models.ProductInactive}
	f.inventory.EXPECT().Get(ctx, int64(8)).Return(desk, nil)
	f.inventory.EXPECT().Update(ctx, int64(8), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, req models.ProductRequest) (models.Product, error) {
			assert.Equal(t, models.ProductDiscontinued, req.Status)
			return models.Product{}, adapter.ErrInternalServerError
		})

	err := f.svc.Reject(ctx, 8)
	require.Error(t, err)
	assert.Equal(t, "Failed to reject product", MessageOf(err, ""))

	dash := f.svc.Current()
	require.Len(t, dash.Pending, 1)
	assert.Equal(t, int64(7), dash.Pending[0].ProductID)
}
