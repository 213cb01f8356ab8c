package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/commerce-console/internal/adapter"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/internal/mock"
	"github.com/MKhiriev/commerce-console/models"
)

// ── Inventory ────────────────────────────────────────────────────────────────

func TestInventoryService_LowStockFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockInventoryAPI(ctrl)
	svc := NewInventoryService(api, 20, 10, logger.Nop())

	api.EXPECT().List(gomock.Any(), models.ListQuery{Page: 0, Size: 20}).Return(models.Page[models.Product]{
		Items: []models.Product{
			{ID: 1, Name: "Widget", Quantity: 3},
			{ID: 2, Name: "Gadget", Quantity: 50},
			{ID: 3, Name: "Bolt", Quantity: 10},
			{ID: 4, Name: "Nut", Quantity: 9},
		},
		TotalElements: 4,
		TotalPages:    1,
	}, nil)
	require.NoError(t, svc.Fetch(context.Background()))

	assert.False(t, svc.SetFilter(FilterLowStock, LowStockOnly))

	var got []string
	for _, p := range svc.View() {
		got = append(got, p.Name)
		assert.True(t, svc.LowStock(p))
	}
	// default sort is by name
	assert.Equal(t, []string{"Nut", "Widget"}, got)
}

func TestInventoryService_StatusFilterIsSentToServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockInventoryAPI(ctrl)
	svc := NewInventoryService(api, 10, 10, logger.Nop())

	api.EXPECT().List(gomock.Any(), models.ListQuery{Page: 0, Size: 10, Status: "INACTIVE", Search: "bolt"}).
		Return(models.Page[models.Product]{TotalPages: 1}, nil)

	assert.True(t, svc.SetFilter(FilterProductStatus, "INACTIVE"))
	assert.True(t, svc.SetSearch("bolt"))
	require.NoError(t, svc.Fetch(context.Background()))
}

func TestInventoryService_ToggleStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockInventoryAPI(ctrl)
	svc := NewInventoryService(api, 10, 10, logger.Nop())
	ctx := context.Background()

	product := models.Product{ID: 5, SKU: "W-1", Name: "Widget", Price: 9.99, Quantity: 4, Status: models.ProductActive}
	page := models.Page[models.Product]{Items: []models.Product{product}, TotalPages: 1}

	gomock.InOrder(
		api.EXPECT().List(gomock.Any(), gomock.Any()).Return(page, nil),
		api.EXPECT().Update(ctx, int64(5), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, req models.ProductRequest) (models.Product, error) {
				assert.Equal(t, models.ProductInactive, req.Status)
				assert.Equal(t, "W-1", req.SKU)
				assert.Equal(t, 4, req.Quantity)
				return product, nil
			}),
		api.EXPECT().List(gomock.Any(), gomock.Any()).Return(page, nil),
	)

	require.NoError(t, svc.Fetch(ctx))
	require.NoError(t, svc.ToggleStatus(ctx, 5))
}

func TestInventoryService_ToggleStatus_UnknownProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockInventoryAPI(ctrl)
	svc := NewInventoryService(api, 10, 10, logger.Nop())

	err := svc.ToggleStatus(context.Background(), 77)
	require.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.Equal(t, "Failed to update product", svc.Snapshot().InlineError)
}

func TestInventoryService_DeleteFailureSurfacesBackendMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockInventoryAPI(ctrl)
	svc := NewInventoryService(api, 10, 10, logger.Nop())

	api.EXPECT().Delete(gomock.Any(), int64(3)).Return(&adapter.APIError{
		StatusCode: 409,
		Message:    "Product has open orders",
		Err:        adapter.ErrConflict,
	})

	err := svc.Delete(context.Background(), 3)
	require.ErrorIs(t, err, adapter.ErrConflict)
	assert.Equal(t, "Product has open orders", svc.Snapshot().InlineError)
}

// ── Orders ───────────────────────────────────────────────────────────────────

func TestOrdersService_Complete(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockOrdersAPI(ctrl)
	svc := NewOrdersService(api, 10, logger.Nop())
	ctx := context.Background()

	gomock.InOrder(
		api.EXPECT().UpdateStatus(ctx, int64(8), models.OrderCompleted).Return(models.Order{ID: 8, Status: models.OrderCompleted}, nil),
		api.EXPECT().List(gomock.Any(), models.ListQuery{Page: 0, Size: 10}).Return(models.Page[models.Order]{TotalPages: 1}, nil),
	)

	require.NoError(t, svc.Complete(ctx, 8))
}

func TestOrdersService_CancelFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockOrdersAPI(ctrl)
	svc := NewOrdersService(api, 10, logger.Nop())

	api.EXPECT().Cancel(gomock.Any(), int64(8)).Return(models.Order{}, adapter.ErrInternalServerError)

	err := svc.Cancel(context.Background(), 8)
	require.Error(t, err)
	assert.Equal(t, "Failed to cancel order", svc.Snapshot().InlineError)
}

func TestOrdersService_DefaultSortNewestFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockOrdersAPI(ctrl)
	svc := NewOrdersService(api, 10, logger.Nop())

	older := mustTimestamp(t, `"2025-01-02T10:00:00"`)
	newer := mustTimestamp(t, `"2025-03-01T08:30:00"`)
	api.EXPECT().List(gomock.Any(), gomock.Any()).Return(models.Page[models.Order]{
		Items: []models.Order{
			{ID: 1, OrderNumber: "ORD-1", OrderDate: older},
			{ID: 2, OrderNumber: "ORD-2", OrderDate: newer},
			{ID: 3, OrderNumber: "ORD-3"},
		},
		TotalPages: 1,
	}, nil)
	require.NoError(t, svc.Fetch(context.Background()))

	view := svc.View()
	require.Len(t, view, 3)
	assert.Equal(t, "ORD-2", view[0].OrderNumber)
	assert.Equal(t, "ORD-1", view[1].OrderNumber)
	assert.Equal(t, "ORD-3", view[2].OrderNumber, "orders without a date sort last")

	svc.SetSearch("ord-1")
	assert.Len(t, svc.View(), 1)
}

func mustTimestamp(t *testing.T, raw string) *models.Timestamp {
	t.Helper()
	ts := &models.Timestamp{}
	require.NoError(t, ts.UnmarshalJSON([]byte(raw)))
	return ts
}

// ── Users ────────────────────────────────────────────────────────────────────

func TestUsersService_RoleAndStatusFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockUsersAPI(ctrl)
	svc := NewUsersService(api, 10, logger.Nop())

	api.EXPECT().List(gomock.Any(), gomock.Any()).Return(models.Page[models.DirectoryUser]{
		Items: []models.DirectoryUser{
			{ID: 1, Username: "zoe", Role: models.RoleAdmin, Active: true},
			{ID: 2, Username: "adam", Role: models.RoleUser, Active: false},
			{ID: 3, Username: "mia", Role: models.RoleUser, Active: true},
		},
		TotalPages: 1,
	}, nil)
	require.NoError(t, svc.Fetch(context.Background()))

	svc.SetFilter(FilterUserRole, "user")
	assert.Len(t, svc.View(), 2)

	svc.SetFilter(FilterUserStatus, "inactive")
	view := svc.View()
	require.Len(t, view, 1)
	assert.Equal(t, "adam", view[0].Username)
}

func TestUsersService_ToggleStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockUsersAPI(ctrl)
	svc := NewUsersService(api, 10, logger.Nop())

	api.EXPECT().ToggleStatus(gomock.Any(), int64(2)).Return(nil)
	api.EXPECT().List(gomock.Any(), gomock.Any()).Return(models.Page[models.DirectoryUser]{TotalPages: 1}, nil)

	require.NoError(t, svc.ToggleStatus(context.Background(), 2))
}

// ── Notifications ────────────────────────────────────────────────────────────

func TestNotificationsService_MarkAllReadIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockNotificationsAPI(ctrl)
	svc := NewNotificationsService(api, 10, logger.Nop())
	ctx := context.Background()

	api.EXPECT().MarkAllRead(ctx).Return(nil).Times(2)
	api.EXPECT().List(gomock.Any(), gomock.Any()).Return(models.Page[models.Notification]{TotalPages: 1}, nil).Times(2)
	api.EXPECT().UnreadCount(ctx).Return(int64(0), nil).Times(2)

	require.NoError(t, svc.MarkAllRead(ctx))
	first := svc.Snapshot()
	require.NoError(t, svc.MarkAllRead(ctx))
	second := svc.Snapshot()

	assert.Equal(t, int64(0), svc.UnreadCount())
	assert.Equal(t, first.Items, second.Items)
	assert.Empty(t, second.InlineError)
}

func TestNotificationsService_UnreadFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockNotificationsAPI(ctrl)
	svc := NewNotificationsService(api, 5, logger.Nop())
	ctx := context.Background()

	api.EXPECT().List(gomock.Any(), models.ListQuery{Page: 0, Size: 5, UnreadOnly: true}).Return(models.Page[models.Notification]{
		Items:      []models.Notification{{ID: 1, Title: "Low stock", Type: "ALERT"}, {ID: 2, Title: "Welcome", Type: "INFO"}},
		TotalPages: 1,
	}, nil)
	api.EXPECT().UnreadCount(ctx).Return(int64(2), nil)

	assert.True(t, svc.SetFilter(FilterNotificationStatus, UnreadOnly))
	require.NoError(t, svc.Refresh(ctx))
	assert.Equal(t, int64(2), svc.UnreadCount())

	svc.SetFilter(FilterNotificationType, "ALERT")
	view := svc.View()
	require.Len(t, view, 1)
	assert.Equal(t, int64(1), view[0].ID)
}

func TestNotificationsService_UnreadCountFailureKeepsLastValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockNotificationsAPI(ctrl)
	svc := NewNotificationsService(api, 5, logger.Nop())
	ctx := context.Background()

	gomock.InOrder(
		api.EXPECT().UnreadCount(ctx).Return(int64(4), nil),
		api.EXPECT().UnreadCount(ctx).Return(int64(0), adapter.ErrBadGateway),
	)

	svc.RefreshUnreadCount(ctx)
	svc.RefreshUnreadCount(ctx)
	assert.Equal(t, int64(4), svc.UnreadCount())
}

func TestNotificationsService_DeleteSelected(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockNotificationsAPI(ctrl)
	svc := NewNotificationsService(api, 10, logger.Nop())
	ctx := context.Background()

	page := models.Page[models.Notification]{
		Items:      []models.Notification{{ID: 1}, {ID: 2}, {ID: 3}},
		TotalPages: 1,
	}
	api.EXPECT().List(gomock.Any(), gomock.Any()).Return(page, nil)
	require.NoError(t, svc.Fetch(ctx))

	var mu sync.Mutex
	var deleted []int64
	api.EXPECT().Delete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id int64) error {
		mu.Lock()
		defer mu.Unlock()
		deleted = append(deleted, id)
		return nil
	}).Times(2)
	api.EXPECT().List(gomock.Any(), gomock.Any()).Return(models.Page[models.Notification]{
		Items:      []models.Notification{{ID: 2}},
		TotalPages: 1,
	}, nil)
	api.EXPECT().UnreadCount(ctx).Return(int64(1), nil)

	svc.ToggleSelect(1)
	svc.ToggleSelect(3)
	require.NoError(t, svc.DeleteSelected(ctx))

	assert.ElementsMatch(t, []int64{1, 3}, deleted)
	assert.Empty(t, svc.Selected())
	assert.Len(t, svc.Snapshot().Items, 1)
}

func TestNotificationsService_DeleteSelectedFailureKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockNotificationsAPI(ctrl)
	svc := NewNotificationsService(api, 10, logger.Nop())
	ctx := context.Background()

	api.EXPECT().List(gomock.Any(), gomock.Any()).Return(models.Page[models.Notification]{
		Items:      []models.Notification{{ID: 1}, {ID: 2}},
		TotalPages: 1,
	}, nil)
	require.NoError(t, svc.Fetch(ctx))

	api.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("boom")).MinTimes(1).MaxTimes(2)

	svc.SelectAll()
	err := svc.DeleteSelected(ctx)
	require.Error(t, err)

	s := svc.Snapshot()
	assert.Equal(t, "Failed to perform bulk action", s.InlineError)
	assert.Len(t, s.Items, 2)
	assert.Equal(t, []int64{1, 2}, s.Selected)
}

func TestNotificationsService_DeleteSelectedWithoutSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockNotificationsAPI(ctrl)
	svc := NewNotificationsService(api, 10, logger.Nop())

	require.NoError(t, svc.DeleteSelected(context.Background()))
}
