package service

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/commerce-console/internal/adapter"
	"github.com/MKhiriev/commerce-console/internal/app"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/models"
)

// Filter names of the notifications list.
const (
	// FilterNotificationStatus takes "unread" and is sent to the service.
	FilterNotificationStatus = "status"
	FilterNotificationType   = "type"
	UnreadOnly               = "unread"
)

// bulkDeleteLimit bounds the concurrent deletes of DeleteSelected.
const bulkDeleteLimit = 4

// NotificationsService is the notifications screen.
type NotificationsService struct {
	*ListController[models.Notification]
	api    adapter.NotificationsAPI
	logger *logger.Logger

	unread atomic.Int64
}

func NewNotificationsService(api adapter.NotificationsAPI, pageSize int, log *logger.Logger) *NotificationsService {
	cfg := ListConfig[models.Notification]{
		Name:  "notifications",
		Fetch: api.List,
		ID:    func(n models.Notification) int64 { return n.ID },
		TextFields: []func(models.Notification) string{
			func(n models.Notification) string { return n.Title },
			func(n models.Notification) string { return n.Message },
		},
		Filters: map[string]func(models.Notification, string) bool{
			FilterNotificationType: func(n models.Notification, v string) bool { return n.Type == v },
		},
		ServerFilters: map[string]func(*models.ListQuery, string){
			FilterNotificationStatus: func(q *models.ListQuery, v string) { q.UnreadOnly = v == UnreadOnly },
		},
		SortFields: map[string]SortField[models.Notification]{
			"createdAt": {Kind: SortDate, Number: func(n models.Notification) float64 { return float64(n.CreatedAt.Unix()) }},
			"title":     {Kind: SortText, Text: func(n models.Notification) string { return n.Title }},
			"type":      {Kind: SortText, Text: func(n models.Notification) string { return n.Type }},
		},
		DefaultSort: Sort{Key: "createdAt", Direction: SortDesc},
		PageSize:    pageSize,
		FetchFailed: app.MsgFetchNotificationsFailed,
	}

	return &NotificationsService{
		ListController: NewListController(cfg, log),
		api:            api,
		logger:         log,
	}
}

// Refresh reloads the page and the unread counter.
func (s *NotificationsService) Refresh(ctx context.Context) error {
	err := s.Fetch(ctx)
	s.RefreshUnreadCount(ctx)
	return err
}

// UnreadCount returns the last known unread counter.
func (s *NotificationsService) UnreadCount() int64 {
	return s.unread.Load()
}

// RefreshUnreadCount reloads the unread counter. A failure keeps the last
// known value.
func (s *NotificationsService) RefreshUnreadCount(ctx context.Context) {
	count, err := s.api.UnreadCount(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to fetch unread count")
		return
	}
	s.unread.Store(count)
}

func (s *NotificationsService) MarkRead(ctx context.Context, id int64) error {
	err := s.Mutate(ctx, app.MsgMarkReadFailed, func(ctx context.Context) error {
		return s.api.MarkRead(ctx, id)
	})
	if err == nil {
		s.RefreshUnreadCount(ctx)
	}
	return err
}

func (s *NotificationsService) Delete(ctx context.Context, id int64) error {
	err := s.Mutate(ctx, app.MsgDeleteNotificationFailed, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
	if err == nil {
		s.RefreshUnreadCount(ctx)
	}
	return err
}

// MarkAllRead marks every notification read. Repeating it is harmless.
func (s *NotificationsService) MarkAllRead(ctx context.Context) error {
	err := s.Mutate(ctx, app.MsgBulkActionFailed, func(ctx context.Context) error {
		return s.api.MarkAllRead(ctx)
	})
	if err != nil {
		return err
	}
	s.ClearSelection()
	s.unread.Store(0)
	s.RefreshUnreadCount(ctx)
	return nil
}

// DeleteSelected deletes every selected notification concurrently.
func (s *NotificationsService) DeleteSelected(ctx context.Context) error {
	ids := s.Selected()
	if len(ids) == 0 {
		return nil
	}

	err := s.Mutate(ctx, app.MsgBulkActionFailed, func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(bulkDeleteLimit)
		for _, id := range ids {
			g.Go(func() error {
				return s.api.Delete(gctx, id)
			})
		}
		return g.Wait()
	})
	if err != nil {
		return err
	}

	s.ClearSelection()
	s.RefreshUnreadCount(ctx)
	return nil
}
