package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/commerce-console/models"
)

const notificationsPath = "/api/notifications"

type httpNotificationsAPI struct {
	client *Client
}

func (a *httpNotificationsAPI) List(ctx context.Context, q models.ListQuery) (models.Page[models.Notification], error) {
	var out models.Page[models.Notification]
	err := a.client.SendJSON(ctx, http.MethodGet, notificationsPath, func(r *resty.Request) {
		r.SetQueryParams(q.Params())
	}, &out)
	if err != nil {
		return models.Page[models.Notification]{}, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}

func (a *httpNotificationsAPI) MarkRead(ctx context.Context, id int64) error {
	path := notificationsPath + "/" + strconv.FormatInt(id, 10) + "/read"
	if _, err := a.client.Send(ctx, http.MethodPatch, path, nil); err != nil {
		return fmt.Errorf("mark notification %d read: %w", id, err)
	}
	return nil
}

func (a *httpNotificationsAPI) MarkAllRead(ctx context.Context) error {
	if _, err := a.client.Send(ctx, http.MethodPatch, notificationsPath+"/read-all", nil); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

func (a *httpNotificationsAPI) Delete(ctx context.Context, id int64) error {
	path := notificationsPath + "/" + strconv.FormatInt(id, 10)
	if _, err := a.client.Send(ctx, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("delete notification %d: %w", id, err)
	}
	return nil
}

func (a *httpNotificationsAPI) UnreadCount(ctx context.Context) (int64, error) {
	var out models.UnreadCount
	if err := a.client.SendJSON(ctx, http.MethodGet, notificationsPath+"/unread-count", nil, &out); err != nil {
		return 0, fmt.Errorf("unread notification count: %w", err)
	}
	return out.Count, nil
}
