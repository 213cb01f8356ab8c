package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/commerce-console/models"
)

const ordersPath = "/api/orders"

type httpOrdersAPI struct {
	client *Client
}

func orderPath(id int64, suffix ...string) string {
	p := ordersPath + "/" + strconv.FormatInt(id, 10)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

func (a *httpOrdersAPI) List(ctx context.Context, q models.ListQuery) (models.Page[models.Order], error) {
	var out models.Page[models.Order]
	err := a.client.SendJSON(ctx, http.MethodGet, ordersPath, func(r *resty.Request) {
		r.SetQueryParams(q.Params())
	}, &out)
	if err != nil {
		return models.Page[models.Order]{}, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}

func (a *httpOrdersAPI) ListByUser(ctx context.Context, userID int64) (models.Page[models.Order], error) {
	var out models.Page[models.Order]
	path := ordersPath + "/user/" + strconv.FormatInt(userID, 10)
	if err := a.client.SendJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return models.Page[models.Order]{}, fmt.Errorf("list orders of user %d: %w", userID, err)
	}
	return out, nil
}

func (a *httpOrdersAPI) Get(ctx context.Context, id int64) (models.Order, error) {
	var out models.Order
	if err := a.client.SendJSON(ctx, http.MethodGet, orderPath(id), nil, &out); err != nil {
		return models.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}
	return out, nil
}

func (a *httpOrdersAPI) Create(ctx context.Context, req models.CreateOrderRequest) (models.Order, error) {
	var out models.Order
	if err := a.client.SendJSON(ctx, http.MethodPost, ordersPath, jsonBody(req), &out); err != nil {
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}
	return out, nil
}

func (a *httpOrdersAPI) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (models.Order, error) {
	var out models.Order
	body := models.StatusUpdate{Status: string(status)}
	if err := a.client.SendJSON(ctx, http.MethodPatch, orderPath(id, "status"), jsonBody(body), &out); err != nil {
		return models.Order{}, fmt.Errorf("update order %d status: %w", id, err)
	}
	return out, nil
}

func (a *httpOrdersAPI) Cancel(ctx context.Context, id int64) (models.Order, error) {
	var out models.Order
	if err := a.client.SendJSON(ctx, http.MethodPatch, orderPath(id, "cancel"), nil, &out); err != nil {
		return models.Order{}, fmt.Errorf("cancel order %d: %w", id, err)
	}
	return out, nil
}
