package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/commerce-console/models"
)

const productsPath = "/api/inventory/products"

type httpInventoryAPI struct {
	client *Client
}

func productPath(id int64) string {
	return productsPath + "/" + strconv.FormatInt(id, 10)
}

func (a *httpInventoryAPI) List(ctx context.Context, q models.ListQuery) (models.Page[models.Product], error) {
	var out models.Page[models.Product]
	err := a.client.SendJSON(ctx, http.MethodGet, productsPath, func(r *resty.Request) {
		r.SetQueryParams(q.Params())
	}, &out)
	if err != nil {
		return models.Page[models.Product]{}, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (a *httpInventoryAPI) Get(ctx context.Context, id int64) (models.Product, error) {
	var out models.Product
	if err := a.client.SendJSON(ctx, http.MethodGet, productPath(id), nil, &out); err != nil {
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return out, nil
}

func (a *httpInventoryAPI) Create(ctx context.Context, req models.ProductRequest) (models.Product, error) {
	var out models.Product
	if err := a.client.SendJSON(ctx, http.MethodPost, productsPath, jsonBody(req), &out); err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	return out, nil
}

func (a *httpInventoryAPI) Update(ctx context.Context, id int64, req models.ProductRequest) (models.Product, error) {
	var out models.Product
	if err := a.client.SendJSON(ctx, http.MethodPut, productPath(id), jsonBody(req), &out); err != nil {
		return models.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}
	return out, nil
}

func (a *httpInventoryAPI) Delete(ctx context.Context, id int64) error {
	if _, err := a.client.Send(ctx, http.MethodDelete, productPath(id), nil); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func (a *httpInventoryAPI) LowStock(ctx context.Context) (models.Page[models.Product], error) {
	var out models.Page[models.Product]
	if err := a.client.SendJSON(ctx, http.MethodGet, productsPath+"/low-stock", nil, &out); err != nil {
		return models.Page[models.Product]{}, fmt.Errorf("list low stock products: %w", err)
	}
	return out, nil
}
