package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/commerce-console/internal/adapter"
	"github.com/MKhiriev/commerce-console/internal/app"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/models"
)

// Filter names of the inventory list.
const (
	FilterProductStatus = "status"
	// FilterLowStock takes "low" to keep products below the threshold.
	FilterLowStock = "stock"
	LowStockOnly   = "low"
)

// InventoryService is the inventory screen.
type InventoryService struct {
	*ListController[models.Product]
	api       adapter.InventoryAPI
	threshold int
}

func NewInventoryService(api adapter.InventoryAPI, pageSize, lowStockThreshold int, log *logger.Logger) *InventoryService {
	cfg := ListConfig[models.Product]{
		Name:  "inventory",
		Fetch: api.List,
		ID:    func(p models.Product) int64 { return p.ID },
		TextFields: []func(models.Product) string{
			func(p models.Product) string { return p.Name },
			func(p models.Product) string { return p.SKU },
			func(p models.Product) string { return p.Description },
		},
		Filters: map[string]func(models.Product, string) bool{
			FilterLowStock: func(p models.Product, v string) bool {
				return v != LowStockOnly || p.Quantity < lowStockThreshold
			},
		},
		ServerFilters: map[string]func(*models.ListQuery, string){
			FilterProductStatus: func(q *models.ListQuery, v string) { q.Status = v },
		},
		ServerSearch: true,
		SortFields: map[string]SortField[models.Product]{
			"name":     {Kind: SortText, Text: func(p models.Product) string { return p.Name }},
			"sku":      {Kind: SortText, Text: func(p models.Product) string { return p.SKU }},
			"status":   {Kind: SortText, Text: func(p models.Product) string { return string(p.Status) }},
			"price":    {Kind: SortNumeric, Number: func(p models.Product) float64 { return p.Price }},
			"quantity": {Kind: SortNumeric, Number: func(p models.Product) float64 { return float64(p.Quantity) }},
		},
		DefaultSort: Sort{Key: "name"},
		PageSize:    pageSize,
		FetchFailed: app.MsgFetchProductsFailed,
	}

	return &InventoryService{
		ListController: NewListController(cfg, log),
		api:            api,
		threshold:      lowStockThreshold,
	}
}

// LowStock reports whether p is below the low-stock threshold.
func (s *InventoryService) LowStock(p models.Product) bool {
	return p.Quantity < s.threshold
}

func (s *InventoryService) Create(ctx context.Context, req models.ProductRequest) error {
	return s.Mutate(ctx, app.MsgCreateProductFailed, func(ctx context.Context) error {
		_, err := s.api.Create(ctx, req)
		return err
	})
}

func (s *InventoryService) Update(ctx context.Context, id int64, req models.ProductRequest) error {
	return s.Mutate(ctx, app.MsgUpdateProductFailed, func(ctx context.Context) error {
		_, err := s.api.Update(ctx, id, req)
		return err
	})
}

func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	return s.Mutate(ctx, app.MsgDeleteProductFailed, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}

// ToggleStatus switches the product between ACTIVE and INACTIVE.
func (s *InventoryService) ToggleStatus(ctx context.Context, id int64) error {
	product, ok := s.find(id)
	if !ok {
		err := fmt.Errorf("product %d is not on the current page: %w", id, ErrInvalidDataProvided)
		s.SetInlineError(app.MsgUpdateProductFailed)
		return userError(err, app.MsgUpdateProductFailed)
	}

	req := product.Request()
	req.Status = product.Status.Toggled()
	return s.Update(ctx, id, req)
}

func (s *InventoryService) find(id int64) (models.Product, bool) {
	for _, p := range s.Snapshot().Items {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
