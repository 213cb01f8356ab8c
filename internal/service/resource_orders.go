package service

import (
	"context"
	"strconv"

	"github.com/MKhiriev/commerce-console/internal/adapter"
	"github.com/MKhiriev/commerce-console/internal/app"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/models"
)

// FilterOrderStatus is sent to the orders service.
const FilterOrderStatus = "status"

// OrdersService is the orders screen.
type OrdersService struct {
	*ListController[models.Order]
	api adapter.OrdersAPI
}

func NewOrdersService(api adapter.OrdersAPI, pageSize int, log *logger.Logger) *OrdersService {
	cfg := ListConfig[models.Order]{
		Name:  "orders",
		Fetch: api.List,
		ID:    func(o models.Order) int64 { return o.ID },
		TextFields: []func(models.Order) string{
			func(o models.Order) string { return o.OrderNumber },
			func(o models.Order) string { return string(o.Status) },
			func(o models.Order) string { return strconv.FormatFloat(o.TotalAmount, 'f', 2, 64) },
		},
		ServerFilters: map[string]func(*models.ListQuery, string){
			FilterOrderStatus: func(q *models.ListQuery, v string) { q.Status = v },
		},
		SortFields: map[string]SortField[models.Order]{
			"orderDate":   {Kind: SortDate, Number: func(o models.Order) float64 { return float64(o.OrderDate.Unix()) }},
			"totalAmount": {Kind: SortNumeric, Number: func(o models.Order) float64 { return o.TotalAmount }},
			"status":      {Kind: SortText, Text: func(o models.Order) string { return string(o.Status) }},
			"orderNumber": {Kind: SortText, Text: func(o models.Order) string { return o.OrderNumber }},
		},
		DefaultSort: Sort{Key: "orderDate", Direction: SortDesc},
		PageSize:    pageSize,
		FetchFailed: app.MsgFetchOrdersFailed,
	}

	return &OrdersService{
		ListController: NewListController(cfg, log),
		api:            api,
	}
}

func (s *OrdersService) Create(ctx context.Context, req models.CreateOrderRequest) error {
	return s.Mutate(ctx, app.MsgCreateOrderFailed, func(ctx context.Context) error {
		_, err := s.api.Create(ctx, req)
		return err
	})
}

// Complete moves the order to COMPLETED.
func (s *OrdersService) Complete(ctx context.Context, id int64) error {
	return s.UpdateStatus(ctx, id, models.OrderCompleted)
}

func (s *OrdersService) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	return s.Mutate(ctx, app.MsgUpdateOrderFailed, func(ctx context.Context) error {
		_, err := s.api.UpdateStatus(ctx, id, status)
		return err
	})
}

func (s *OrdersService) Cancel(ctx context.Context, id int64) error {
	return s.Mutate(ctx, app.MsgCancelOrderFailed, func(ctx context.Context) error {
		_, err := s.api.Cancel(ctx, id)
		return err
	})
}

// Get loads one order for the detail view.
func (s *OrdersService) Get(ctx context.Context, id int64) (models.Order, error) {
	o, err := s.api.Get(ctx, id)
	return o, userError(err, app.MsgFetchOrdersFailed)
}
