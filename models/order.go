package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Order is a customer order as returned by the orders service.
type Order struct {
	ID              int64       `json:"id"`
	OrderNumber     string      `json:"orderNumber"`
	UserID          int64       `json:"userId"`
	OrderDate       *Timestamp  `json:"orderDate,omitempty"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          OrderStatus `json:"status"`
	OrderItems      []OrderItem `json:"orderItems,omitempty"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	BillingAddress  string      `json:"billingAddress,omitempty"`
	Notes           string      `json:"notes,omitempty"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID        int64   `json:"id,omitempty"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	UserID          int64       `json:"userId"`
	ShippingAddress string      `json:"shippingAddress"`
	BillingAddress  string      `json:"billingAddress"`
	Notes           string      `json:"notes"`
	OrderItems      []OrderItem `json:"orderItems"`
}

// StatusUpdate is the body of status transitions.
type StatusUpdate struct {
	Status string `json:"status"`
}
