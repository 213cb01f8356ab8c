package models

// ProductStatus is the catalogue state of a product.
type ProductStatus string

const (
	ProductActive       ProductStatus = "ACTIVE"
	ProductInactive     ProductStatus = "INACTIVE"
	ProductDiscontinued ProductStatus = "DISCONTINUED"
)

// Toggled returns INACTIVE for ACTIVE and ACTIVE for every other status.
func (s ProductStatus) Toggled() ProductStatus {
	if s == ProductActive {
		return ProductInactive
	}
	return ProductActive
}

// Product is an inventory item.
type Product struct {
	ID          int64         `json:"id"`
	SKU         string        `json:"sku"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Price       float64       `json:"price"`
	Quantity    int           `json:"quantity"`
	Status      ProductStatus `json:"status"`
	CreatedAt   *Timestamp    `json:"createdAt,omitempty"`
}

// ProductRequest is the body used to create or replace a product.
type ProductRequest struct {
	SKU         string        `json:"sku"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Quantity    int           `json:"quantity"`
	Status      ProductStatus `json:"status,omitempty"`
}

// Request converts p into a replacement payload.
func (p Product) Request() ProductRequest {
	return ProductRequest{
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Status:      p.Status,
	}
}
