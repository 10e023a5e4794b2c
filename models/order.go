package models

// Order represents a sales order (pedido) header in the database.
// Total is always the recomputed sum of its line totals, never the
// client-sent aggregate.
type Order struct {
	ID           int64   `json:"id"`
	ClientID     int64   `json:"clientId"`
	EmissionDate string  `json:"emissionDate,omitempty"`
	DeliveryDate string  `json:"deliveryDate,omitempty"`
	Currency     string  `json:"currency"`
	ExchangeRate float64 `json:"exchangeRate"`
	Salesperson  string  `json:"salesperson,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	Total        float64 `json:"total"`
	Version      int64   `json:"version"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// OrderLine represents a line item in an order. Subtotal and Total are both
// derived as quantity × unit price; no per-line tax split is modeled.
type OrderLine struct {
	ID            int64   `json:"id"`
	OrderID       int64   `json:"orderId"`
	CatalogItemID int64   `json:"catalogItemId"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unitPrice"`
	Subtotal      float64 `json:"subtotal"`
	Total         float64 `json:"total"`
}

// OrderLineInput is a submitted order line before validation.
// PriceOverride skips the catalog price re-validation for this line.
type OrderLineInput struct {
	CatalogItemID int64   `json:"catalogItemId"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unitPrice"`
	PriceOverride bool    `json:"priceOverride,omitempty"`
}

// CreateOrderRequest represents the request body for creating an order
// Example: {"clientId": 3, "emissionDate": "2026-08-01", "currency": "PEN", "exchangeRate": 3.75, "lines": [{"catalogItemId": 7, "quantity": 2, "unitPrice": 35.5}]}
type CreateOrderRequest struct {
	ClientID     int64            `json:"clientId"`
	EmissionDate string           `json:"emissionDate"`
	DeliveryDate string           `json:"deliveryDate"`
	Currency     string           `json:"currency"`
	ExchangeRate *float64         `json:"exchangeRate"`
	Salesperson  string           `json:"salesperson"`
	Notes        string           `json:"notes"`
	Lines        []OrderLineInput `json:"lines"`
}

// UpdateOrderRequest represents the request body for updating an order.
// Absent fields keep the previous value. Lines is a pointer on purpose —
// nil leaves the existing line set untouched, a present (even empty)
// collection replaces it entirely.
type UpdateOrderRequest struct {
	ClientID     *int64            `json:"clientId"`
	EmissionDate *string           `json:"emissionDate"`
	DeliveryDate *string           `json:"deliveryDate"`
	Currency     *string           `json:"currency"`
	ExchangeRate *float64          `json:"exchangeRate"`
	Salesperson  *string           `json:"salesperson"`
	Notes        *string           `json:"notes"`
	Version      *int64            `json:"version"`
	Lines        *[]OrderLineInput `json:"lines"`
}

// OrderResponse represents an order with its lines and the derived tax-split
// view. Subtotal and Tax are presentation-only figures, never persisted.
type OrderResponse struct {
	Order
	Lines    []OrderLine `json:"lines"`
	Subtotal float64     `json:"subtotal"`
	Tax      float64     `json:"tax"`
}

// OrderWriteResponse is the response body for order create/update/delete
type OrderWriteResponse struct {
	Message       string         `json:"message"`
	Order         *OrderResponse `json:"order,omitempty"`
	RejectedLines []RejectedItem `json:"rejectedLines,omitempty"`
}

// OrderListItem represents an order in a list response
type OrderListItem struct {
	Order
	LineCount int     `json:"lineCount"`
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
}

// OrderListResponse represents the response for listing orders
type OrderListResponse struct {
	Orders []OrderListItem `json:"orders"`
}
