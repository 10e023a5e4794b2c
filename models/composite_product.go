package models

// CompositeProduct represents a bundled catalog product: a header row whose
// associated items describe the underlying catalog entries and quantities
// that make up the bundle.
type CompositeProduct struct {
	ID                     int64   `json:"id"`
	Name                   string  `json:"name"`
	UnitSalePrice          float64 `json:"unitSalePrice"`
	UnitPurchasePrice      float64 `json:"unitPurchasePrice"`
	AggregatePurchaseTotal float64 `json:"aggregatePurchaseTotal"`
	Currency               string  `json:"currency"`
	Unit                   string  `json:"unit"`
	Platform               string  `json:"platform,omitempty"`
	CategoryID             *int64  `json:"categoryId,omitempty"`
	BranchID               *int64  `json:"branchId,omitempty"`
	IsActive               bool    `json:"isActive"`
	Version                int64   `json:"version"`
	CreatedAt              string  `json:"createdAt"`
	UpdatedAt              string  `json:"updatedAt"`
}

// CompositeProductItem is a child line of a composite product. Its lifetime
// is bound to the header: it is inserted alongside the header or during a
// full replace of the header's item set, and deleted en masse with it.
type CompositeProductItem struct {
	ID                 int64   `json:"id"`
	CompositeProductID int64   `json:"compositeProductId"`
	CatalogItemID      int64   `json:"catalogItemId"`
	Quantity           float64 `json:"quantity"`
}

// AssociatedItemInput is a submitted child line before validation.
type AssociatedItemInput struct {
	CatalogItemID int64   `json:"catalogItemId"`
	Quantity      float64 `json:"quantity"`
}

// RejectedItem reports a submitted child line that was not persisted and why.
type RejectedItem struct {
	Index         int    `json:"index"`
	CatalogItemID int64  `json:"catalogItemId,omitempty"`
	Reason        string `json:"reason"`
}

// CreateCompositeProductRequest represents the request body for creating a composite product
// Example: {"name": "Kit escritorio", "unitSalePrice": 250, "unitPurchasePrice": 180, "associatedItems": [{"catalogItemId": 7, "quantity": 2}]}
type CreateCompositeProductRequest struct {
	Name                   string                `json:"name"`
	UnitSalePrice          *float64              `json:"unitSalePrice"`
	UnitPurchasePrice      *float64              `json:"unitPurchasePrice"`
	AggregatePurchaseTotal *float64              `json:"aggregatePurchaseTotal"`
	Currency               string                `json:"currency"`
	Unit                   string                `json:"unit"`
	Platform               string                `json:"platform"`
	CategoryID             *int64                `json:"categoryId"`
	BranchID               *int64                `json:"branchId"`
	AssociatedItems        []AssociatedItemInput `json:"associatedItems"`
}

// UpdateCompositeProductRequest represents the request body for updating a
// composite product. Every field is optional: an absent field keeps the
// previous value. AssociatedItems is a pointer on purpose — nil means "leave
// the existing item set untouched" while a present (even empty) collection
// means "replace the item set entirely".
type UpdateCompositeProductRequest struct {
	Name                   *string                `json:"name"`
	UnitSalePrice          *float64               `json:"unitSalePrice"`
	UnitPurchasePrice      *float64               `json:"unitPurchasePrice"`
	AggregatePurchaseTotal *float64               `json:"aggregatePurchaseTotal"`
	Currency               *string                `json:"currency"`
	Unit                   *string                `json:"unit"`
	Platform               *string                `json:"platform"`
	CategoryID             *int64                 `json:"categoryId"`
	BranchID               *int64                 `json:"branchId"`
	IsActive               *bool                  `json:"isActive"`
	Version                *int64                 `json:"version"`
	AssociatedItems        *[]AssociatedItemInput `json:"associatedItems"`
}

// CompositeProductResponse represents a composite product with its item set
type CompositeProductResponse struct {
	CompositeProduct
	Items []CompositeProductItem `json:"items"`
}

// CompositeProductWriteResponse is the response body for create/update/delete
// Example response:
// {
//   "message": "composite product created",
//   "item": { "id": 1, "name": "Kit escritorio", ..., "items": [...] },
//   "rejectedItems": [{"index": 1, "catalogItemId": 9, "reason": "missing quantity"}]
// }
type CompositeProductWriteResponse struct {
	Message       string                    `json:"message"`
	Item          *CompositeProductResponse `json:"item,omitempty"`
	RejectedItems []RejectedItem            `json:"rejectedItems,omitempty"`
}

// CompositeProductListResponse represents the response for listing composite products
type CompositeProductListResponse struct {
	Items []CompositeProductResponse `json:"items"`
}
