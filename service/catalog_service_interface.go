package service

import "context"

// CatalogServiceInterface defines the catalog lookup contract consumed by the
// order write path. The catalog itself is master data owned elsewhere; this
// core only reads current prices from it.
type CatalogServiceInterface interface {
	// UnitPrice returns the current catalog sale price for an item. The
	// second return is false when the item is unknown to the catalog, which
	// callers treat as "nothing to compare against", not as an error.
	UnitPrice(ctx context.Context, catalogItemID int64) (float64, bool, error)
}
