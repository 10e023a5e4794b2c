package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// CatalogService reads current prices from the catalog master data table.
type CatalogService struct {
	db *sql.DB
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(db *sql.DB) *CatalogService {
	return &CatalogService{db: db}
}

// Ensure CatalogService implements CatalogServiceInterface
var _ CatalogServiceInterface = (*CatalogService)(nil)

// UnitPrice returns the current catalog sale price for an item.
func (s *CatalogService) UnitPrice(ctx context.Context, catalogItemID int64) (float64, bool, error) {
	var price float64
	query := `SELECT unit_sale_price FROM catalog_items WHERE id = $1`
	err := s.db.QueryRowContext(ctx, query, catalogItemID).Scan(&price)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		log.Printf("❌ CatalogService: Error fetching price for catalog_item_id=%d: %v", catalogItemID, err)
		return 0, false, fmt.Errorf("failed to fetch catalog price: %w", err)
	}
	return price, true, nil
}
