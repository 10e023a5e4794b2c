package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"ventas-backoffice/models"
)

// CompositeProductRepository handles database operations for composite
// products and their associated item sets
type CompositeProductRepository struct {
	db *sql.DB
}

// NewCompositeProductRepository creates a new CompositeProductRepository
func NewCompositeProductRepository(db *sql.DB) *CompositeProductRepository {
	return &CompositeProductRepository{db: db}
}

// Ensure CompositeProductRepository implements CompositeProductRepositoryInterface
var _ CompositeProductRepositoryInterface = (*CompositeProductRepository)(nil)

// Create inserts a composite product header together with its accepted item
// set in a single transaction. Submitted items that fail validation are
// reported back, not persisted.
func (r *CompositeProductRepository) Create(ctx context.Context, req *models.CreateCompositeProductRequest) (*models.CompositeProductResponse, []models.RejectedItem, error) {
	log.Printf("📦 CreateCompositeProduct: Creating product name=%q with %d submitted items", req.Name, len(req.AssociatedItems))

	accepted, rejected := ValidateAssociatedItems(req.AssociatedItems)
	if len(rejected) > 0 {
		log.Printf("⚠️ CreateCompositeProduct: %d of %d submitted items rejected", len(rejected), len(req.AssociatedItems))
	}

	currency := req.Currency
	if currency == "" {
		currency = "PEN"
	}
	unit := req.Unit
	if unit == "" {
		unit = "unidad"
	}

	var aggregatePurchaseTotal float64
	if req.AggregatePurchaseTotal != nil {
		aggregatePurchaseTotal = *req.AggregatePurchaseTotal
	}

	var productID int64
	err := WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		queryInsert := `
			INSERT INTO composite_products
				(name, unit_sale_price, unit_purchase_price, aggregate_purchase_total,
				 currency, unit, platform, category_id, branch_id, is_active, version, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, 1, NOW(), NOW())
			RETURNING id
		`
		err := tx.QueryRowContext(ctx, queryInsert,
			req.Name,
			*req.UnitSalePrice,
			*req.UnitPurchasePrice,
			aggregatePurchaseTotal,
			currency,
			unit,
			sql.NullString{String: req.Platform, Valid: req.Platform != ""},
			req.CategoryID,
			req.BranchID,
		).Scan(&productID)
		if err != nil {
			log.Printf("❌ CreateCompositeProduct: Error inserting header: %v", err)
			return fmt.Errorf("failed to insert composite product: %w", err)
		}

		if err := r.insertItems(ctx, tx, productID, accepted); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	product, err := r.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("✅ CreateCompositeProduct: Created product id=%d with %d items", productID, len(product.Items))
	return product, rejected, nil
}

// Update merges the supplied scalar fields into the header and, only when
// the payload carries an item collection, replaces the item set entirely.
// A nil collection leaves existing items untouched; a present empty one
// deletes them all. The missing-id check runs before any transaction opens.
func (r *CompositeProductRepository) Update(ctx context.Context, id int64, req *models.UpdateCompositeProductRequest) (*models.CompositeProductResponse, []models.RejectedItem, error) {
	log.Printf("📦 UpdateCompositeProduct: Updating product id=%d", id)

	// Early 404: no transaction is opened at all for a missing header.
	if err := r.exists(ctx, id); err != nil {
		return nil, nil, err
	}

	var accepted []models.AssociatedItemInput
	var rejected []models.RejectedItem
	replaceItems := req.AssociatedItems != nil
	if replaceItems {
		accepted, rejected = ValidateAssociatedItems(*req.AssociatedItems)
		log.Printf("🔄 UpdateCompositeProduct: Replacing item set of product id=%d (%d accepted, %d rejected)", id, len(accepted), len(rejected))
	}

	err := WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		current, err := r.lockHeader(ctx, tx, id)
		if err != nil {
			return err
		}

		if req.Version != nil && *req.Version != current.Version {
			log.Printf("❌ UpdateCompositeProduct: Stale version for id=%d (got %d, current %d)", id, *req.Version, current.Version)
			return ErrVersionConflict
		}

		queryUpdate := `
			UPDATE composite_products
			SET name = $1,
			    unit_sale_price = $2,
			    unit_purchase_price = $3,
			    aggregate_purchase_total = $4,
			    currency = $5,
			    unit = $6,
			    platform = $7,
			    category_id = $8,
			    branch_id = $9,
			    is_active = $10,
			    version = version + 1,
			    updated_at = NOW()
			WHERE id = $11
		`
		platform := mergeString(req.Platform, current.Platform)
		_, err = tx.ExecContext(ctx, queryUpdate,
			mergeString(req.Name, current.Name),
			mergeFloat(req.UnitSalePrice, current.UnitSalePrice),
			mergeFloat(req.UnitPurchasePrice, current.UnitPurchasePrice),
			mergeFloat(req.AggregatePurchaseTotal, current.AggregatePurchaseTotal),
			mergeString(req.Currency, current.Currency),
			mergeString(req.Unit, current.Unit),
			sql.NullString{String: platform, Valid: platform != ""},
			mergeInt64Ref(req.CategoryID, current.CategoryID),
			mergeInt64Ref(req.BranchID, current.BranchID),
			mergeBool(req.IsActive, current.IsActive),
			id,
		)
		if err != nil {
			log.Printf("❌ UpdateCompositeProduct: Error updating header: %v", err)
			return fmt.Errorf("failed to update composite product: %w", err)
		}

		if replaceItems {
			queryDelete := `DELETE FROM composite_product_items WHERE composite_product_id = $1`
			if _, err := tx.ExecContext(ctx, queryDelete, id); err != nil {
				log.Printf("❌ UpdateCompositeProduct: Error deleting existing items: %v", err)
				return fmt.Errorf("failed to delete existing items: %w", err)
			}
			if err := r.insertItems(ctx, tx, id, accepted); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("✅ UpdateCompositeProduct: Updated product id=%d (version=%d)", id, product.Version)
	return product, rejected, nil
}

// Delete removes the header and its items in one transaction.
func (r *CompositeProductRepository) Delete(ctx context.Context, id int64) error {
	log.Printf("🗑️  DeleteCompositeProduct: Deleting product id=%d", id)

	if err := r.exists(ctx, id); err != nil {
		return err
	}

	err := WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		queryDeleteItems := `DELETE FROM composite_product_items WHERE composite_product_id = $1`
		if _, err := tx.ExecContext(ctx, queryDeleteItems, id); err != nil {
			log.Printf("❌ DeleteCompositeProduct: Error deleting items: %v", err)
			return fmt.Errorf("failed to delete items: %w", err)
		}

		queryDeleteHeader := `DELETE FROM composite_products WHERE id = $1`
		if _, err := tx.ExecContext(ctx, queryDeleteHeader, id); err != nil {
			log.Printf("❌ DeleteCompositeProduct: Error deleting header: %v", err)
			return fmt.Errorf("failed to delete composite product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("✅ DeleteCompositeProduct: Deleted product id=%d", id)
	return nil
}

// GetByID retrieves a composite product with its item set
func (r *CompositeProductRepository) GetByID(ctx context.Context, id int64) (*models.CompositeProductResponse, error) {
	queryHeader := `
		SELECT id, name, unit_sale_price, unit_purchase_price, aggregate_purchase_total,
		       currency, unit, platform, category_id, branch_id, is_active, version, created_at, updated_at
		FROM composite_products
		WHERE id = $1
	`

	var product models.CompositeProduct
	var platform sql.NullString
	err := r.db.QueryRowContext(ctx, queryHeader, id).Scan(
		&product.ID,
		&product.Name,
		&product.UnitSalePrice,
		&product.UnitPurchasePrice,
		&product.AggregatePurchaseTotal,
		&product.Currency,
		&product.Unit,
		&platform,
		&product.CategoryID,
		&product.BranchID,
		&product.IsActive,
		&product.Version,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		log.Printf("❌ GetCompositeProduct: Error fetching product id=%d: %v", id, err)
		return nil, fmt.Errorf("failed to fetch composite product: %w", err)
	}
	if platform.Valid {
		product.Platform = platform.String
	}

	queryItems := `
		SELECT id, composite_product_id, catalog_item_id, quantity
		FROM composite_product_items
		WHERE composite_product_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, queryItems, id)
	if err != nil {
		log.Printf("❌ GetCompositeProduct: Error fetching items: %v", err)
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	defer rows.Close()

	items := []models.CompositeProductItem{}
	for rows.Next() {
		var item models.CompositeProductItem
		if err := rows.Scan(&item.ID, &item.CompositeProductID, &item.CatalogItemID, &item.Quantity); err != nil {
			log.Printf("❌ GetCompositeProduct: Error scanning item: %v", err)
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return &models.CompositeProductResponse{CompositeProduct: product, Items: items}, nil
}

// List retrieves composite products, optionally filtered by name substring
func (r *CompositeProductRepository) List(ctx context.Context, name *string) ([]models.CompositeProductResponse, error) {
	log.Printf("📦 ListCompositeProducts: Fetching products (name=%v)", name)

	query := `
		SELECT p.id, p.name, p.unit_sale_price, p.unit_purchase_price, p.aggregate_purchase_total,
		       p.currency, p.unit, p.platform, p.category_id, p.branch_id, p.is_active, p.version,
		       p.created_at, p.updated_at,
		       i.id, i.catalog_item_id, i.quantity
		FROM composite_products p
		LEFT JOIN composite_product_items i ON i.composite_product_id = p.id
	`
	var args []interface{}
	if name != nil && *name != "" {
		query += ` WHERE p.name ILIKE '%' || $1 || '%'`
		args = append(args, *name)
	}
	query += ` ORDER BY p.id, i.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ ListCompositeProducts: Error fetching products: %v", err)
		return nil, fmt.Errorf("failed to fetch composite products: %w", err)
	}
	defer rows.Close()

	var products []models.CompositeProductResponse
	var current *models.CompositeProductResponse

	for rows.Next() {
		var product models.CompositeProduct
		var platform sql.NullString
		var itemID, catalogItemID sql.NullInt64
		var quantity sql.NullFloat64

		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.UnitSalePrice,
			&product.UnitPurchasePrice,
			&product.AggregatePurchaseTotal,
			&product.Currency,
			&product.Unit,
			&platform,
			&product.CategoryID,
			&product.BranchID,
			&product.IsActive,
			&product.Version,
			&product.CreatedAt,
			&product.UpdatedAt,
			&itemID,
			&catalogItemID,
			&quantity,
		)
		if err != nil {
			log.Printf("❌ ListCompositeProducts: Error scanning row: %v", err)
			return nil, fmt.Errorf("failed to scan composite product: %w", err)
		}
		if platform.Valid {
			product.Platform = platform.String
		}

		if current == nil || current.ID != product.ID {
			products = append(products, models.CompositeProductResponse{
				CompositeProduct: product,
				Items:            []models.CompositeProductItem{},
			})
			current = &products[len(products)-1]
		}
		if itemID.Valid {
			current.Items = append(current.Items, models.CompositeProductItem{
				ID:                 itemID.Int64,
				CompositeProductID: product.ID,
				CatalogItemID:      catalogItemID.Int64,
				Quantity:           quantity.Float64,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate composite products: %w", err)
	}

	log.Printf("✅ ListCompositeProducts: Fetched %d products", len(products))
	return products, nil
}

// insertItems inserts an accepted item set under the given header id.
func (r *CompositeProductRepository) insertItems(ctx context.Context, tx *sql.Tx, productID int64, items []models.AssociatedItemInput) error {
	queryInsert := `
		INSERT INTO composite_product_items (composite_product_id, catalog_item_id, quantity)
		VALUES ($1, $2, $3)
	`
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, queryInsert, productID, item.CatalogItemID, item.Quantity); err != nil {
			log.Printf("❌ CompositeProduct: Error inserting item catalog_item_id=%d: %v", item.CatalogItemID, err)
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}
	return nil
}

// lockHeader re-reads the header inside the transaction with a row lock.
func (r *CompositeProductRepository) lockHeader(ctx context.Context, tx *sql.Tx, id int64) (*models.CompositeProduct, error) {
	query := `
		SELECT id, name, unit_sale_price, unit_purchase_price, aggregate_purchase_total,
		       currency, unit, platform, category_id, branch_id, is_active, version
		FROM composite_products
		WHERE id = $1
		FOR UPDATE
	`
	var product models.CompositeProduct
	var platform sql.NullString
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.UnitSalePrice,
		&product.UnitPurchasePrice,
		&product.AggregatePurchaseTotal,
		&product.Currency,
		&product.Unit,
		&platform,
		&product.CategoryID,
		&product.BranchID,
		&product.IsActive,
		&product.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock composite product: %w", err)
	}
	if platform.Valid {
		product.Platform = platform.String
	}
	return &product, nil
}

// exists checks header existence without opening a transaction.
func (r *CompositeProductRepository) exists(ctx context.Context, id int64) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM composite_products WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check existence: %w", err)
	}
	if !exists {
		log.Printf("❌ CompositeProduct: Product not found: id=%d", id)
		return ErrNotFound
	}
	return nil
}
