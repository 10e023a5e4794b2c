package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"ventas-backoffice/models"
	"ventas-backoffice/pricing"
	"ventas-backoffice/utils"
)

// OrderRepository handles database operations for sales orders and their
// line items. The tax rate is injected so the derived tax-split view follows
// configuration instead of a hardcoded constant.
type OrderRepository struct {
	db      *sql.DB
	taxRate float64
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *sql.DB, taxRate float64) *OrderRepository {
	return &OrderRepository{db: db, taxRate: taxRate}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// Create inserts an order header and its accepted lines in one transaction.
// The header total is recomputed from the accepted lines; client-sent
// aggregates are ignored. The exchange rate is persisted on the row so the
// order stays reproducible if the rate changes later.
func (r *OrderRepository) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.OrderResponse, []models.RejectedItem, error) {
	log.Printf("📦 CreateOrder: Creating order for client_id=%d with %d submitted lines", req.ClientID, len(req.Lines))

	accepted, rejected := ValidateOrderLines(req.Lines)
	if len(rejected) > 0 {
		log.Printf("⚠️ CreateOrder: %d of %d submitted lines rejected", len(rejected), len(req.Lines))
	}

	total := pricing.OrderTotal(linesView(accepted))

	currency := req.Currency
	if currency == "" {
		currency = "PEN"
	}
	exchangeRate := 1.0
	if req.ExchangeRate != nil {
		exchangeRate = *req.ExchangeRate
	}

	var orderID int64
	err := WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		queryInsert := `
			INSERT INTO orders
				(client_id, emission_date, delivery_date, currency, exchange_rate,
				 salesperson, notes, total, version, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, NOW(), NOW())
			RETURNING id
		`
		err := tx.QueryRowContext(ctx, queryInsert,
			req.ClientID,
			sql.NullString{String: req.EmissionDate, Valid: req.EmissionDate != ""},
			sql.NullString{String: req.DeliveryDate, Valid: req.DeliveryDate != ""},
			currency,
			exchangeRate,
			sql.NullString{String: req.Salesperson, Valid: req.Salesperson != ""},
			sql.NullString{String: req.Notes, Valid: req.Notes != ""},
			total,
		).Scan(&orderID)
		if err != nil {
			log.Printf("❌ CreateOrder: Error inserting header: %v", err)
			return fmt.Errorf("failed to insert order: %w", err)
		}

		return r.insertLines(ctx, tx, orderID, accepted)
	})
	if err != nil {
		return nil, nil, err
	}

	order, err := r.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("✅ CreateOrder: Created order id=%d with %d lines, total=%s", orderID, len(order.Lines), utils.FormatPEN(order.Total))
	return order, rejected, nil
}

// Update merges scalar fields into the header and, only when the payload
// carries a line collection, replaces the line set and recomputes the total.
// A nil collection leaves lines and total untouched.
func (r *OrderRepository) Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) (*models.OrderResponse, []models.RejectedItem, error) {
	log.Printf("📦 UpdateOrder: Updating order id=%d", id)

	// Early 404: no transaction is opened at all for a missing header.
	if err := r.exists(ctx, id); err != nil {
		return nil, nil, err
	}

	var accepted []models.OrderLineInput
	var rejected []models.RejectedItem
	replaceLines := req.Lines != nil
	if replaceLines {
		accepted, rejected = ValidateOrderLines(*req.Lines)
		log.Printf("🔄 UpdateOrder: Replacing line set of order id=%d (%d accepted, %d rejected)", id, len(accepted), len(rejected))
	}

	err := WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		current, err := r.lockHeader(ctx, tx, id)
		if err != nil {
			return err
		}

		if req.Version != nil && *req.Version != current.Version {
			log.Printf("❌ UpdateOrder: Stale version for id=%d (got %d, current %d)", id, *req.Version, current.Version)
			return ErrVersionConflict
		}

		total := current.Total
		if replaceLines {
			total = pricing.OrderTotal(linesView(accepted))
		}

		queryUpdate := `
			UPDATE orders
			SET client_id = $1,
			    emission_date = $2,
			    delivery_date = $3,
			    currency = $4,
			    exchange_rate = $5,
			    salesperson = $6,
			    notes = $7,
			    total = $8,
			    version = version + 1,
			    updated_at = NOW()
			WHERE id = $9
		`
		emissionDate := mergeString(req.EmissionDate, current.EmissionDate)
		deliveryDate := mergeString(req.DeliveryDate, current.DeliveryDate)
		salesperson := mergeString(req.Salesperson, current.Salesperson)
		notes := mergeString(req.Notes, current.Notes)
		_, err = tx.ExecContext(ctx, queryUpdate,
			mergeInt64(req.ClientID, current.ClientID),
			sql.NullString{String: emissionDate, Valid: emissionDate != ""},
			sql.NullString{String: deliveryDate, Valid: deliveryDate != ""},
			mergeString(req.Currency, current.Currency),
			mergeFloat(req.ExchangeRate, current.ExchangeRate),
			sql.NullString{String: salesperson, Valid: salesperson != ""},
			sql.NullString{String: notes, Valid: notes != ""},
			total,
			id,
		)
		if err != nil {
			log.Printf("❌ UpdateOrder: Error updating header: %v", err)
			return fmt.Errorf("failed to update order: %w", err)
		}

		if replaceLines {
			queryDelete := `DELETE FROM order_lines WHERE order_id = $1`
			if _, err := tx.ExecContext(ctx, queryDelete, id); err != nil {
				log.Printf("❌ UpdateOrder: Error deleting existing lines: %v", err)
				return fmt.Errorf("failed to delete existing lines: %w", err)
			}
			if err := r.insertLines(ctx, tx, id, accepted); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("✅ UpdateOrder: Updated order id=%d (version=%d, total=%s)", id, order.Version, utils.FormatPEN(order.Total))
	return order, rejected, nil
}

// Delete removes the order and its lines in one transaction.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	log.Printf("🗑️  DeleteOrder: Deleting order id=%d", id)

	if err := r.exists(ctx, id); err != nil {
		return err
	}

	err := WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		queryDeleteLines := `DELETE FROM order_lines WHERE order_id = $1`
		if _, err := tx.ExecContext(ctx, queryDeleteLines, id); err != nil {
			log.Printf("❌ DeleteOrder: Error deleting lines: %v", err)
			return fmt.Errorf("failed to delete lines: %w", err)
		}

		queryDeleteHeader := `DELETE FROM orders WHERE id = $1`
		if _, err := tx.ExecContext(ctx, queryDeleteHeader, id); err != nil {
			log.Printf("❌ DeleteOrder: Error deleting header: %v", err)
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("✅ DeleteOrder: Deleted order id=%d", id)
	return nil
}

// GetByID retrieves an order with its lines and the derived tax-split view
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.OrderResponse, error) {
	queryHeader := `
		SELECT id, client_id, emission_date, delivery_date, currency, exchange_rate,
		       salesperson, notes, total, version, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order models.Order
	var emissionDate, deliveryDate, salesperson, notes sql.NullString
	err := r.db.QueryRowContext(ctx, queryHeader, id).Scan(
		&order.ID,
		&order.ClientID,
		&emissionDate,
		&deliveryDate,
		&order.Currency,
		&order.ExchangeRate,
		&salesperson,
		&notes,
		&order.Total,
		&order.Version,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		log.Printf("❌ GetOrder: Error fetching order id=%d: %v", id, err)
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	order.EmissionDate = emissionDate.String
	order.DeliveryDate = deliveryDate.String
	order.Salesperson = salesperson.String
	order.Notes = notes.String

	queryLines := `
		SELECT id, order_id, catalog_item_id, quantity, unit_price, subtotal, total
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, queryLines, id)
	if err != nil {
		log.Printf("❌ GetOrder: Error fetching lines: %v", err)
		return nil, fmt.Errorf("failed to fetch lines: %w", err)
	}
	defer rows.Close()

	lines := []models.OrderLine{}
	for rows.Next() {
		var line models.OrderLine
		err := rows.Scan(&line.ID, &line.OrderID, &line.CatalogItemID, &line.Quantity, &line.UnitPrice, &line.Subtotal, &line.Total)
		if err != nil {
			log.Printf("❌ GetOrder: Error scanning line: %v", err)
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lines: %w", err)
	}

	split := pricing.SplitTax(order.Total, r.taxRate)
	return &models.OrderResponse{
		Order:    order,
		Lines:    lines,
		Subtotal: split.Subtotal,
		Tax:      split.Tax,
	}, nil
}

// List retrieves orders, optionally filtered by client
func (r *OrderRepository) List(ctx context.Context, clientID *int64) ([]models.OrderListItem, error) {
	log.Printf("📦 ListOrders: Fetching orders (client_id=%v)", clientID)

	query := `
		SELECT o.id, o.client_id, o.emission_date, o.delivery_date, o.currency, o.exchange_rate,
		       o.salesperson, o.notes, o.total, o.version, o.created_at, o.updated_at,
		       COUNT(l.id)
		FROM orders o
		LEFT JOIN order_lines l ON l.order_id = o.id
	`
	var args []interface{}
	if clientID != nil {
		query += ` WHERE o.client_id = $1`
		args = append(args, *clientID)
	}
	query += ` GROUP BY o.id ORDER BY o.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ ListOrders: Error fetching orders: %v", err)
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	defer rows.Close()

	var orders []models.OrderListItem
	for rows.Next() {
		var item models.OrderListItem
		var emissionDate, deliveryDate, salesperson, notes sql.NullString
		err := rows.Scan(
			&item.ID,
			&item.ClientID,
			&emissionDate,
			&deliveryDate,
			&item.Currency,
			&item.ExchangeRate,
			&salesperson,
			&notes,
			&item.Total,
			&item.Version,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.LineCount,
		)
		if err != nil {
			log.Printf("❌ ListOrders: Error scanning order: %v", err)
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		item.EmissionDate = emissionDate.String
		item.DeliveryDate = deliveryDate.String
		item.Salesperson = salesperson.String
		item.Notes = notes.String

		split := pricing.SplitTax(item.Total, r.taxRate)
		item.Subtotal = split.Subtotal
		item.Tax = split.Tax
		orders = append(orders, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	log.Printf("✅ ListOrders: Fetched %d orders", len(orders))
	return orders, nil
}

// linesView projects accepted line inputs into the shape the calculator sums,
// so the write paths and the read side derive totals from the same function.
func linesView(lines []models.OrderLineInput) []models.OrderLine {
	view := make([]models.OrderLine, len(lines))
	for i, line := range lines {
		view[i] = models.OrderLine{
			CatalogItemID: line.CatalogItemID,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
		}
	}
	return view
}

// insertLines inserts accepted lines under the given order id with derived
// per-line subtotal and total.
func (r *OrderRepository) insertLines(ctx context.Context, tx *sql.Tx, orderID int64, lines []models.OrderLineInput) error {
	queryInsert := `
		INSERT INTO order_lines (order_id, catalog_item_id, quantity, unit_price, subtotal, total)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, line := range lines {
		lineTotal := pricing.LineTotal(line.Quantity, line.UnitPrice)
		if _, err := tx.ExecContext(ctx, queryInsert, orderID, line.CatalogItemID, line.Quantity, line.UnitPrice, lineTotal, lineTotal); err != nil {
			log.Printf("❌ Order: Error inserting line catalog_item_id=%d: %v", line.CatalogItemID, err)
			return fmt.Errorf("failed to insert line: %w", err)
		}
	}
	return nil
}

// lockHeader re-reads the header inside the transaction with a row lock.
func (r *OrderRepository) lockHeader(ctx context.Context, tx *sql.Tx, id int64) (*models.Order, error) {
	query := `
		SELECT id, client_id, emission_date, delivery_date, currency, exchange_rate,
		       salesperson, notes, total, version
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`
	var order models.Order
	var emissionDate, deliveryDate, salesperson, notes sql.NullString
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.ClientID,
		&emissionDate,
		&deliveryDate,
		&order.Currency,
		&order.ExchangeRate,
		&salesperson,
		&notes,
		&order.Total,
		&order.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}
	order.EmissionDate = emissionDate.String
	order.DeliveryDate = deliveryDate.String
	order.Salesperson = salesperson.String
	order.Notes = notes.String
	return &order, nil
}

// exists checks header existence without opening a transaction.
func (r *OrderRepository) exists(ctx context.Context, id int64) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check existence: %w", err)
	}
	if !exists {
		log.Printf("❌ Order: Order not found: id=%d", id)
		return ErrNotFound
	}
	return nil
}
