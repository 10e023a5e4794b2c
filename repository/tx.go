package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// WithTransaction runs fn inside a single database transaction: commit on
// normal return, rollback on any error. One write request maps to exactly one
// transaction; there is no nesting and no retry — rollback is the sole
// recovery mechanism.
func WithTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	txID := uuid.New().String()[:8]

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Transaction %s: error starting: %v", txID, err)
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	log.Printf("🔁 Transaction %s: started", txID)

	if err := fn(tx); err != nil {
		log.Printf("❌ Transaction %s: rolled back: %v", txID, err)
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Transaction %s: error committing: %v", txID, err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Transaction %s: committed", txID)
	return nil
}
