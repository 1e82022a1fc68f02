package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Query returns every record matching the filter, fully materialized.
	Query(ctx context.Context, db *gorm.DB, filter Filter) ([]TransactionRecord, error)
	// InsertBatch persists one contiguous batch in a single statement.
	InsertBatch(ctx context.Context, db *gorm.DB, batch []TransactionRecord) error
}
