package domain

import (
	"context"
	"errors"
	"io"
)

// ProgressFunc receives one snapshot per completed batch, in increasing
// Processed order.
type ProgressFunc func(Progress)

type Service interface {
	// Upload normalizes rows, persists them in fixed-size batches and
	// reports progress after every batch. A failed batch is counted and
	// skipped, never retried; the upload keeps going. Upload returns an
	// error only when the context is cancelled or every batch failed.
	Upload(ctx context.Context, rows []RawRow, onProgress ProgressFunc) (Summary, error)
}

// Reader parses spreadsheet bytes into rows. Implementations read the
// first sheet and use the first row as column headers.
type Reader interface {
	Parse(r io.Reader) ([]RawRow, error)
}

var ErrAllBatchesFail = errors.New("all_batches_failed")
