// Package history defines the roll history model and its storage contract.
package history

import (
	"context"
	"time"

	apperrors "github.com/erikjuhani/droll/internal/errors"
)

// ErrNotFound indicates a requested roll record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeHistoryNotFound, "roll record not found")

// Record captures one resolved roll.
type Record struct {
	ID       string
	Notation string
	Rendered string
	Result   int
	Seed     *int64
	RolledAt time.Time
}

// Store persists roll records.
type Store interface {
	Put(ctx context.Context, record Record) error
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
}
