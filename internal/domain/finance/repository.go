package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByID finds an expense by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindAll finds expenses with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Expense, int64, error)

	// FindByPeriod lists expenses spent within [from, to)
	FindByPeriod(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Expense, int64, error)

	// SumByPeriod totals expense amounts within [from, to)
	SumByPeriod(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// Save creates or updates an expense, enforcing the optimistic version check
	Save(ctx context.Context, e *Expense) error

	// Delete removes an expense record
	Delete(ctx context.Context, id uuid.UUID) error
}
