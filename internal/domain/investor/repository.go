package investor

import (
	"context"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/shared"
)

// InvestorRepository defines the interface for investor persistence
type InvestorRepository interface {
	// FindByID finds an investor by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Investor, error)

	// FindByIDForUpdate finds an investor by ID, acquiring an exclusive
	// row lock for the duration of the surrounding transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Investor, error)

	// FindAll finds investors with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Investor, int64, error)

	// Save creates or updates an investor, enforcing the optimistic version check
	Save(ctx context.Context, i *Investor) error
}

// InvestorTransactionRepository stores the append-only investor ledger
type InvestorTransactionRepository interface {
	// Append records a new ledger entry; entries are never updated
	Append(ctx context.Context, tx *InvestorTransaction) error

	// FindByInvestorID lists an investor's ledger entries, newest first
	FindByInvestorID(ctx context.Context, investorID uuid.UUID, filter shared.Filter) ([]InvestorTransaction, int64, error)

	// FindAll lists ledger entries across all investors, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]InvestorTransaction, int64, error)
}
