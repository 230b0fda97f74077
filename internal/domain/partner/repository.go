package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/shared"
)

// PartnerRepository defines the interface for partner persistence
type PartnerRepository interface {
	// FindByID finds a partner by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Partner, error)

	// FindByIDForUpdate finds a partner by ID, acquiring an exclusive row
	// lock for the duration of the surrounding transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Partner, error)

	// FindAll finds partners with filtering and pagination. Deleted
	// partners are included only when includeDeleted is set.
	FindAll(ctx context.Context, filter shared.Filter, includeDeleted bool) ([]Partner, int64, error)

	// FindAllActiveForUpdate loads every active partner with exclusive row
	// locks, in a stable order to avoid lock cycles between concurrent
	// allocations
	FindAllActiveForUpdate(ctx context.Context) ([]*Partner, error)

	// Save creates or updates a partner, enforcing the optimistic version check
	Save(ctx context.Context, p *Partner) error

	// SaveAll persists several partners within the current transaction
	SaveAll(ctx context.Context, partners []*Partner) error
}

// PartnerTransactionRepository stores the append-only adjustment ledger
type PartnerTransactionRepository interface {
	// Append records a new ledger entry; entries are never updated
	Append(ctx context.Context, tx *PartnerTransaction) error

	// AppendAll records several ledger entries atomically with the caller's
	// transaction
	AppendAll(ctx context.Context, txs []*PartnerTransaction) error

	// FindByID finds a single ledger entry
	FindByID(ctx context.Context, id uuid.UUID) (*PartnerTransaction, error)

	// FindByPartnerID lists a partner's ledger entries, newest first
	FindByPartnerID(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) ([]PartnerTransaction, int64, error)

	// FindAll lists ledger entries across all partners, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]PartnerTransaction, int64, error)
}

// PartnerHistoryRepository stores balance snapshots
type PartnerHistoryRepository interface {
	// Append records a snapshot
	Append(ctx context.Context, h *PartnerHistory) error

	// AppendAll records several snapshots
	AppendAll(ctx context.Context, hs []*PartnerHistory) error

	// FindByPartnerID lists a partner's snapshots, newest first
	FindByPartnerID(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) ([]PartnerHistory, int64, error)
}
