package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/shared"
)

// SaleRepository defines the interface for sale persistence. Saving a sale
// always writes its installments with it.
type SaleRepository interface {
	// FindByID finds a sale and its installments by sale ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByIDForUpdate finds a sale by ID, acquiring an exclusive row lock
	// for the duration of the surrounding transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByInstallmentID finds the sale owning the given installment
	FindByInstallmentID(ctx context.Context, installmentID uuid.UUID) (*Sale, error)

	// FindAll finds sales with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, int64, error)

	// FindByCustomerID lists a customer's sales
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Sale, int64, error)

	// FindByStatus lists sales with the given status
	FindByStatus(ctx context.Context, status SaleStatus, filter shared.Filter) ([]Sale, int64, error)

	// CountActiveByCustomerID counts a customer's non-terminal sales
	CountActiveByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)

	// ExistsActiveByPhoneID reports whether a non-deleted sale references
	// the phone
	ExistsActiveByPhoneID(ctx context.Context, phoneID uuid.UUID) (bool, error)

	// Save creates or updates a sale together with its installments,
	// enforcing the optimistic version check
	Save(ctx context.Context, s *Sale) error

	// Delete removes a sale and cascades to its installments
	Delete(ctx context.Context, id uuid.UUID) error
}

// InstallmentRepository provides installment-centric reads used by listings
// and the overdue sweep. Mutations go through the owning sale.
type InstallmentRepository interface {
	// FindAll lists installments across all sales ordered by due date
	FindAll(ctx context.Context, filter shared.Filter) ([]Installment, int64, error)

	// FindDueBefore lists unpaid installments whose due date is before the
	// given instant
	FindDueBefore(ctx context.Context, asOf time.Time, filter shared.Filter) ([]Installment, int64, error)

	// FindBySaleID lists a sale's installments ordered by number
	FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]Installment, error)

	// MarkOverdue transitions the given pending installments to overdue
	MarkOverdue(ctx context.Context, ids []uuid.UUID) (int64, error)
}
