package inventory

import (
	"context"

	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PhoneRepository defines the interface for phone persistence
type PhoneRepository interface {
	// FindByID finds a phone by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Phone, error)

	// FindByIDForUpdate finds a phone by ID, acquiring an exclusive row
	// lock for the duration of the surrounding transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Phone, error)

	// FindByIMEI finds a phone by its IMEI
	FindByIMEI(ctx context.Context, imei string) (*Phone, error)

	// FindAll finds phones with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Phone, int64, error)

	// FindByStatus finds phones with a given status
	FindByStatus(ctx context.Context, status PhoneStatus, filter shared.Filter) ([]Phone, int64, error)

	// Save creates or updates a phone, enforcing the optimistic version check
	Save(ctx context.Context, phone *Phone) error

	// Delete removes a phone from inventory
	Delete(ctx context.Context, id uuid.UUID) error
}
