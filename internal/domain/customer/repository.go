package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByNationalID finds a customer by national ID
	FindByNationalID(ctx context.Context, nationalID string) (*Customer, error)

	// FindAll finds customers with filtering and pagination; the filter's
	// search term matches name, national ID and phone number
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, int64, error)

	// Save creates or updates a customer, enforcing the optimistic version check
	Save(ctx context.Context, c *Customer) error

	// Delete removes a customer record
	Delete(ctx context.Context, id uuid.UUID) error
}
