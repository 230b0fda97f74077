package customer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/customer"
	"github.com/phoneshop/backend/internal/domain/sales"
	"github.com/phoneshop/backend/internal/domain/shared"
)

// CustomerService provides application-level customer operations
type CustomerService struct {
	customerRepo customer.CustomerRepository
	saleRepo     sales.SaleRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo customer.CustomerRepository, saleRepo sales.SaleRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
	}
}

// CreateCustomerRequest represents a request to register a customer
type CreateCustomerRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	NationalID  string `json:"national_id" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	Notes       *string `json:"notes"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	NationalID  string    `json:"national_id"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

func toCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID,
		FullName:    c.FullName,
		NationalID:  c.NationalID,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Version:     c.Version,
	}
}

// CreateCustomer registers a new customer. The national ID must be unique.
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	existing, err := s.customerRepo.FindByNationalID(ctx, req.NationalID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_NATIONAL_ID", "A customer with this national ID already exists")
	}

	c, err := customer.NewCustomer(req.FullName, req.NationalID, req.PhoneNumber, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// GetCustomerByID gets a customer by ID
func (s *CustomerService) GetCustomerByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// ListCustomers lists customers with search and pagination
func (s *CustomerService) ListCustomers(ctx context.Context, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	customers, total, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerResponse, len(customers))
	for i := range customers {
		items[i] = *toCustomerResponse(&customers[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdateCustomer updates a customer's contact fields
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cmd := customer.UpdateCustomerCommand{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Notes:       req.Notes,
	}
	if err := c.UpdateDetails(cmd); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// DeleteCustomer removes a customer with no active sales
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	active, err := s.saleRepo.CountActiveByCustomerID(ctx, c.ID)
	if err != nil {
		return err
	}
	if active > 0 {
		return shared.NewDomainError("CUSTOMER_IN_USE", "Customer has active sales and cannot be deleted")
	}

	return s.customerRepo.Delete(ctx, id)
}
