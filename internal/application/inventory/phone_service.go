package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/inventory"
	"github.com/phoneshop/backend/internal/domain/sales"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PhoneService provides application-level inventory operations
type PhoneService struct {
	phoneRepo inventory.PhoneRepository
	saleRepo  sales.SaleRepository
}

// NewPhoneService creates a new PhoneService
func NewPhoneService(phoneRepo inventory.PhoneRepository, saleRepo sales.SaleRepository) *PhoneService {
	return &PhoneService{
		phoneRepo: phoneRepo,
		saleRepo:  saleRepo,
	}
}

// CreatePhoneRequest represents a request to register a phone
type CreatePhoneRequest struct {
	Brand         string          `json:"brand" binding:"required"`
	Model         string          `json:"model" binding:"required"`
	IMEI          string          `json:"imei" binding:"required"`
	PurchasePrice decimal.Decimal `json:"purchase_price" binding:"required"`
	SellingPrice  decimal.Decimal `json:"selling_price" binding:"required"`
	PurchaseDate  *time.Time      `json:"purchase_date"`
}

// UpdatePhoneRequest represents a request to update a phone's details
type UpdatePhoneRequest struct {
	Brand         *string          `json:"brand"`
	Model         *string          `json:"model"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
}

// PhoneResponse represents a phone in API responses
type PhoneResponse struct {
	ID            uuid.UUID       `json:"id"`
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	IMEI          string          `json:"imei"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Status        string          `json:"status"`
	PurchaseDate  time.Time       `json:"purchase_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

func toPhoneResponse(p *inventory.Phone) *PhoneResponse {
	return &PhoneResponse{
		ID:            p.ID,
		Brand:         p.Brand,
		Model:         p.Model,
		IMEI:          p.IMEI,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		Status:        string(p.Status),
		PurchaseDate:  p.PurchaseDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// CreatePhone registers a new phone in inventory. The IMEI must be unique.
func (s *PhoneService) CreatePhone(ctx context.Context, req CreatePhoneRequest) (*PhoneResponse, error) {
	existing, err := s.phoneRepo.FindByIMEI(ctx, req.IMEI)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_IMEI", "A phone with this IMEI already exists")
	}

	phone, err := inventory.NewPhone(req.Brand, req.Model, req.IMEI, req.PurchasePrice, req.SellingPrice)
	if err != nil {
		return nil, err
	}
	if req.PurchaseDate != nil && !req.PurchaseDate.IsZero() {
		phone.PurchaseDate = *req.PurchaseDate
	}

	if err := s.phoneRepo.Save(ctx, phone); err != nil {
		return nil, err
	}
	return toPhoneResponse(phone), nil
}

// GetPhoneByID gets a phone by ID
func (s *PhoneService) GetPhoneByID(ctx context.Context, id uuid.UUID) (*PhoneResponse, error) {
	phone, err := s.phoneRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPhoneResponse(phone), nil
}

// ListPhones lists phones, optionally restricted to one status
func (s *PhoneService) ListPhones(ctx context.Context, status string, filter shared.Filter) (*shared.Paginated[PhoneResponse], error) {
	var (
		phones []inventory.Phone
		total  int64
		err    error
	)
	if status != "" {
		ps := inventory.PhoneStatus(status)
		if !ps.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Invalid phone status")
		}
		phones, total, err = s.phoneRepo.FindByStatus(ctx, ps, filter)
	} else {
		phones, total, err = s.phoneRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	items := make([]PhoneResponse, len(phones))
	for i := range phones {
		items[i] = *toPhoneResponse(&phones[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdatePhone updates a phone's descriptive fields
func (s *PhoneService) UpdatePhone(ctx context.Context, id uuid.UUID, req UpdatePhoneRequest) (*PhoneResponse, error) {
	phone, err := s.phoneRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cmd := inventory.UpdatePhoneCommand{
		Brand:         req.Brand,
		Model:         req.Model,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
	}
	if err := phone.UpdateDetails(cmd); err != nil {
		return nil, err
	}
	if err := s.phoneRepo.Save(ctx, phone); err != nil {
		return nil, err
	}
	return toPhoneResponse(phone), nil
}

// DeletePhone removes a phone that is not referenced by any sale
func (s *PhoneService) DeletePhone(ctx context.Context, id uuid.UUID) error {
	phone, err := s.phoneRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := s.saleRepo.ExistsActiveByPhoneID(ctx, phone.ID)
	if err != nil {
		return err
	}
	if referenced {
		return shared.NewDomainError("PHONE_IN_USE", "Phone is referenced by a sale and cannot be deleted")
	}

	return s.phoneRepo.Delete(ctx, id)
}
