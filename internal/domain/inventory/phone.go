package inventory

import (
	"time"

	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PhoneStatus represents the inventory status of a phone
type PhoneStatus string

const (
	PhoneStatusAvailable PhoneStatus = "available"
	PhoneStatusSold      PhoneStatus = "sold"
)

// IsValid checks if the status is a valid PhoneStatus
func (s PhoneStatus) IsValid() bool {
	switch s {
	case PhoneStatusAvailable, PhoneStatusSold:
		return true
	}
	return false
}

// String returns the string representation of PhoneStatus
func (s PhoneStatus) String() string {
	return string(s)
}

// Phone represents a single handset in stock, identified by its IMEI.
// A phone transitions available -> sold exactly when a sale referencing it
// is created; the only way back to available is deleting that sale.
type Phone struct {
	shared.BaseAggregateRoot
	Brand         string
	Model         string
	IMEI          string
	PurchasePrice decimal.Decimal
	SellingPrice  decimal.Decimal
	Status        PhoneStatus
	PurchaseDate  time.Time
}

// NewPhone creates a new phone in available status
func NewPhone(brand, model, imei string, purchasePrice, sellingPrice decimal.Decimal) (*Phone, error) {
	if brand == "" {
		return nil, shared.NewDomainError("INVALID_BRAND", "Brand cannot be empty")
	}
	if model == "" {
		return nil, shared.NewDomainError("INVALID_MODEL", "Model cannot be empty")
	}
	if err := validateIMEI(imei); err != nil {
		return nil, err
	}
	if purchasePrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Purchase price must be positive")
	}
	if sellingPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price must be positive")
	}

	phone := &Phone{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Brand:             brand,
		Model:             model,
		IMEI:              imei,
		PurchasePrice:     purchasePrice,
		SellingPrice:      sellingPrice,
		Status:            PhoneStatusAvailable,
		PurchaseDate:      time.Now(),
	}
	phone.AddDomainEvent(NewPhoneRegisteredEvent(phone))
	return phone, nil
}

// validateIMEI checks the IMEI is a 14-16 digit string
func validateIMEI(imei string) error {
	if len(imei) < 14 || len(imei) > 16 {
		return shared.NewDomainError("INVALID_IMEI", "IMEI must be 14 to 16 digits")
	}
	for _, c := range imei {
		if c < '0' || c > '9' {
			return shared.NewDomainError("INVALID_IMEI", "IMEI must contain only digits")
		}
	}
	return nil
}

// IsAvailable returns true if the phone can be referenced by a new sale
func (p *Phone) IsAvailable() bool {
	return p.Status == PhoneStatusAvailable
}

// MarkSold flips the phone to sold. Only valid while available.
func (p *Phone) MarkSold() error {
	if p.Status != PhoneStatusAvailable {
		return shared.NewDomainError("PHONE_NOT_AVAILABLE", "Phone is not available for sale")
	}
	p.Status = PhoneStatusSold
	p.UpdatedAt = time.Now()
	p.AddDomainEvent(NewPhoneSoldEvent(p))
	return nil
}

// MarkAvailable returns a sold phone to stock. Used only when the sale
// holding it is deleted; a defaulted sale keeps the phone sold.
func (p *Phone) MarkAvailable() error {
	if p.Status != PhoneStatusSold {
		return shared.NewDomainError("INVALID_STATE", "Phone is not sold")
	}
	p.Status = PhoneStatusAvailable
	p.UpdatedAt = time.Now()
	p.AddDomainEvent(NewPhoneReturnedEvent(p))
	return nil
}

// UpdateDetails updates the descriptive and pricing fields of an available
// phone. Each optional field is validated individually; status is never
// touched here.
func (p *Phone) UpdateDetails(cmd UpdatePhoneCommand) error {
	if cmd.Brand != nil {
		if *cmd.Brand == "" {
			return shared.NewDomainError("INVALID_BRAND", "Brand cannot be empty")
		}
		p.Brand = *cmd.Brand
	}
	if cmd.Model != nil {
		if *cmd.Model == "" {
			return shared.NewDomainError("INVALID_MODEL", "Model cannot be empty")
		}
		p.Model = *cmd.Model
	}
	if cmd.IMEI != nil {
		if err := validateIMEI(*cmd.IMEI); err != nil {
			return err
		}
		p.IMEI = *cmd.IMEI
	}
	if cmd.PurchasePrice != nil {
		if cmd.PurchasePrice.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_PRICE", "Purchase price must be positive")
		}
		p.PurchasePrice = *cmd.PurchasePrice
	}
	if cmd.SellingPrice != nil {
		if cmd.SellingPrice.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_PRICE", "Selling price must be positive")
		}
		p.SellingPrice = *cmd.SellingPrice
	}
	p.UpdatedAt = time.Now()
	return nil
}

// UpdatePhoneCommand enumerates the fields that may be changed on a phone.
type UpdatePhoneCommand struct {
	Brand         *string
	Model         *string
	IMEI          *string
	PurchasePrice *decimal.Decimal
	SellingPrice  *decimal.Decimal
}
