package sales

import (
	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/phoneshop/backend/internal/domain/shared/valueobject"
)

// AggregateTypeSale is the aggregate type for sale events
const AggregateTypeSale = "Sale"

// SaleCreated is raised when a financed sale and its schedule are recorded
type SaleCreated struct {
	shared.BaseDomainEvent
	CustomerID    uuid.UUID         `json:"customer_id"`
	PhoneID       uuid.UUID         `json:"phone_id"`
	PurchasePrice valueobject.Money `json:"purchase_price"`
	DownPayment   valueobject.Money `json:"down_payment"`
	Months        int               `json:"months"`
}

// NewSaleCreated creates a sale created event
func NewSaleCreated(s *Sale) *SaleCreated {
	return &SaleCreated{
		BaseDomainEvent: shared.NewBaseDomainEvent("sale.created", AggregateTypeSale, s.ID),
		CustomerID:      s.CustomerID,
		PhoneID:         s.PhoneID,
		PurchasePrice:   s.PurchasePrice,
		DownPayment:     s.DownPayment,
		Months:          s.Months,
	}
}

// InstallmentPaid is raised when one installment is settled
type InstallmentPaid struct {
	shared.BaseDomainEvent
	InstallmentID uuid.UUID         `json:"installment_id"`
	Number        int               `json:"number"`
	Principal     valueobject.Money `json:"principal"`
	Interest      valueobject.Money `json:"interest"`
}

// NewInstallmentPaid creates an installment paid event
func NewInstallmentPaid(s *Sale, inst *Installment) *InstallmentPaid {
	return &InstallmentPaid{
		BaseDomainEvent: shared.NewBaseDomainEvent("sale.installment_paid", AggregateTypeSale, s.ID),
		InstallmentID:   inst.ID,
		Number:          inst.Number,
		Principal:       inst.PrincipalAmount,
		Interest:        inst.InterestAmount,
	}
}

// SaleCompleted is raised when the final installment is paid
type SaleCompleted struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewSaleCompleted creates a sale completed event
func NewSaleCompleted(s *Sale) *SaleCompleted {
	return &SaleCompleted{
		BaseDomainEvent: shared.NewBaseDomainEvent("sale.completed", AggregateTypeSale, s.ID),
		CustomerID:      s.CustomerID,
	}
}

// SaleDefaulted is raised when an operator marks a sale defaulted
type SaleDefaulted struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewSaleDefaulted creates a sale defaulted event
func NewSaleDefaulted(s *Sale) *SaleDefaulted {
	return &SaleDefaulted{
		BaseDomainEvent: shared.NewBaseDomainEvent("sale.defaulted", AggregateTypeSale, s.ID),
		CustomerID:      s.CustomerID,
	}
}
