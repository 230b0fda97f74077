package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/phoneshop/backend/internal/domain/shared/valueobject"
)

// InstallmentStatus represents the payment status of an installment
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPaid    InstallmentStatus = "paid"
	InstallmentStatusOverdue InstallmentStatus = "overdue"
)

// IsValid checks if the status is valid
func (s InstallmentStatus) IsValid() bool {
	switch s {
	case InstallmentStatusPending, InstallmentStatusPaid, InstallmentStatusOverdue:
		return true
	}
	return false
}

// Installment is one row of a sale's payment schedule. Installments are
// created only in a batch at sale creation and belong to exactly one sale.
type Installment struct {
	shared.BaseEntity
	SaleID          uuid.UUID
	Number          int
	PrincipalAmount valueobject.Money
	InterestAmount  valueobject.Money
	TotalAmount     valueobject.Money
	RemainingDebt   valueobject.Money
	DueDate         time.Time
	Status          InstallmentStatus
	PaidDate        *time.Time
}

func newInstallmentFromDraft(saleID uuid.UUID, d InstallmentDraft) Installment {
	return Installment{
		BaseEntity:      shared.NewBaseEntity(),
		SaleID:          saleID,
		Number:          d.Number,
		PrincipalAmount: d.PrincipalAmount,
		InterestAmount:  d.InterestAmount,
		TotalAmount:     d.TotalAmount,
		RemainingDebt:   d.RemainingDebt,
		DueDate:         d.DueDate,
		Status:          InstallmentStatusPending,
	}
}

// IsPaid returns true once the installment has been settled
func (i *Installment) IsPaid() bool {
	return i.Status == InstallmentStatusPaid
}

// IsOverdue reports whether the installment is unpaid past its due date at
// the given instant. Marking installments overdue is driven by an external
// job; this predicate is the only time-based logic the domain exposes.
func (i *Installment) IsOverdue(asOf time.Time) bool {
	return i.Status != InstallmentStatusPaid && asOf.After(i.DueDate)
}

// MarkPaid settles the installment at the given time
func (i *Installment) MarkPaid(paidAt time.Time) error {
	if i.Status == InstallmentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Installment is already paid")
	}
	i.Status = InstallmentStatusPaid
	i.PaidDate = &paidAt
	i.UpdatedAt = time.Now()
	return nil
}

// MarkOverdue flags an unpaid installment whose due date has passed
func (i *Installment) MarkOverdue(asOf time.Time) error {
	if i.Status == InstallmentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid installments cannot become overdue")
	}
	if !i.IsOverdue(asOf) {
		return shared.NewDomainError("INVALID_STATE", "Installment is not past its due date")
	}
	i.Status = InstallmentStatusOverdue
	i.UpdatedAt = time.Now()
	return nil
}
