package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/phoneshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the lifecycle status of a sale
type SaleStatus string

const (
	SaleStatusActive    SaleStatus = "active"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusDefaulted SaleStatus = "defaulted"
)

// IsValid checks if the status is valid
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusActive, SaleStatusCompleted, SaleStatusDefaulted:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions
func (s SaleStatus) IsTerminal() bool {
	return s == SaleStatusCompleted || s == SaleStatusDefaulted
}

// Sale is a financed phone purchase together with its full installment
// schedule. The sale, its installments and the phone's status flip are
// created as one atomic unit; a sale is never persisted with a partial
// schedule.
type Sale struct {
	shared.BaseAggregateRoot
	CustomerID      uuid.UUID
	PhoneID         uuid.UUID
	AnnouncedPrice  valueobject.Money // price the customer pays, base of the schedule
	PurchasePrice   valueobject.Money // what the shop paid for the phone
	DownPayment     valueobject.Money
	Months          int
	MonthlyRate     decimal.Decimal
	CalculationType ProfitCalculationType
	InitialProfit   valueobject.Money
	TotalProfit     valueobject.Money
	SaleDate        time.Time
	Status          SaleStatus
	Installments    []Installment
}

// NewSale builds a sale and its schedule from the given terms. The initial
// profit is the margin between the announced customer price and the phone's
// cost; total profit adds the schedule's interest on top.
func NewSale(customerID, phoneID uuid.UUID, announcedPrice valueobject.Money, phoneCost valueobject.Money, terms ScheduleTerms, gen *ScheduleGenerator) (*Sale, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}
	if phoneID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone ID is required")
	}

	// the schedule amortizes what the customer owes
	terms.PurchasePrice = announcedPrice
	drafts, err := gen.Generate(terms)
	if err != nil {
		return nil, err
	}

	initialProfit, err := announcedPrice.Subtract(phoneCost)
	if err != nil {
		return nil, err
	}
	totalProfit, err := initialProfit.Add(TotalInterest(drafts))
	if err != nil {
		return nil, err
	}

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		PhoneID:           phoneID,
		AnnouncedPrice:    announcedPrice,
		PurchasePrice:     phoneCost,
		DownPayment:       terms.DownPayment,
		Months:            terms.Months,
		MonthlyRate:       terms.MonthlyRate,
		CalculationType:   terms.CalculationType,
		InitialProfit:     initialProfit,
		TotalProfit:       totalProfit,
		SaleDate:          terms.SaleDate,
		Status:            SaleStatusActive,
	}

	sale.Installments = make([]Installment, len(drafts))
	for i, d := range drafts {
		sale.Installments[i] = newInstallmentFromDraft(sale.ID, d)
	}

	return sale, nil
}

// FinancedAmount returns the principal carried by the schedule
func (s *Sale) FinancedAmount() valueobject.Money {
	return s.AnnouncedPrice.MustSubtract(s.DownPayment)
}

// InstallmentByNumber returns the installment with the given 1-based number
func (s *Sale) InstallmentByNumber(number int) (*Installment, error) {
	for i := range s.Installments {
		if s.Installments[i].Number == number {
			return &s.Installments[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

// InstallmentByID returns the installment with the given ID
func (s *Sale) InstallmentByID(id uuid.UUID) (*Installment, error) {
	for i := range s.Installments {
		if s.Installments[i].ID == id {
			return &s.Installments[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

// AllInstallmentsPaid reports whether every installment has been settled
func (s *Sale) AllInstallmentsPaid() bool {
	for i := range s.Installments {
		if !s.Installments[i].IsPaid() {
			return false
		}
	}
	return true
}

// PayInstallment settles one installment and completes the sale when it was
// the last unpaid one. Terminal sales accept no further payments.
func (s *Sale) PayInstallment(installmentID uuid.UUID, paidAt time.Time) (*Installment, error) {
	if s.Status != SaleStatusActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Sale is not active")
	}

	inst, err := s.InstallmentByID(installmentID)
	if err != nil {
		return nil, err
	}
	if err := inst.MarkPaid(paidAt); err != nil {
		return nil, err
	}

	if s.AllInstallmentsPaid() {
		s.Status = SaleStatusCompleted
	}
	s.UpdatedAt = time.Now()
	return inst, nil
}

// MarkDefaulted records that the customer stopped paying. The phone stays
// sold; recovering it is a manual process outside the ledger.
func (s *Sale) MarkDefaulted() error {
	if s.Status != SaleStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active sales can be defaulted")
	}
	s.Status = SaleStatusDefaulted
	s.UpdatedAt = time.Now()
	return nil
}

// OutstandingPrincipal sums the principal of unpaid installments
func (s *Sale) OutstandingPrincipal() valueobject.Money {
	total := valueobject.Zero(s.AnnouncedPrice.Currency())
	for i := range s.Installments {
		if !s.Installments[i].IsPaid() {
			total = total.MustAdd(s.Installments[i].PrincipalAmount)
		}
	}
	return total
}
