package sales

import (
	"time"

	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/phoneshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProfitCalculationType selects how installment interest is charged
type ProfitCalculationType string

const (
	// ProfitCalculationDeclining charges interest on the remaining balance
	// before each installment, so interest shrinks as principal is repaid.
	ProfitCalculationDeclining ProfitCalculationType = "declining"
	// ProfitCalculationFlat charges the same interest every month, computed
	// on the full financed amount.
	ProfitCalculationFlat ProfitCalculationType = "flat"
)

// IsValid checks if the calculation type is valid
func (p ProfitCalculationType) IsValid() bool {
	switch p {
	case ProfitCalculationDeclining, ProfitCalculationFlat:
		return true
	}
	return false
}

// ScheduleTerms are the validated inputs to schedule generation
type ScheduleTerms struct {
	PurchasePrice   valueobject.Money
	DownPayment     valueobject.Money
	Months          int
	MonthlyRate     decimal.Decimal // fractional, 0.04 = 4% per month
	CalculationType ProfitCalculationType
	SaleDate        time.Time
}

// InstallmentDraft is one generated schedule row before it is attached to
// a persisted sale
type InstallmentDraft struct {
	Number          int
	PrincipalAmount valueobject.Money
	InterestAmount  valueobject.Money
	TotalAmount     valueobject.Money
	RemainingDebt   valueobject.Money
	DueDate         time.Time
}

// ScheduleGenerator turns sale terms into an ordered installment schedule.
// Generation is pure: it reads no state and takes no locks.
type ScheduleGenerator struct{}

// NewScheduleGenerator creates a schedule generator
func NewScheduleGenerator() *ScheduleGenerator {
	return &ScheduleGenerator{}
}

// Generate produces exactly terms.Months installment drafts numbered from 1.
// The financed principal (purchase price minus down payment) is split evenly
// with the rounding remainder assigned to the final installment, so the
// principal amounts always sum back to the financed total and the last
// remaining debt is exactly zero. Due dates advance one calendar month per
// installment, clamping to the last day of shorter months.
func (g *ScheduleGenerator) Generate(terms ScheduleTerms) ([]InstallmentDraft, error) {
	if err := g.validate(terms); err != nil {
		return nil, err
	}

	financed := terms.PurchasePrice.MustSubtract(terms.DownPayment)
	principals, err := financed.SplitEven(terms.Months)
	if err != nil {
		return nil, err
	}

	flatInterest := valueobject.Zero(financed.Currency())
	if terms.CalculationType == ProfitCalculationFlat {
		flatInterest = financed.Multiply(terms.MonthlyRate).Round(2)
	}

	drafts := make([]InstallmentDraft, terms.Months)
	remaining := financed
	for i := 0; i < terms.Months; i++ {
		var interest valueobject.Money
		if terms.CalculationType == ProfitCalculationFlat {
			interest = flatInterest
		} else {
			interest = remaining.Multiply(terms.MonthlyRate).Round(2)
		}

		principal := principals[i]
		remaining = remaining.MustSubtract(principal)

		drafts[i] = InstallmentDraft{
			Number:          i + 1,
			PrincipalAmount: principal,
			InterestAmount:  interest,
			TotalAmount:     principal.MustAdd(interest),
			RemainingDebt:   remaining,
			DueDate:         addMonthsClamped(terms.SaleDate, i+1),
		}
	}

	return drafts, nil
}

// TotalInterest sums the interest across a generated schedule
func TotalInterest(drafts []InstallmentDraft) valueobject.Money {
	if len(drafts) == 0 {
		return valueobject.ZeroToman()
	}
	total := valueobject.Zero(drafts[0].InterestAmount.Currency())
	for _, d := range drafts {
		total = total.MustAdd(d.InterestAmount)
	}
	return total
}

func (g *ScheduleGenerator) validate(terms ScheduleTerms) error {
	if !terms.PurchasePrice.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Purchase price must be positive")
	}
	if terms.DownPayment.IsNegative() {
		return shared.NewDomainError("INVALID_DOWN_PAYMENT", "Down payment cannot be negative")
	}
	covered, err := terms.DownPayment.GreaterThanOrEqual(terms.PurchasePrice)
	if err != nil {
		return err
	}
	if covered {
		return shared.NewDomainError("INVALID_DOWN_PAYMENT", "Down payment must be less than the purchase price")
	}
	if terms.Months < 1 {
		return shared.NewDomainError("INVALID_MONTHS", "Installment months must be at least 1")
	}
	if terms.MonthlyRate.IsNegative() || terms.MonthlyRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return shared.NewDomainError("INVALID_RATE", "Monthly rate must be in [0, 1)")
	}
	if !terms.CalculationType.IsValid() {
		return shared.NewDomainError("INVALID_CALCULATION_TYPE", "Invalid profit calculation type")
	}
	if terms.SaleDate.IsZero() {
		return shared.NewDomainError("INVALID_SALE_DATE", "Sale date is required")
	}
	return nil
}

// addMonthsClamped advances d by the given number of calendar months. When
// the source day does not exist in the target month (Jan 31 + 1 month), the
// result clamps to the target month's last day instead of rolling over.
func addMonthsClamped(d time.Time, months int) time.Time {
	year, month, day := d.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, d.Location())
	lastDay := target.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(target.Year(), target.Month(), day,
		d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}
