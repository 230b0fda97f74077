package investor

import (
	"time"

	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvestorStatus represents the lifecycle status of an investor
type InvestorStatus string

const (
	InvestorStatusActive   InvestorStatus = "active"
	InvestorStatusInactive InvestorStatus = "inactive"
)

// IsValid checks if the status is valid
func (s InvestorStatus) IsValid() bool {
	switch s {
	case InvestorStatusActive, InvestorStatusInactive:
		return true
	}
	return false
}

// Investor represents an outside lender who funds the business at a fixed
// monthly profit rate. InvestmentAmount moves only through capital
// adjustments; TotalProfit only through profit payments. Both mutations
// append an InvestorTransaction in the same atomic unit.
type Investor struct {
	shared.BaseAggregateRoot
	Name             string
	PhoneNumber      string
	NationalID       string
	InvestmentAmount decimal.Decimal
	ProfitRate       decimal.Decimal // monthly rate as a percentage, 0-100
	TotalProfit      decimal.Decimal
	StartDate        time.Time
	Status           InvestorStatus
}

// NewInvestor creates an investor with the initial investment amount
func NewInvestor(name, phoneNumber, nationalID string, amount, profitRate decimal.Decimal, startDate time.Time) (*Investor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Investor name cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Investment amount cannot be negative")
	}
	if profitRate.IsNegative() || profitRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_RATE", "Profit rate must be between 0 and 100")
	}
	if startDate.IsZero() {
		startDate = time.Now()
	}

	return &Investor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		PhoneNumber:       phoneNumber,
		NationalID:        nationalID,
		InvestmentAmount:  amount,
		ProfitRate:        profitRate,
		TotalProfit:       decimal.Zero,
		StartDate:         startDate,
		Status:            InvestorStatusActive,
	}, nil
}

// IsActive returns true while the investor has not been deactivated
func (i *Investor) IsActive() bool {
	return i.Status == InvestorStatusActive
}

func (i *Investor) guardActive() error {
	if !i.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Investor is inactive")
	}
	return nil
}

// AdjustCapital applies a signed capital movement. Positive amounts are
// deposits, negative amounts withdrawals; the balance may never go below
// zero. Returns the transaction type the caller must record in the ledger.
func (i *Investor) AdjustCapital(signedAmount decimal.Decimal) (TransactionType, error) {
	if err := i.guardActive(); err != nil {
		return "", err
	}
	if signedAmount.IsZero() {
		return "", shared.NewDomainError("INVALID_AMOUNT", "Adjustment amount cannot be zero")
	}

	next := i.InvestmentAmount.Add(signedAmount)
	if next.IsNegative() {
		return "", shared.ErrInsufficientFunds
	}
	i.InvestmentAmount = next
	i.UpdatedAt = time.Now()

	if signedAmount.IsPositive() {
		return TransactionTypeInvestmentAdd, nil
	}
	return TransactionTypeInvestmentWithdraw, nil
}

// RecordProfitPayment accrues a profit payout. It never touches the
// investment balance.
func (i *Investor) RecordProfitPayment(amount decimal.Decimal) error {
	if err := i.guardActive(); err != nil {
		return err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Profit payment must be positive")
	}
	i.TotalProfit = i.TotalProfit.Add(amount)
	i.UpdatedAt = time.Now()
	return nil
}

// MonthlyProfitDue returns the profit owed for one month at the current
// rate and balance
func (i *Investor) MonthlyProfitDue() decimal.Decimal {
	return i.InvestmentAmount.Mul(i.ProfitRate).Div(decimal.NewFromInt(100)).Truncate(2)
}

// UpdateInvestorCommand enumerates the fields that may be changed directly.
// Balances are excluded; they move only through ledger operations.
type UpdateInvestorCommand struct {
	Name        *string
	PhoneNumber *string
	ProfitRate  *decimal.Decimal
}

// UpdateDetails applies the requested field changes
func (i *Investor) UpdateDetails(cmd UpdateInvestorCommand) error {
	if err := i.guardActive(); err != nil {
		return err
	}
	if cmd.Name != nil {
		if *cmd.Name == "" {
			return shared.NewDomainError("INVALID_NAME", "Investor name cannot be empty")
		}
		i.Name = *cmd.Name
	}
	if cmd.PhoneNumber != nil {
		i.PhoneNumber = *cmd.PhoneNumber
	}
	if cmd.ProfitRate != nil {
		if cmd.ProfitRate.IsNegative() || cmd.ProfitRate.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewDomainError("INVALID_RATE", "Profit rate must be between 0 and 100")
		}
		i.ProfitRate = *cmd.ProfitRate
	}
	i.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the investor inactive while retaining the ledger
func (i *Investor) Deactivate() error {
	if !i.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Investor is already inactive")
	}
	i.Status = InvestorStatusInactive
	i.UpdatedAt = time.Now()
	return nil
}
