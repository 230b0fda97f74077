package partner

import (
	"time"

	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PartnerStatus represents the lifecycle status of a partner
type PartnerStatus string

const (
	PartnerStatusActive  PartnerStatus = "active"
	PartnerStatusDeleted PartnerStatus = "deleted"
)

// IsValid checks if the status is a valid PartnerStatus
func (s PartnerStatus) IsValid() bool {
	switch s {
	case PartnerStatusActive, PartnerStatusDeleted:
		return true
	}
	return false
}

// ProfitType identifies which profit pool a conversion draws from
type ProfitType string

const (
	ProfitTypeInitial ProfitType = "initial"
	ProfitTypeMonthly ProfitType = "monthly"
	ProfitTypeBoth    ProfitType = "both"
)

// IsValid checks if the profit type is valid
func (p ProfitType) IsValid() bool {
	switch p {
	case ProfitTypeInitial, ProfitTypeMonthly, ProfitTypeBoth:
		return true
	}
	return false
}

// Partner represents a business co-owner whose contributed capital funds
// phone purchases. Capital splits into a spendable pool (AvailableCapital)
// and two accrued profit pools (InitialProfit from sale margins,
// MonthlyProfit from installment interest). The pools are denormalized for
// reads; every mutation goes through a method here and is persisted together
// with its transaction record and history snapshot.
type Partner struct {
	shared.BaseAggregateRoot
	Name             string
	Capital          decimal.Decimal
	AvailableCapital decimal.Decimal
	InitialProfit    decimal.Decimal
	MonthlyProfit    decimal.Decimal
	Share            decimal.Decimal // ownership percentage, 0-100
	Status           PartnerStatus
	DeletedAt        *time.Time
}

// NewPartner creates a partner whose available capital equals the initial
// contribution; both profit pools start at zero.
func NewPartner(name string, capital, share decimal.Decimal) (*Partner, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	if capital.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Capital cannot be negative")
	}
	if share.IsNegative() || share.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_SHARE", "Share must be between 0 and 100")
	}

	return &Partner{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Capital:           capital,
		AvailableCapital:  capital,
		InitialProfit:     decimal.Zero,
		MonthlyProfit:     decimal.Zero,
		Share:             share,
		Status:            PartnerStatusActive,
	}, nil
}

// IsDeleted returns true if the partner has been soft-deleted
func (p *Partner) IsDeleted() bool {
	return p.Status == PartnerStatusDeleted
}

// TotalProfit returns the sum of both profit pools
func (p *Partner) TotalProfit() decimal.Decimal {
	return p.InitialProfit.Add(p.MonthlyProfit)
}

// UsedCapital returns the portion of capital currently tied up in stock
func (p *Partner) UsedCapital() decimal.Decimal {
	return p.Capital.Sub(p.AvailableCapital)
}

func (p *Partner) guardActive() error {
	if p.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Partner has been deleted")
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	return nil
}

// AddCapital increases both total and available capital
func (p *Partner) AddCapital(amount decimal.Decimal) error {
	if err := p.guardActive(); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	p.Capital = p.Capital.Add(amount)
	p.AvailableCapital = p.AvailableCapital.Add(amount)
	p.UpdatedAt = time.Now()
	return nil
}

// WithdrawCapital removes spendable capital. Fails if the available pool
// cannot cover the amount.
func (p *Partner) WithdrawCapital(amount decimal.Decimal) error {
	if err := p.guardActive(); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if p.AvailableCapital.LessThan(amount) {
		return shared.ErrInsufficientFunds
	}
	p.Capital = p.Capital.Sub(amount)
	p.AvailableCapital = p.AvailableCapital.Sub(amount)
	p.UpdatedAt = time.Now()
	return nil
}

// WithdrawInitialProfit removes accrued one-time profit
func (p *Partner) WithdrawInitialProfit(amount decimal.Decimal) error {
	if err := p.guardActive(); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if p.InitialProfit.LessThan(amount) {
		return shared.ErrInsufficientFunds
	}
	p.InitialProfit = p.InitialProfit.Sub(amount)
	p.UpdatedAt = time.Now()
	return nil
}

// WithdrawMonthlyProfit removes accrued interest profit
func (p *Partner) WithdrawMonthlyProfit(amount decimal.Decimal) error {
	if err := p.guardActive(); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if p.MonthlyProfit.LessThan(amount) {
		return shared.ErrInsufficientFunds
	}
	p.MonthlyProfit = p.MonthlyProfit.Sub(amount)
	p.UpdatedAt = time.Now()
	return nil
}

// ConvertProfitToCapital moves profit into the spendable capital pool.
// For ProfitTypeBoth the initial pool is drained first, then monthly.
func (p *Partner) ConvertProfitToCapital(amount decimal.Decimal, profitType ProfitType) error {
	if err := p.guardActive(); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if !profitType.IsValid() {
		return shared.NewDomainError("INVALID_PROFIT_TYPE", "Invalid profit type")
	}

	switch profitType {
	case ProfitTypeInitial:
		if p.InitialProfit.LessThan(amount) {
			return shared.ErrInsufficientFunds
		}
		p.InitialProfit = p.InitialProfit.Sub(amount)
	case ProfitTypeMonthly:
		if p.MonthlyProfit.LessThan(amount) {
			return shared.ErrInsufficientFunds
		}
		p.MonthlyProfit = p.MonthlyProfit.Sub(amount)
	case ProfitTypeBoth:
		if p.TotalProfit().LessThan(amount) {
			return shared.ErrInsufficientFunds
		}
		fromInitial := decimal.Min(p.InitialProfit, amount)
		p.InitialProfit = p.InitialProfit.Sub(fromInitial)
		p.MonthlyProfit = p.MonthlyProfit.Sub(amount.Sub(fromInitial))
	}

	p.Capital = p.Capital.Add(amount)
	p.AvailableCapital = p.AvailableCapital.Add(amount)
	p.UpdatedAt = time.Now()
	return nil
}

// ReserveCapital locks available capital for a phone purchase. Total
// capital is unchanged; the difference shows up as UsedCapital.
func (p *Partner) ReserveCapital(amount decimal.Decimal) error {
	if err := p.guardActive(); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if p.AvailableCapital.LessThan(amount) {
		return shared.ErrInsufficientFunds
	}
	p.AvailableCapital = p.AvailableCapital.Sub(amount)
	p.UpdatedAt = time.Now()
	return nil
}

// ReleaseCapital returns reserved capital when installment principal is
// repaid or a sale is removed. The exact inverse of ReserveCapital: the
// full amount is credited back, never capped, so the pool conserves as
// long as reservations and releases use the same allocation weights.
func (p *Partner) ReleaseCapital(amount decimal.Decimal) error {
	if err := p.guardActive(); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	p.AvailableCapital = p.AvailableCapital.Add(amount)
	p.UpdatedAt = time.Now()
	return nil
}

// AccrueInitialProfit credits the one-time sale margin pool
func (p *Partner) AccrueInitialProfit(amount decimal.Decimal) error {
	if err := p.guardActive(); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	p.InitialProfit = p.InitialProfit.Add(amount)
	p.UpdatedAt = time.Now()
	return nil
}

// AccrueMonthlyProfit credits the installment-interest pool
func (p *Partner) AccrueMonthlyProfit(amount decimal.Decimal) error {
	if err := p.guardActive(); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	p.MonthlyProfit = p.MonthlyProfit.Add(amount)
	p.UpdatedAt = time.Now()
	return nil
}

// UpdateDetails updates the partner's descriptive fields. Balances are
// never touched here; they move only through the ledger operations above.
func (p *Partner) UpdateDetails(cmd UpdatePartnerCommand) error {
	if err := p.guardActive(); err != nil {
		return err
	}
	if cmd.Name != nil {
		if *cmd.Name == "" {
			return shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
		}
		p.Name = *cmd.Name
	}
	if cmd.Share != nil {
		if cmd.Share.IsNegative() || cmd.Share.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewDomainError("INVALID_SHARE", "Share must be between 0 and 100")
		}
		p.Share = *cmd.Share
	}
	p.UpdatedAt = time.Now()
	return nil
}

// UpdatePartnerCommand enumerates the fields that may be changed directly.
type UpdatePartnerCommand struct {
	Name  *string
	Share *decimal.Decimal
}

// SoftDelete marks the partner deleted, preserving its transaction history
// for audit. Balances are frozen as-is.
func (p *Partner) SoftDelete() error {
	if p.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Partner is already deleted")
	}
	now := time.Now()
	p.Status = PartnerStatusDeleted
	p.DeletedAt = &now
	p.UpdatedAt = now
	return nil
}
