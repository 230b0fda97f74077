package investor

import (
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionType classifies an investor ledger entry
type TransactionType string

const (
	TransactionTypeInvestmentAdd      TransactionType = "investment_add"
	TransactionTypeInvestmentWithdraw TransactionType = "investment_withdraw"
	TransactionTypeProfitPayment      TransactionType = "profit_payment"
)

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeInvestmentAdd, TransactionTypeInvestmentWithdraw, TransactionTypeProfitPayment:
		return true
	}
	return false
}

// InvestorTransaction is one append-only ledger entry. Amounts are always
// positive; the type carries the direction.
type InvestorTransaction struct {
	shared.BaseEntity
	InvestorID  uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	OccurredAt  time.Time
}

// NewInvestorTransaction records a ledger entry for a completed operation
func NewInvestorTransaction(investorID uuid.UUID, txType TransactionType, amount decimal.Decimal, description string) (*InvestorTransaction, error) {
	if investorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVESTOR", "Investor ID is required")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}

	return &InvestorTransaction{
		BaseEntity:  shared.NewBaseEntity(),
		InvestorID:  investorID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		OccurredAt:  time.Now(),
	}, nil
}
