package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a manual ledger adjustment
type TransactionType string

const (
	TransactionTypeCapitalAdd            TransactionType = "capital_add"
	TransactionTypeCapitalWithdraw       TransactionType = "capital_withdraw"
	TransactionTypeInitialProfitWithdraw TransactionType = "initial_profit_withdraw"
	TransactionTypeMonthlyProfitWithdraw TransactionType = "monthly_profit_withdraw"
	TransactionTypeProfitToCapital       TransactionType = "profit_to_capital"
)

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeCapitalAdd, TransactionTypeCapitalWithdraw,
		TransactionTypeInitialProfitWithdraw, TransactionTypeMonthlyProfitWithdraw,
		TransactionTypeProfitToCapital:
		return true
	}
	return false
}

// PartnerTransaction is one append-only ledger entry. Amounts are always
// positive; the type carries the direction. Entries are never updated or
// deleted, and they survive the soft-deletion of their partner.
type PartnerTransaction struct {
	shared.BaseEntity
	PartnerID   uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	ProfitType  *ProfitType // set only for profit_to_capital
	Description string
	OccurredAt  time.Time
}

// NewPartnerTransaction records a ledger entry for a completed adjustment.
func NewPartnerTransaction(partnerID uuid.UUID, txType TransactionType, amount decimal.Decimal, description string) (*PartnerTransaction, error) {
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner ID is required")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}

	return &PartnerTransaction{
		BaseEntity:  shared.NewBaseEntity(),
		PartnerID:   partnerID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		OccurredAt:  time.Now(),
	}, nil
}

// WithProfitType tags a profit_to_capital entry with the pool it drew from
func (t *PartnerTransaction) WithProfitType(pt ProfitType) *PartnerTransaction {
	t.ProfitType = &pt
	return t
}

// SignedCapitalDelta returns the entry's effect on the available capital
// pool. Withdrawals from profit pools do not touch capital.
func (t *PartnerTransaction) SignedCapitalDelta() decimal.Decimal {
	switch t.Type {
	case TransactionTypeCapitalAdd, TransactionTypeProfitToCapital:
		return t.Amount
	case TransactionTypeCapitalWithdraw:
		return t.Amount.Neg()
	}
	return decimal.Zero
}
