package partner

import (
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypePartner is the aggregate type for partner events
const AggregateTypePartner = "Partner"

// PartnerCreated is raised when a new partner joins with initial capital
type PartnerCreated struct {
	shared.BaseDomainEvent
	Name    string          `json:"name"`
	Capital decimal.Decimal `json:"capital"`
	Share   decimal.Decimal `json:"share"`
}

// NewPartnerCreated creates a partner created event
func NewPartnerCreated(p *Partner) *PartnerCreated {
	return &PartnerCreated{
		BaseDomainEvent: shared.NewBaseDomainEvent("partner.created", AggregateTypePartner, p.ID),
		Name:            p.Name,
		Capital:         p.Capital,
		Share:           p.Share,
	}
}

// PartnerBalanceAdjusted is raised after any manual ledger adjustment
type PartnerBalanceAdjusted struct {
	shared.BaseDomainEvent
	TransactionType  TransactionType `json:"transaction_type"`
	Amount           decimal.Decimal `json:"amount"`
	Capital          decimal.Decimal `json:"capital"`
	AvailableCapital decimal.Decimal `json:"available_capital"`
}

// NewPartnerBalanceAdjusted creates a balance adjusted event
func NewPartnerBalanceAdjusted(p *Partner, txType TransactionType, amount decimal.Decimal) *PartnerBalanceAdjusted {
	return &PartnerBalanceAdjusted{
		BaseDomainEvent:  shared.NewBaseDomainEvent("partner.balance_adjusted", AggregateTypePartner, p.ID),
		TransactionType:  txType,
		Amount:           amount,
		Capital:          p.Capital,
		AvailableCapital: p.AvailableCapital,
	}
}

// PartnerDeleted is raised when a partner is soft-deleted
type PartnerDeleted struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewPartnerDeleted creates a partner deleted event
func NewPartnerDeleted(p *Partner) *PartnerDeleted {
	return &PartnerDeleted{
		BaseDomainEvent: shared.NewBaseDomainEvent("partner.deleted", AggregateTypePartner, p.ID),
		Name:            p.Name,
	}
}
