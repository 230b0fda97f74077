package partner

import (
	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/phoneshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Allocation is one partner's portion of a total amount
type Allocation struct {
	PartnerID uuid.UUID
	Amount    decimal.Decimal
}

// CapitalAllocator splits amounts across partners in proportion to their
// contributed capital. Reservations, repayments and profit credits all use
// the same weight basis, so whatever flows out of a partner's pool flows
// back at the same ratio and the pools conserve across a sale's lifecycle.
type CapitalAllocator struct{}

// NewCapitalAllocator creates a capital allocator
func NewCapitalAllocator() *CapitalAllocator {
	return &CapitalAllocator{}
}

// TotalAvailable sums the available capital of the given partners
func (a *CapitalAllocator) TotalAvailable(partners []*Partner) decimal.Decimal {
	total := decimal.Zero
	for _, p := range partners {
		if p.IsDeleted() {
			continue
		}
		total = total.Add(p.AvailableCapital)
	}
	return total
}

// AllocateByCapital splits total pro-rata over each active partner's
// contributed capital. Rounding remainders land on the last partner with a
// non-zero weight so the parts always sum to total.
func (a *CapitalAllocator) AllocateByCapital(partners []*Partner, total valueobject.Money) ([]Allocation, error) {
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation total cannot be negative")
	}

	active := make([]*Partner, 0, len(partners))
	for _, p := range partners {
		if !p.IsDeleted() {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return nil, shared.NewDomainError("NO_PARTNERS", "No active partners to allocate to")
	}

	weights := make([]decimal.Decimal, len(active))
	weightSum := decimal.Zero
	for i, p := range active {
		weights[i] = p.Capital
		weightSum = weightSum.Add(p.Capital)
	}
	if weightSum.IsZero() {
		return nil, shared.NewDomainError("INVALID_STATE", "Partners have no contributed capital to allocate against")
	}

	parts, err := total.AllocateByWeights(weights)
	if err != nil {
		return nil, err
	}

	allocations := make([]Allocation, len(active))
	for i, p := range active {
		allocations[i] = Allocation{PartnerID: p.ID, Amount: parts[i].Amount()}
	}
	return allocations, nil
}
