package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// HistoryAction identifies what kind of change a snapshot records
type HistoryAction string

const (
	HistoryActionCreated HistoryAction = "created"
	HistoryActionUpdated HistoryAction = "updated"
	HistoryActionDeleted HistoryAction = "deleted"
)

// PartnerHistory is a point-in-time snapshot of a partner's balances,
// appended after every mutation so past states can be reconstructed
// without replaying the transaction log.
type PartnerHistory struct {
	shared.BaseEntity
	PartnerID        uuid.UUID
	Action           HistoryAction
	Name             string
	Capital          decimal.Decimal
	AvailableCapital decimal.Decimal
	InitialProfit    decimal.Decimal
	MonthlyProfit    decimal.Decimal
	Share            decimal.Decimal
	RecordedAt       time.Time
}

// SnapshotPartner captures the partner's current state under the given action
func SnapshotPartner(p *Partner, action HistoryAction) *PartnerHistory {
	return &PartnerHistory{
		BaseEntity:       shared.NewBaseEntity(),
		PartnerID:        p.ID,
		Action:           action,
		Name:             p.Name,
		Capital:          p.Capital,
		AvailableCapital: p.AvailableCapital,
		InitialProfit:    p.InitialProfit,
		MonthlyProfit:    p.MonthlyProfit,
		Share:            p.Share,
		RecordedAt:       time.Now(),
	}
}
