package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// PartnerModel is the persistence model for the Partner aggregate root.
type PartnerModel struct {
	AggregateModel
	Name             string                `gorm:"type:varchar(200);not null"`
	Capital          decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	AvailableCapital decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	InitialProfit    decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	MonthlyProfit    decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Share            decimal.Decimal       `gorm:"type:decimal(5,2);not null"`
	Status           partner.PartnerStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	DeletedAt        *time.Time            `gorm:"index"`
}

// TableName returns the table name for GORM
func (PartnerModel) TableName() string {
	return "partners"
}

// ToDomain converts the persistence model to a domain Partner entity.
func (m *PartnerModel) ToDomain() *partner.Partner {
	return &partner.Partner{
		BaseAggregateRoot: m.ToDomainAggregate(),
		Name:              m.Name,
		Capital:           m.Capital,
		AvailableCapital:  m.AvailableCapital,
		InitialProfit:     m.InitialProfit,
		MonthlyProfit:     m.MonthlyProfit,
		Share:             m.Share,
		Status:            m.Status,
		DeletedAt:         m.DeletedAt,
	}
}

// FromDomain populates the persistence model from a domain Partner entity.
func (m *PartnerModel) FromDomain(p *partner.Partner) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Capital = p.Capital
	m.AvailableCapital = p.AvailableCapital
	m.InitialProfit = p.InitialProfit
	m.MonthlyProfit = p.MonthlyProfit
	m.Share = p.Share
	m.Status = p.Status
	m.DeletedAt = p.DeletedAt
}

// PartnerModelFromDomain creates a new persistence model from a domain Partner.
func PartnerModelFromDomain(p *partner.Partner) *PartnerModel {
	m := &PartnerModel{}
	m.FromDomain(p)
	return m
}

// PartnerTransactionModel is the persistence model for partner ledger entries.
// Rows are append only and never updated.
type PartnerTransactionModel struct {
	BaseModel
	PartnerID   uuid.UUID               `gorm:"type:uuid;not null;index"`
	Type        partner.TransactionType `gorm:"type:varchar(30);not null"`
	Amount      decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	ProfitType  *partner.ProfitType     `gorm:"type:varchar(10)"`
	Description string                  `gorm:"type:text"`
	OccurredAt  time.Time               `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PartnerTransactionModel) TableName() string {
	return "partner_transactions"
}

// ToDomain converts the persistence model to a domain PartnerTransaction entity.
func (m *PartnerTransactionModel) ToDomain() *partner.PartnerTransaction {
	return &partner.PartnerTransaction{
		BaseEntity:  m.BaseModel.ToDomain(),
		PartnerID:   m.PartnerID,
		Type:        m.Type,
		Amount:      m.Amount,
		ProfitType:  m.ProfitType,
		Description: m.Description,
		OccurredAt:  m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain PartnerTransaction entity.
func (m *PartnerTransactionModel) FromDomain(t *partner.PartnerTransaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.PartnerID = t.PartnerID
	m.Type = t.Type
	m.Amount = t.Amount
	m.ProfitType = t.ProfitType
	m.Description = t.Description
	m.OccurredAt = t.OccurredAt
}

// PartnerTransactionModelFromDomain creates a new persistence model from a domain PartnerTransaction.
func PartnerTransactionModelFromDomain(t *partner.PartnerTransaction) *PartnerTransactionModel {
	m := &PartnerTransactionModel{}
	m.FromDomain(t)
	return m
}

// PartnerHistoryModel is the persistence model for partner balance snapshots.
type PartnerHistoryModel struct {
	BaseModel
	PartnerID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	Action           partner.HistoryAction `gorm:"type:varchar(20);not null"`
	Name             string                `gorm:"type:varchar(200);not null"`
	Capital          decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	AvailableCapital decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	InitialProfit    decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	MonthlyProfit    decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Share            decimal.Decimal       `gorm:"type:decimal(5,2);not null"`
	RecordedAt       time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PartnerHistoryModel) TableName() string {
	return "partner_histories"
}

// ToDomain converts the persistence model to a domain PartnerHistory entity.
func (m *PartnerHistoryModel) ToDomain() *partner.PartnerHistory {
	return &partner.PartnerHistory{
		BaseEntity:       m.BaseModel.ToDomain(),
		PartnerID:        m.PartnerID,
		Action:           m.Action,
		Name:             m.Name,
		Capital:          m.Capital,
		AvailableCapital: m.AvailableCapital,
		InitialProfit:    m.InitialProfit,
		MonthlyProfit:    m.MonthlyProfit,
		Share:            m.Share,
		RecordedAt:       m.RecordedAt,
	}
}

// FromDomain populates the persistence model from a domain PartnerHistory entity.
func (m *PartnerHistoryModel) FromDomain(h *partner.PartnerHistory) {
	m.FromDomainBaseEntity(h.BaseEntity)
	m.PartnerID = h.PartnerID
	m.Action = h.Action
	m.Name = h.Name
	m.Capital = h.Capital
	m.AvailableCapital = h.AvailableCapital
	m.InitialProfit = h.InitialProfit
	m.MonthlyProfit = h.MonthlyProfit
	m.Share = h.Share
	m.RecordedAt = h.RecordedAt
}

// PartnerHistoryModelFromDomain creates a new persistence model from a domain PartnerHistory.
func PartnerHistoryModelFromDomain(h *partner.PartnerHistory) *PartnerHistoryModel {
	m := &PartnerHistoryModel{}
	m.FromDomain(h)
	return m
}
