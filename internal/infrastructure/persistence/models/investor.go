package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/investor"
	"github.com/shopspring/decimal"
)

// InvestorModel is the persistence model for the Investor aggregate root.
type InvestorModel struct {
	AggregateModel
	Name             string                  `gorm:"type:varchar(200);not null"`
	PhoneNumber      string                  `gorm:"type:varchar(20);not null"`
	NationalID       string                  `gorm:"type:varchar(10);not null;uniqueIndex"`
	InvestmentAmount decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	ProfitRate       decimal.Decimal         `gorm:"type:decimal(5,2);not null"`
	TotalProfit      decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	StartDate        time.Time               `gorm:"not null"`
	Status           investor.InvestorStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (InvestorModel) TableName() string {
	return "investors"
}

// ToDomain converts the persistence model to a domain Investor entity.
func (m *InvestorModel) ToDomain() *investor.Investor {
	return &investor.Investor{
		BaseAggregateRoot: m.ToDomainAggregate(),
		Name:              m.Name,
		PhoneNumber:       m.PhoneNumber,
		NationalID:        m.NationalID,
		InvestmentAmount:  m.InvestmentAmount,
		ProfitRate:        m.ProfitRate,
		TotalProfit:       m.TotalProfit,
		StartDate:         m.StartDate,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Investor entity.
func (m *InvestorModel) FromDomain(i *investor.Investor) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.Name = i.Name
	m.PhoneNumber = i.PhoneNumber
	m.NationalID = i.NationalID
	m.InvestmentAmount = i.InvestmentAmount
	m.ProfitRate = i.ProfitRate
	m.TotalProfit = i.TotalProfit
	m.StartDate = i.StartDate
	m.Status = i.Status
}

// InvestorModelFromDomain creates a new persistence model from a domain Investor.
func InvestorModelFromDomain(i *investor.Investor) *InvestorModel {
	m := &InvestorModel{}
	m.FromDomain(i)
	return m
}

// InvestorTransactionModel is the persistence model for investor ledger entries.
// Rows are append only and never updated.
type InvestorTransactionModel struct {
	BaseModel
	InvestorID  uuid.UUID                `gorm:"type:uuid;not null;index"`
	Type        investor.TransactionType `gorm:"type:varchar(30);not null"`
	Amount      decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	Description string                   `gorm:"type:text"`
	OccurredAt  time.Time                `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (InvestorTransactionModel) TableName() string {
	return "investor_transactions"
}

// ToDomain converts the persistence model to a domain InvestorTransaction entity.
func (m *InvestorTransactionModel) ToDomain() *investor.InvestorTransaction {
	return &investor.InvestorTransaction{
		BaseEntity:  m.BaseModel.ToDomain(),
		InvestorID:  m.InvestorID,
		Type:        m.Type,
		Amount:      m.Amount,
		Description: m.Description,
		OccurredAt:  m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain InvestorTransaction entity.
func (m *InvestorTransactionModel) FromDomain(t *investor.InvestorTransaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.InvestorID = t.InvestorID
	m.Type = t.Type
	m.Amount = t.Amount
	m.Description = t.Description
	m.OccurredAt = t.OccurredAt
}

// InvestorTransactionModelFromDomain creates a new persistence model from a domain InvestorTransaction.
func InvestorTransactionModelFromDomain(t *investor.InvestorTransaction) *InvestorTransactionModel {
	m := &InvestorTransactionModel{}
	m.FromDomain(t)
	return m
}
