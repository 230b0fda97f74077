package models

import (
	"time"

	"github.com/phoneshop/backend/internal/domain/finance"
	"github.com/phoneshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for the Expense aggregate root.
type ExpenseModel struct {
	AggregateModel
	Type        finance.ExpenseType `gorm:"type:varchar(20);not null;index"`
	Amount      decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Description string              `gorm:"type:text"`
	SpentAt     time.Time           `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseAggregateRoot: m.ToDomainAggregate(),
		Type:              m.Type,
		Amount:            valueobject.NewToman(m.Amount),
		Description:       m.Description,
		SpentAt:           m.SpentAt,
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Type = e.Type
	m.Amount = e.Amount.Amount()
	m.Description = e.Description
	m.SpentAt = e.SpentAt
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense.
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}
