package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/sales"
	"github.com/phoneshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root.
// Installments are persisted as child rows and loaded together with the sale.
type SaleModel struct {
	AggregateModel
	CustomerID      uuid.UUID                   `gorm:"type:uuid;not null;index"`
	PhoneID         uuid.UUID                   `gorm:"type:uuid;not null;index"`
	AnnouncedPrice  decimal.Decimal             `gorm:"type:decimal(18,2);not null"`
	PurchasePrice   decimal.Decimal             `gorm:"type:decimal(18,2);not null"`
	DownPayment     decimal.Decimal             `gorm:"type:decimal(18,2);not null"`
	Months          int                         `gorm:"not null"`
	MonthlyRate     decimal.Decimal             `gorm:"type:decimal(6,4);not null"`
	CalculationType sales.ProfitCalculationType `gorm:"type:varchar(20);not null"`
	InitialProfit   decimal.Decimal             `gorm:"type:decimal(18,2);not null"`
	TotalProfit     decimal.Decimal             `gorm:"type:decimal(18,2);not null"`
	SaleDate        time.Time                   `gorm:"not null;index"`
	Status          sales.SaleStatus            `gorm:"type:varchar(20);not null;default:'active';index"`
	Installments    []InstallmentModel          `gorm:"foreignKey:SaleID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale entity.
func (m *SaleModel) ToDomain() *sales.Sale {
	installments := make([]sales.Installment, len(m.Installments))
	for i := range m.Installments {
		installments[i] = *m.Installments[i].ToDomain()
	}
	return &sales.Sale{
		BaseAggregateRoot: m.ToDomainAggregate(),
		CustomerID:        m.CustomerID,
		PhoneID:           m.PhoneID,
		AnnouncedPrice:    valueobject.NewToman(m.AnnouncedPrice),
		PurchasePrice:     valueobject.NewToman(m.PurchasePrice),
		DownPayment:       valueobject.NewToman(m.DownPayment),
		Months:            m.Months,
		MonthlyRate:       m.MonthlyRate,
		CalculationType:   m.CalculationType,
		InitialProfit:     valueobject.NewToman(m.InitialProfit),
		TotalProfit:       valueobject.NewToman(m.TotalProfit),
		SaleDate:          m.SaleDate,
		Status:            m.Status,
		Installments:      installments,
	}
}

// FromDomain populates the persistence model from a domain Sale entity.
func (m *SaleModel) FromDomain(s *sales.Sale) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.CustomerID = s.CustomerID
	m.PhoneID = s.PhoneID
	m.AnnouncedPrice = s.AnnouncedPrice.Amount()
	m.PurchasePrice = s.PurchasePrice.Amount()
	m.DownPayment = s.DownPayment.Amount()
	m.Months = s.Months
	m.MonthlyRate = s.MonthlyRate
	m.CalculationType = s.CalculationType
	m.InitialProfit = s.InitialProfit.Amount()
	m.TotalProfit = s.TotalProfit.Amount()
	m.SaleDate = s.SaleDate
	m.Status = s.Status
	m.Installments = make([]InstallmentModel, len(s.Installments))
	for i := range s.Installments {
		m.Installments[i].FromDomain(&s.Installments[i])
	}
}

// SaleModelFromDomain creates a new persistence model from a domain Sale.
func SaleModelFromDomain(s *sales.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// InstallmentModel is the persistence model for sale installments.
type InstallmentModel struct {
	BaseModel
	SaleID          uuid.UUID               `gorm:"type:uuid;not null;index"`
	Number          int                     `gorm:"not null"`
	PrincipalAmount decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	InterestAmount  decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	TotalAmount     decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	RemainingDebt   decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	DueDate         time.Time               `gorm:"not null;index"`
	Status          sales.InstallmentStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaidDate        *time.Time
}

// TableName returns the table name for GORM
func (InstallmentModel) TableName() string {
	return "installments"
}

// ToDomain converts the persistence model to a domain Installment entity.
func (m *InstallmentModel) ToDomain() *sales.Installment {
	return &sales.Installment{
		BaseEntity:      m.BaseModel.ToDomain(),
		SaleID:          m.SaleID,
		Number:          m.Number,
		PrincipalAmount: valueobject.NewToman(m.PrincipalAmount),
		InterestAmount:  valueobject.NewToman(m.InterestAmount),
		TotalAmount:     valueobject.NewToman(m.TotalAmount),
		RemainingDebt:   valueobject.NewToman(m.RemainingDebt),
		DueDate:         m.DueDate,
		Status:          m.Status,
		PaidDate:        m.PaidDate,
	}
}

// FromDomain populates the persistence model from a domain Installment entity.
func (m *InstallmentModel) FromDomain(i *sales.Installment) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.SaleID = i.SaleID
	m.Number = i.Number
	m.PrincipalAmount = i.PrincipalAmount.Amount()
	m.InterestAmount = i.InterestAmount.Amount()
	m.TotalAmount = i.TotalAmount.Amount()
	m.RemainingDebt = i.RemainingDebt.Amount()
	m.DueDate = i.DueDate
	m.Status = i.Status
	m.PaidDate = i.PaidDate
}
