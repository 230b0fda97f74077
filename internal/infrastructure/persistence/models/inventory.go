package models

import (
	"time"

	"github.com/phoneshop/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// PhoneModel is the persistence model for the Phone aggregate root.
type PhoneModel struct {
	AggregateModel
	Brand         string                `gorm:"type:varchar(100);not null"`
	Model         string                `gorm:"type:varchar(100);not null"`
	IMEI          string                `gorm:"type:varchar(20);not null;uniqueIndex"`
	PurchasePrice decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	SellingPrice  decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Status        inventory.PhoneStatus `gorm:"type:varchar(20);not null;default:'available';index"`
	PurchaseDate  time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PhoneModel) TableName() string {
	return "phones"
}

// ToDomain converts the persistence model to a domain Phone entity.
func (m *PhoneModel) ToDomain() *inventory.Phone {
	return &inventory.Phone{
		BaseAggregateRoot: m.ToDomainAggregate(),
		Brand:             m.Brand,
		Model:             m.Model,
		IMEI:              m.IMEI,
		PurchasePrice:     m.PurchasePrice,
		SellingPrice:      m.SellingPrice,
		Status:            m.Status,
		PurchaseDate:      m.PurchaseDate,
	}
}

// FromDomain populates the persistence model from a domain Phone entity.
func (m *PhoneModel) FromDomain(p *inventory.Phone) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Brand = p.Brand
	m.Model = p.Model
	m.IMEI = p.IMEI
	m.PurchasePrice = p.PurchasePrice
	m.SellingPrice = p.SellingPrice
	m.Status = p.Status
	m.PurchaseDate = p.PurchaseDate
}

// PhoneModelFromDomain creates a new persistence model from a domain Phone.
func PhoneModelFromDomain(p *inventory.Phone) *PhoneModel {
	m := &PhoneModel{}
	m.FromDomain(p)
	return m
}
