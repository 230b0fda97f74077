package models

import (
	"github.com/phoneshop/backend/internal/domain/customer"
)

// CustomerModel is the persistence model for the Customer aggregate root.
type CustomerModel struct {
	AggregateModel
	FullName    string `gorm:"type:varchar(200);not null"`
	NationalID  string `gorm:"type:varchar(10);not null;uniqueIndex"`
	PhoneNumber string `gorm:"type:varchar(20);not null"`
	Address     string `gorm:"type:text"`
	Notes       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *customer.Customer {
	return &customer.Customer{
		BaseAggregateRoot: m.ToDomainAggregate(),
		FullName:          m.FullName,
		NationalID:        m.NationalID,
		PhoneNumber:       m.PhoneNumber,
		Address:           m.Address,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *customer.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.FullName = c.FullName
	m.NationalID = c.NationalID
	m.PhoneNumber = c.PhoneNumber
	m.Address = c.Address
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer.
func CustomerModelFromDomain(c *customer.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
