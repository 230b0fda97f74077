package customer

import (
	"regexp"
	"time"

	"github.com/phoneshop/backend/internal/domain/shared"
)

var phoneNumberPattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Customer represents a buyer who purchases phones on installment plans.
// National ID uniquely identifies a customer; a customer with active sales
// cannot be removed.
type Customer struct {
	shared.BaseAggregateRoot
	FullName    string
	NationalID  string
	PhoneNumber string
	Address     string
	Notes       string
}

// NewCustomer creates a customer after validating identity fields
func NewCustomer(fullName, nationalID, phoneNumber, address string) (*Customer, error) {
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if err := validateNationalID(nationalID); err != nil {
		return nil, err
	}
	if phoneNumber != "" && !phoneNumberPattern.MatchString(phoneNumber) {
		return nil, shared.NewDomainError("INVALID_PHONE_NUMBER", "Phone number must be 7 to 15 digits")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FullName:          fullName,
		NationalID:        nationalID,
		PhoneNumber:       phoneNumber,
		Address:           address,
	}, nil
}

func validateNationalID(id string) error {
	if len(id) != 10 {
		return shared.NewDomainError("INVALID_NATIONAL_ID", "National ID must be 10 digits")
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return shared.NewDomainError("INVALID_NATIONAL_ID", "National ID must contain only digits")
		}
	}
	return nil
}

// UpdateCustomerCommand enumerates the fields that may be changed
type UpdateCustomerCommand struct {
	FullName    *string
	PhoneNumber *string
	Address     *string
	Notes       *string
}

// UpdateDetails applies the requested field changes. The national ID is
// immutable once the customer exists.
func (c *Customer) UpdateDetails(cmd UpdateCustomerCommand) error {
	if cmd.FullName != nil {
		if *cmd.FullName == "" {
			return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
		}
		c.FullName = *cmd.FullName
	}
	if cmd.PhoneNumber != nil {
		if *cmd.PhoneNumber != "" && !phoneNumberPattern.MatchString(*cmd.PhoneNumber) {
			return shared.NewDomainError("INVALID_PHONE_NUMBER", "Phone number must be 7 to 15 digits")
		}
		c.PhoneNumber = *cmd.PhoneNumber
	}
	if cmd.Address != nil {
		c.Address = *cmd.Address
	}
	if cmd.Notes != nil {
		c.Notes = *cmd.Notes
	}
	c.UpdatedAt = time.Now()
	return nil
}
