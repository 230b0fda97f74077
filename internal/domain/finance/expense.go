package finance

import (
	"time"

	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/phoneshop/backend/internal/domain/shared/valueobject"
)

// ExpenseType classifies operating expenses for reporting
type ExpenseType string

const (
	ExpenseTypeRent     ExpenseType = "rent"
	ExpenseTypeSalary   ExpenseType = "salary"
	ExpenseTypeUtility  ExpenseType = "utility"
	ExpenseTypeSupplies ExpenseType = "supplies"
	ExpenseTypeOther    ExpenseType = "other"
)

// IsValid checks if the expense type is valid
func (e ExpenseType) IsValid() bool {
	switch e {
	case ExpenseTypeRent, ExpenseTypeSalary, ExpenseTypeUtility, ExpenseTypeSupplies, ExpenseTypeOther:
		return true
	}
	return false
}

// Expense is a standalone bookkeeping entry with no ledger coupling; it
// feeds the financial summary report only.
type Expense struct {
	shared.BaseAggregateRoot
	Type        ExpenseType
	Amount      valueobject.Money
	Description string
	SpentAt     time.Time
}

// NewExpense records an operating expense
func NewExpense(expenseType ExpenseType, amount valueobject.Money, description string, spentAt time.Time) (*Expense, error) {
	if !expenseType.IsValid() {
		return nil, shared.NewDomainError("INVALID_EXPENSE_TYPE", "Invalid expense type")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if spentAt.IsZero() {
		spentAt = time.Now()
	}

	return &Expense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              expenseType,
		Amount:            amount,
		Description:       description,
		SpentAt:           spentAt,
	}, nil
}

// UpdateExpenseCommand enumerates the fields that may be changed
type UpdateExpenseCommand struct {
	Type        *ExpenseType
	Amount      *valueobject.Money
	Description *string
	SpentAt     *time.Time
}

// UpdateDetails applies the requested field changes
func (e *Expense) UpdateDetails(cmd UpdateExpenseCommand) error {
	if cmd.Type != nil {
		if !cmd.Type.IsValid() {
			return shared.NewDomainError("INVALID_EXPENSE_TYPE", "Invalid expense type")
		}
		e.Type = *cmd.Type
	}
	if cmd.Amount != nil {
		if !cmd.Amount.IsPositive() {
			return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
		}
		e.Amount = *cmd.Amount
	}
	if cmd.Description != nil {
		e.Description = *cmd.Description
	}
	if cmd.SpentAt != nil && !cmd.SpentAt.IsZero() {
		e.SpentAt = *cmd.SpentAt
	}
	e.UpdatedAt = time.Now()
	return nil
}
