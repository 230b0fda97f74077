package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/finance"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/phoneshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseService provides application-level expense bookkeeping
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Type        string          `json:"type" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	SpentAt     *time.Time      `json:"spent_at"`
}

// UpdateExpenseRequest represents a request to update an expense
type UpdateExpenseRequest struct {
	Type        *string          `json:"type"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	SpentAt     *time.Time       `json:"spent_at"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	SpentAt     time.Time       `json:"spent_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

func toExpenseResponse(e *finance.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		Type:        string(e.Type),
		Amount:      e.Amount.Amount(),
		Description: e.Description,
		SpentAt:     e.SpentAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Version:     e.Version,
	}
}

// CreateExpense records an operating expense
func (s *ExpenseService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	spentAt := time.Time{}
	if req.SpentAt != nil {
		spentAt = *req.SpentAt
	}

	e, err := finance.NewExpense(finance.ExpenseType(req.Type), valueobject.NewToman(req.Amount), req.Description, spentAt)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// GetExpenseByID gets an expense by ID
func (s *ExpenseService) GetExpenseByID(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	e, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// ListExpenses lists expenses, optionally restricted to a period
func (s *ExpenseService) ListExpenses(ctx context.Context, from, to *time.Time, filter shared.Filter) (*shared.Paginated[ExpenseResponse], error) {
	var (
		expenses []finance.Expense
		total    int64
		err      error
	)
	if from != nil && to != nil {
		expenses, total, err = s.expenseRepo.FindByPeriod(ctx, *from, *to, filter)
	} else {
		expenses, total, err = s.expenseRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	items := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		items[i] = *toExpenseResponse(&expenses[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdateExpense updates an expense record
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	e, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cmd := finance.UpdateExpenseCommand{
		Description: req.Description,
		SpentAt:     req.SpentAt,
	}
	if req.Type != nil {
		t := finance.ExpenseType(*req.Type)
		cmd.Type = &t
	}
	if req.Amount != nil {
		m := valueobject.NewToman(*req.Amount)
		cmd.Amount = &m
	}

	if err := e.UpdateDetails(cmd); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// DeleteExpense removes an expense record
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if _, err := s.expenseRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}
