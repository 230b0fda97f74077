package investor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/investor"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvestorService provides application-level investor ledger operations.
// Capital and profit mutations lock the investor row and append exactly
// one ledger entry atomically with the balance update.
type InvestorService struct {
	investorRepo investor.InvestorRepository
	txRepo       investor.InvestorTransactionRepository
	txManager    shared.TransactionManager
}

// NewInvestorService creates a new InvestorService
func NewInvestorService(
	investorRepo investor.InvestorRepository,
	txRepo investor.InvestorTransactionRepository,
	txManager shared.TransactionManager,
) *InvestorService {
	return &InvestorService{
		investorRepo: investorRepo,
		txRepo:       txRepo,
		txManager:    txManager,
	}
}

// CreateInvestorRequest represents a request to register an investor
type CreateInvestorRequest struct {
	Name             string          `json:"name" binding:"required"`
	PhoneNumber      string          `json:"phone_number"`
	NationalID       string          `json:"national_id"`
	InvestmentAmount decimal.Decimal `json:"investment_amount" binding:"required"`
	ProfitRate       decimal.Decimal `json:"profit_rate" binding:"required"`
	StartDate        *time.Time      `json:"start_date"`
}

// UpdateInvestorRequest represents a request to update investor details
type UpdateInvestorRequest struct {
	Name        *string          `json:"name"`
	PhoneNumber *string          `json:"phone_number"`
	ProfitRate  *decimal.Decimal `json:"profit_rate"`
}

// AdjustCapitalRequest carries a signed capital movement: positive for a
// deposit, negative for a withdrawal
type AdjustCapitalRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// RecordProfitPaymentRequest represents a profit payout to the investor
type RecordProfitPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// InvestorResponse represents an investor in API responses
type InvestorResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	PhoneNumber      string          `json:"phone_number,omitempty"`
	NationalID       string          `json:"national_id,omitempty"`
	InvestmentAmount decimal.Decimal `json:"investment_amount"`
	ProfitRate       decimal.Decimal `json:"profit_rate"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	MonthlyProfitDue decimal.Decimal `json:"monthly_profit_due"`
	StartDate        time.Time       `json:"start_date"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// TransactionResponse represents an investor ledger entry in API responses
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	InvestorID  uuid.UUID       `json:"investor_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// AdjustCapitalResponse bundles the updated investor with the ledger entry
type AdjustCapitalResponse struct {
	Investor    InvestorResponse    `json:"investor"`
	Transaction TransactionResponse `json:"transaction"`
}

func toInvestorResponse(i *investor.Investor) *InvestorResponse {
	return &InvestorResponse{
		ID:               i.ID,
		Name:             i.Name,
		PhoneNumber:      i.PhoneNumber,
		NationalID:       i.NationalID,
		InvestmentAmount: i.InvestmentAmount,
		ProfitRate:       i.ProfitRate,
		TotalProfit:      i.TotalProfit,
		MonthlyProfitDue: i.MonthlyProfitDue(),
		StartDate:        i.StartDate,
		Status:           string(i.Status),
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
		Version:          i.Version,
	}
}

func toTransactionResponse(t *investor.InvestorTransaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		InvestorID:  t.InvestorID,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Description: t.Description,
		OccurredAt:  t.OccurredAt,
	}
}

// CreateInvestor registers a new investor
func (s *InvestorService) CreateInvestor(ctx context.Context, req CreateInvestorRequest) (*InvestorResponse, error) {
	startDate := time.Time{}
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	i, err := investor.NewInvestor(req.Name, req.PhoneNumber, req.NationalID,
		req.InvestmentAmount, req.ProfitRate, startDate)
	if err != nil {
		return nil, err
	}

	if err := s.investorRepo.Save(ctx, i); err != nil {
		return nil, err
	}
	return toInvestorResponse(i), nil
}

// GetInvestorByID gets an investor by ID
func (s *InvestorService) GetInvestorByID(ctx context.Context, id uuid.UUID) (*InvestorResponse, error) {
	i, err := s.investorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvestorResponse(i), nil
}

// ListInvestors lists investors with pagination
func (s *InvestorService) ListInvestors(ctx context.Context, filter shared.Filter) (*shared.Paginated[InvestorResponse], error) {
	investors, total, err := s.investorRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]InvestorResponse, len(investors))
	for i := range investors {
		items[i] = *toInvestorResponse(&investors[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdateInvestor updates an investor's descriptive fields
func (s *InvestorService) UpdateInvestor(ctx context.Context, id uuid.UUID, req UpdateInvestorRequest) (*InvestorResponse, error) {
	i, err := s.investorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cmd := investor.UpdateInvestorCommand{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		ProfitRate:  req.ProfitRate,
	}
	if err := i.UpdateDetails(cmd); err != nil {
		return nil, err
	}
	if err := s.investorRepo.Save(ctx, i); err != nil {
		return nil, err
	}
	return toInvestorResponse(i), nil
}

// AdjustCapital applies a signed capital movement atomically with its
// ledger entry. Withdrawals may not take the balance below zero.
func (s *InvestorService) AdjustCapital(ctx context.Context, id uuid.UUID, req AdjustCapitalRequest) (*AdjustCapitalResponse, error) {
	var resp *AdjustCapitalResponse
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		i, err := s.investorRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		txType, err := i.AdjustCapital(req.Amount)
		if err != nil {
			return err
		}

		ledgerEntry, err := investor.NewInvestorTransaction(i.ID, txType, req.Amount.Abs(), req.Description)
		if err != nil {
			return err
		}

		if err := s.investorRepo.Save(ctx, i); err != nil {
			return err
		}
		if err := s.txRepo.Append(ctx, ledgerEntry); err != nil {
			return err
		}

		resp = &AdjustCapitalResponse{
			Investor:    *toInvestorResponse(i),
			Transaction: *toTransactionResponse(ledgerEntry),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// RecordProfitPayment accrues a profit payout with its ledger entry
func (s *InvestorService) RecordProfitPayment(ctx context.Context, id uuid.UUID, req RecordProfitPaymentRequest) (*AdjustCapitalResponse, error) {
	var resp *AdjustCapitalResponse
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		i, err := s.investorRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := i.RecordProfitPayment(req.Amount); err != nil {
			return err
		}

		ledgerEntry, err := investor.NewInvestorTransaction(i.ID, investor.TransactionTypeProfitPayment, req.Amount, req.Description)
		if err != nil {
			return err
		}

		if err := s.investorRepo.Save(ctx, i); err != nil {
			return err
		}
		if err := s.txRepo.Append(ctx, ledgerEntry); err != nil {
			return err
		}

		resp = &AdjustCapitalResponse{
			Investor:    *toInvestorResponse(i),
			Transaction: *toTransactionResponse(ledgerEntry),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeactivateInvestor marks an investor inactive, retaining the ledger
func (s *InvestorService) DeactivateInvestor(ctx context.Context, id uuid.UUID) error {
	return s.txManager.Do(ctx, func(ctx context.Context) error {
		i, err := s.investorRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := i.Deactivate(); err != nil {
			return err
		}
		return s.investorRepo.Save(ctx, i)
	})
}

// ListTransactions lists an investor's ledger entries
func (s *InvestorService) ListTransactions(ctx context.Context, investorID uuid.UUID, filter shared.Filter) (*shared.Paginated[TransactionResponse], error) {
	if _, err := s.investorRepo.FindByID(ctx, investorID); err != nil {
		return nil, err
	}

	txs, total, err := s.txRepo.FindByInvestorID(ctx, investorID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]TransactionResponse, len(txs))
	for i := range txs {
		items[i] = *toTransactionResponse(&txs[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListAllTransactions lists ledger entries across every investor. The
// optional txType narrows to one transaction type.
func (s *InvestorService) ListAllTransactions(ctx context.Context, txType string, filter shared.Filter) (*shared.Paginated[TransactionResponse], error) {
	if txType != "" {
		if !investor.TransactionType(txType).IsValid() {
			return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
		}
		if filter.Filters == nil {
			filter.Filters = make(map[string]any)
		}
		filter.Filters["type"] = txType
	}

	txs, total, err := s.txRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]TransactionResponse, len(txs))
	for i := range txs {
		items[i] = *toTransactionResponse(&txs[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
