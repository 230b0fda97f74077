package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/partner"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PartnerService provides application-level partner ledger operations.
// Every balance mutation runs inside one transaction that locks the
// partner row, writes the new balance, appends the ledger entry and
// appends a history snapshot. A failed precondition leaves no trace.
type PartnerService struct {
	partnerRepo partner.PartnerRepository
	txRepo      partner.PartnerTransactionRepository
	historyRepo partner.PartnerHistoryRepository
	txManager   shared.TransactionManager
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(
	partnerRepo partner.PartnerRepository,
	txRepo partner.PartnerTransactionRepository,
	historyRepo partner.PartnerHistoryRepository,
	txManager shared.TransactionManager,
) *PartnerService {
	return &PartnerService{
		partnerRepo: partnerRepo,
		txRepo:      txRepo,
		historyRepo: historyRepo,
		txManager:   txManager,
	}
}

// CreatePartnerRequest represents a request to register a partner
type CreatePartnerRequest struct {
	Name    string          `json:"name" binding:"required"`
	Capital decimal.Decimal `json:"capital" binding:"required"`
	Share   decimal.Decimal `json:"share"`
}

// UpdatePartnerRequest represents a request to update partner details
type UpdatePartnerRequest struct {
	Name  *string          `json:"name"`
	Share *decimal.Decimal `json:"share"`
}

// AdjustBalanceRequest represents a manual ledger adjustment
type AdjustBalanceRequest struct {
	Type        string          `json:"type" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	ProfitType  *string         `json:"profit_type"`
}

// PartnerResponse represents a partner in API responses
type PartnerResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Capital          decimal.Decimal `json:"capital"`
	AvailableCapital decimal.Decimal `json:"available_capital"`
	InitialProfit    decimal.Decimal `json:"initial_profit"`
	MonthlyProfit    decimal.Decimal `json:"monthly_profit"`
	Share            decimal.Decimal `json:"share"`
	Status           string          `json:"status"`
	DeletedAt        *time.Time      `json:"deleted_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// TransactionResponse represents a partner ledger entry in API responses
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	PartnerID   uuid.UUID       `json:"partner_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	ProfitType  *string         `json:"profit_type,omitempty"`
	Description string          `json:"description,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// HistoryResponse represents a partner balance snapshot in API responses
type HistoryResponse struct {
	ID               uuid.UUID       `json:"id"`
	PartnerID        uuid.UUID       `json:"partner_id"`
	Action           string          `json:"action"`
	Name             string          `json:"name"`
	Capital          decimal.Decimal `json:"capital"`
	AvailableCapital decimal.Decimal `json:"available_capital"`
	InitialProfit    decimal.Decimal `json:"initial_profit"`
	MonthlyProfit    decimal.Decimal `json:"monthly_profit"`
	Share            decimal.Decimal `json:"share"`
	RecordedAt       time.Time       `json:"recorded_at"`
}

// AdjustBalanceResponse bundles the updated balances with the new ledger entry
type AdjustBalanceResponse struct {
	Partner     PartnerResponse     `json:"partner"`
	Transaction TransactionResponse `json:"transaction"`
}

func toPartnerResponse(p *partner.Partner) *PartnerResponse {
	return &PartnerResponse{
		ID:               p.ID,
		Name:             p.Name,
		Capital:          p.Capital,
		AvailableCapital: p.AvailableCapital,
		InitialProfit:    p.InitialProfit,
		MonthlyProfit:    p.MonthlyProfit,
		Share:            p.Share,
		Status:           string(p.Status),
		DeletedAt:        p.DeletedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Version:          p.Version,
	}
}

func toTransactionResponse(t *partner.PartnerTransaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:          t.ID,
		PartnerID:   t.PartnerID,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Description: t.Description,
		OccurredAt:  t.OccurredAt,
	}
	if t.ProfitType != nil {
		pt := string(*t.ProfitType)
		resp.ProfitType = &pt
	}
	return resp
}

func toHistoryResponse(h *partner.PartnerHistory) *HistoryResponse {
	return &HistoryResponse{
		ID:               h.ID,
		PartnerID:        h.PartnerID,
		Action:           string(h.Action),
		Name:             h.Name,
		Capital:          h.Capital,
		AvailableCapital: h.AvailableCapital,
		InitialProfit:    h.InitialProfit,
		MonthlyProfit:    h.MonthlyProfit,
		Share:            h.Share,
		RecordedAt:       h.RecordedAt,
	}
}

// CreatePartner registers a new partner and records the created snapshot
func (s *PartnerService) CreatePartner(ctx context.Context, req CreatePartnerRequest) (*PartnerResponse, error) {
	p, err := partner.NewPartner(req.Name, req.Capital, req.Share)
	if err != nil {
		return nil, err
	}
	p.AddDomainEvent(partner.NewPartnerCreated(p))

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.partnerRepo.Save(ctx, p); err != nil {
			return err
		}
		return s.historyRepo.Append(ctx, partner.SnapshotPartner(p, partner.HistoryActionCreated))
	})
	if err != nil {
		return nil, err
	}
	return toPartnerResponse(p), nil
}

// GetPartnerByID gets a partner by ID
func (s *PartnerService) GetPartnerByID(ctx context.Context, id uuid.UUID) (*PartnerResponse, error) {
	p, err := s.partnerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPartnerResponse(p), nil
}

// ListPartners lists partners with pagination
func (s *PartnerService) ListPartners(ctx context.Context, filter shared.Filter, includeDeleted bool) (*shared.Paginated[PartnerResponse], error) {
	partners, total, err := s.partnerRepo.FindAll(ctx, filter, includeDeleted)
	if err != nil {
		return nil, err
	}

	items := make([]PartnerResponse, len(partners))
	for i := range partners {
		items[i] = *toPartnerResponse(&partners[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdatePartner updates a partner's descriptive fields and snapshots the change
func (s *PartnerService) UpdatePartner(ctx context.Context, id uuid.UUID, req UpdatePartnerRequest) (*PartnerResponse, error) {
	var resp *PartnerResponse
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		p, err := s.partnerRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := p.UpdateDetails(partner.UpdatePartnerCommand{Name: req.Name, Share: req.Share}); err != nil {
			return err
		}
		if err := s.partnerRepo.Save(ctx, p); err != nil {
			return err
		}
		if err := s.historyRepo.Append(ctx, partner.SnapshotPartner(p, partner.HistoryActionUpdated)); err != nil {
			return err
		}
		resp = toPartnerResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AdjustBalance applies one manual ledger adjustment atomically: it
// revalidates the precondition against the freshly locked balance, writes
// the new balance, appends the transaction and appends an updated snapshot.
func (s *PartnerService) AdjustBalance(ctx context.Context, id uuid.UUID, req AdjustBalanceRequest) (*AdjustBalanceResponse, error) {
	txType := partner.TransactionType(req.Type)
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
	}

	var profitType partner.ProfitType
	if txType == partner.TransactionTypeProfitToCapital {
		if req.ProfitType == nil {
			return nil, shared.NewDomainError("INVALID_PROFIT_TYPE", "profit_type is required for profit_to_capital")
		}
		profitType = partner.ProfitType(*req.ProfitType)
		if !profitType.IsValid() {
			return nil, shared.NewDomainError("INVALID_PROFIT_TYPE", "Invalid profit type")
		}
	}

	var resp *AdjustBalanceResponse
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		p, err := s.partnerRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		switch txType {
		case partner.TransactionTypeCapitalAdd:
			err = p.AddCapital(req.Amount)
		case partner.TransactionTypeCapitalWithdraw:
			err = p.WithdrawCapital(req.Amount)
		case partner.TransactionTypeInitialProfitWithdraw:
			err = p.WithdrawInitialProfit(req.Amount)
		case partner.TransactionTypeMonthlyProfitWithdraw:
			err = p.WithdrawMonthlyProfit(req.Amount)
		case partner.TransactionTypeProfitToCapital:
			err = p.ConvertProfitToCapital(req.Amount, profitType)
		}
		if err != nil {
			return err
		}

		ledgerEntry, err := partner.NewPartnerTransaction(p.ID, txType, req.Amount, req.Description)
		if err != nil {
			return err
		}
		if txType == partner.TransactionTypeProfitToCapital {
			ledgerEntry.WithProfitType(profitType)
		}
		p.AddDomainEvent(partner.NewPartnerBalanceAdjusted(p, txType, req.Amount))

		if err := s.partnerRepo.Save(ctx, p); err != nil {
			return err
		}
		if err := s.txRepo.Append(ctx, ledgerEntry); err != nil {
			return err
		}
		if err := s.historyRepo.Append(ctx, partner.SnapshotPartner(p, partner.HistoryActionUpdated)); err != nil {
			return err
		}

		resp = &AdjustBalanceResponse{
			Partner:     *toPartnerResponse(p),
			Transaction: *toTransactionResponse(ledgerEntry),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeletePartner soft-deletes a partner, retaining its ledger for audit
func (s *PartnerService) DeletePartner(ctx context.Context, id uuid.UUID) error {
	return s.txManager.Do(ctx, func(ctx context.Context) error {
		p, err := s.partnerRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := p.SoftDelete(); err != nil {
			return err
		}
		p.AddDomainEvent(partner.NewPartnerDeleted(p))
		if err := s.partnerRepo.Save(ctx, p); err != nil {
			return err
		}
		return s.historyRepo.Append(ctx, partner.SnapshotPartner(p, partner.HistoryActionDeleted))
	})
}

// ListTransactions lists a partner's ledger entries
func (s *PartnerService) ListTransactions(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) (*shared.Paginated[TransactionResponse], error) {
	if _, err := s.partnerRepo.FindByID(ctx, partnerID); err != nil {
		return nil, err
	}

	txs, total, err := s.txRepo.FindByPartnerID(ctx, partnerID, filter)
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

// ListAllTransactions lists ledger entries across every partner. The
// optional txType narrows to one transaction type.
func (s *PartnerService) ListAllTransactions(ctx context.Context, txType string, filter shared.Filter) (*shared.Paginated[TransactionResponse], error) {
	if txType != "" {
		if !partner.TransactionType(txType).IsValid() {
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

// ReverseTransactionRequest carries the optional note for a reversal entry
type ReverseTransactionRequest struct {
	Description string `json:"description"`
}

// ReverseTransaction compensates a capital ledger entry by appending the
// opposite entry, never by rewriting the original. Only capital_add and
// capital_withdraw can be reversed; the profit entry types have no
// opposite in the ledger vocabulary and need a manual adjustment instead.
func (s *PartnerService) ReverseTransaction(ctx context.Context, txID uuid.UUID, req ReverseTransactionRequest) (*AdjustBalanceResponse, error) {
	original, err := s.txRepo.FindByID(ctx, txID)
	if err != nil {
		return nil, err
	}

	var reverseType partner.TransactionType
	switch original.Type {
	case partner.TransactionTypeCapitalAdd:
		reverseType = partner.TransactionTypeCapitalWithdraw
	case partner.TransactionTypeCapitalWithdraw:
		reverseType = partner.TransactionTypeCapitalAdd
	default:
		return nil, shared.NewDomainError("INVALID_STATE",
			"Only capital entries can be reversed; compensate profit entries with a manual adjustment")
	}

	description := req.Description
	if description == "" {
		description = "Reversal of " + original.ID.String()
	}

	return s.AdjustBalance(ctx, original.PartnerID, AdjustBalanceRequest{
		Type:        string(reverseType),
		Amount:      original.Amount,
		Description: description,
	})
}

// ListHistory lists a partner's balance snapshots
func (s *PartnerService) ListHistory(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) (*shared.Paginated[HistoryResponse], error) {
	if _, err := s.partnerRepo.FindByID(ctx, partnerID); err != nil {
		return nil, err
	}

	hs, total, err := s.historyRepo.FindByPartnerID(ctx, partnerID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]HistoryResponse, len(hs))
	for i := range hs {
		items[i] = *toHistoryResponse(&hs[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
