package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/partner"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPartnerRepository is a mock implementation of PartnerRepository
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindAll(ctx context.Context, filter shared.Filter, includeDeleted bool) ([]partner.Partner, int64, error) {
	args := m.Called(ctx, filter, includeDeleted)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]partner.Partner), args.Get(1).(int64), args.Error(2)
}

func (m *MockPartnerRepository) FindAllActiveForUpdate(ctx context.Context) ([]*partner.Partner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) Save(ctx context.Context, p *partner.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) SaveAll(ctx context.Context, partners []*partner.Partner) error {
	args := m.Called(ctx, partners)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of PartnerTransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Append(ctx context.Context, tx *partner.PartnerTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) AppendAll(ctx context.Context, txs []*partner.PartnerTransaction) error {
	args := m.Called(ctx, txs)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.PartnerTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.PartnerTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByPartnerID(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) ([]partner.PartnerTransaction, int64, error) {
	args := m.Called(ctx, partnerID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]partner.PartnerTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.PartnerTransaction, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]partner.PartnerTransaction), args.Get(1).(int64), args.Error(2)
}

// MockHistoryRepository is a mock implementation of PartnerHistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, h *partner.PartnerHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHistoryRepository) AppendAll(ctx context.Context, hs []*partner.PartnerHistory) error {
	args := m.Called(ctx, hs)
	return args.Error(0)
}

func (m *MockHistoryRepository) FindByPartnerID(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) ([]partner.PartnerHistory, int64, error) {
	args := m.Called(ctx, partnerID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]partner.PartnerHistory), args.Get(1).(int64), args.Error(2)
}

// passthroughTxManager runs the callback directly; repository mocks verify
// what would have been written inside the transaction
type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(t *testing.T) (*PartnerService, *MockPartnerRepository, *MockTransactionRepository, *MockHistoryRepository) {
	t.Helper()
	partnerRepo := new(MockPartnerRepository)
	txRepo := new(MockTransactionRepository)
	historyRepo := new(MockHistoryRepository)
	svc := NewPartnerService(partnerRepo, txRepo, historyRepo, passthroughTxManager{})
	return svc, partnerRepo, txRepo, historyRepo
}

func newStoredPartner(t *testing.T, capital int64) *partner.Partner {
	t.Helper()
	p, err := partner.NewPartner("Reza Ahmadi", decimal.NewFromInt(capital), decimal.NewFromInt(50))
	require.NoError(t, err)
	return p
}

func TestCreatePartner(t *testing.T) {
	t.Run("saves the partner with a created snapshot", func(t *testing.T) {
		svc, partnerRepo, _, historyRepo := newTestService(t)
		partnerRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Partner")).Return(nil)
		historyRepo.On("Append", mock.Anything, mock.MatchedBy(func(h *partner.PartnerHistory) bool {
			return h.Action == partner.HistoryActionCreated
		})).Return(nil)

		resp, err := svc.CreatePartner(context.Background(), CreatePartnerRequest{
			Name:    "Reza Ahmadi",
			Capital: decimal.NewFromInt(1000),
			Share:   decimal.NewFromInt(50),
		})

		require.NoError(t, err)
		assert.True(t, resp.AvailableCapital.Equal(decimal.NewFromInt(1000)))
		partnerRepo.AssertExpectations(t)
		historyRepo.AssertExpectations(t)
	})

	t.Run("invalid input writes nothing", func(t *testing.T) {
		svc, partnerRepo, _, historyRepo := newTestService(t)

		_, err := svc.CreatePartner(context.Background(), CreatePartnerRequest{
			Name:    "",
			Capital: decimal.NewFromInt(1000),
		})

		assert.Error(t, err)
		partnerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		historyRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestAdjustBalance(t *testing.T) {
	t.Run("capital withdraw writes balance, ledger entry and snapshot", func(t *testing.T) {
		svc, partnerRepo, txRepo, historyRepo := newTestService(t)
		p := newStoredPartner(t, 1000)
		partnerRepo.On("FindByIDForUpdate", mock.Anything, p.ID).Return(p, nil)
		partnerRepo.On("Save", mock.Anything, p).Return(nil)
		txRepo.On("Append", mock.Anything, mock.MatchedBy(func(tx *partner.PartnerTransaction) bool {
			return tx.Type == partner.TransactionTypeCapitalWithdraw && tx.Amount.Equal(decimal.NewFromInt(400))
		})).Return(nil)
		historyRepo.On("Append", mock.Anything, mock.MatchedBy(func(h *partner.PartnerHistory) bool {
			return h.Action == partner.HistoryActionUpdated && h.AvailableCapital.Equal(decimal.NewFromInt(600))
		})).Return(nil)

		resp, err := svc.AdjustBalance(context.Background(), p.ID, AdjustBalanceRequest{
			Type:   "capital_withdraw",
			Amount: decimal.NewFromInt(400),
		})

		require.NoError(t, err)
		assert.True(t, resp.Partner.AvailableCapital.Equal(decimal.NewFromInt(600)))
		assert.Equal(t, "capital_withdraw", resp.Transaction.Type)
		partnerRepo.AssertExpectations(t)
		txRepo.AssertExpectations(t)
		historyRepo.AssertExpectations(t)
	})

	t.Run("insufficient funds leaves ledger and history untouched", func(t *testing.T) {
		svc, partnerRepo, txRepo, historyRepo := newTestService(t)
		p := newStoredPartner(t, 100)
		partnerRepo.On("FindByIDForUpdate", mock.Anything, p.ID).Return(p, nil)

		_, err := svc.AdjustBalance(context.Background(), p.ID, AdjustBalanceRequest{
			Type:   "capital_withdraw",
			Amount: decimal.NewFromInt(200),
		})

		assert.ErrorIs(t, err, shared.ErrInsufficientFunds)
		assert.True(t, p.AvailableCapital.Equal(decimal.NewFromInt(100)))
		partnerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		txRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		historyRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("profit_to_capital requires a profit type", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.AdjustBalance(context.Background(), uuid.New(), AdjustBalanceRequest{
			Type:   "profit_to_capital",
			Amount: decimal.NewFromInt(10),
		})

		assert.Error(t, err)
	})

	t.Run("profit_to_capital tags the ledger entry with the pool", func(t *testing.T) {
		svc, partnerRepo, txRepo, historyRepo := newTestService(t)
		p := newStoredPartner(t, 1000)
		require.NoError(t, p.AccrueInitialProfit(decimal.NewFromInt(300)))
		partnerRepo.On("FindByIDForUpdate", mock.Anything, p.ID).Return(p, nil)
		partnerRepo.On("Save", mock.Anything, p).Return(nil)
		txRepo.On("Append", mock.Anything, mock.MatchedBy(func(tx *partner.PartnerTransaction) bool {
			return tx.Type == partner.TransactionTypeProfitToCapital &&
				tx.ProfitType != nil && *tx.ProfitType == partner.ProfitTypeInitial
		})).Return(nil)
		historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		pt := "initial"
		resp, err := svc.AdjustBalance(context.Background(), p.ID, AdjustBalanceRequest{
			Type:       "profit_to_capital",
			Amount:     decimal.NewFromInt(200),
			ProfitType: &pt,
		})

		require.NoError(t, err)
		assert.True(t, resp.Partner.Capital.Equal(decimal.NewFromInt(1200)))
		txRepo.AssertExpectations(t)
	})

	t.Run("interleaved withdrawals cannot overdraw the balance", func(t *testing.T) {
		// Two callers read the same 100 balance and both try to take 60.
		// Optimistic versioning fails the second write, and the retry sees
		// the fresh balance and is refused, so exactly one withdrawal lands.
		svc, partnerRepo, txRepo, historyRepo := newTestService(t)
		seed := newStoredPartner(t, 100)
		first := *seed
		stale := *seed
		req := AdjustBalanceRequest{Type: "capital_withdraw", Amount: decimal.NewFromInt(60)}

		partnerRepo.On("FindByIDForUpdate", mock.Anything, seed.ID).Return(&first, nil).Once()
		partnerRepo.On("Save", mock.Anything, &first).Return(nil).Once()
		txRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
		historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.AdjustBalance(context.Background(), seed.ID, req)
		require.NoError(t, err)
		assert.True(t, resp.Partner.AvailableCapital.Equal(decimal.NewFromInt(40)))

		partnerRepo.On("FindByIDForUpdate", mock.Anything, seed.ID).Return(&stale, nil).Once()
		partnerRepo.On("Save", mock.Anything, &stale).Return(shared.ErrConcurrencyConflict).Once()

		_, err = svc.AdjustBalance(context.Background(), seed.ID, req)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		// the retry reloads the committed state and is refused outright
		partnerRepo.On("FindByIDForUpdate", mock.Anything, seed.ID).Return(&first, nil).Once()

		_, err = svc.AdjustBalance(context.Background(), seed.ID, req)
		assert.ErrorIs(t, err, shared.ErrInsufficientFunds)
		assert.True(t, first.AvailableCapital.Equal(decimal.NewFromInt(40)))
		partnerRepo.AssertExpectations(t)
	})

	t.Run("unknown transaction type is rejected before any read", func(t *testing.T) {
		svc, partnerRepo, _, _ := newTestService(t)

		_, err := svc.AdjustBalance(context.Background(), uuid.New(), AdjustBalanceRequest{
			Type:   "balance_rewrite",
			Amount: decimal.NewFromInt(10),
		})

		assert.Error(t, err)
		partnerRepo.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	})
}

func TestDeletePartner(t *testing.T) {
	t.Run("soft deletes with a deleted snapshot", func(t *testing.T) {
		svc, partnerRepo, _, historyRepo := newTestService(t)
		p := newStoredPartner(t, 1000)
		partnerRepo.On("FindByIDForUpdate", mock.Anything, p.ID).Return(p, nil)
		partnerRepo.On("Save", mock.Anything, p).Return(nil)
		historyRepo.On("Append", mock.Anything, mock.MatchedBy(func(h *partner.PartnerHistory) bool {
			return h.Action == partner.HistoryActionDeleted
		})).Return(nil)

		err := svc.DeletePartner(context.Background(), p.ID)

		require.NoError(t, err)
		assert.True(t, p.IsDeleted())
		historyRepo.AssertExpectations(t)
	})

	t.Run("missing partner is not found", func(t *testing.T) {
		svc, partnerRepo, _, _ := newTestService(t)
		id := uuid.New()
		partnerRepo.On("FindByIDForUpdate", mock.Anything, id).Return(nil, shared.ErrNotFound)

		err := svc.DeletePartner(context.Background(), id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestListTransactions(t *testing.T) {
	svc, partnerRepo, txRepo, _ := newTestService(t)
	p := newStoredPartner(t, 1000)
	entry, err := partner.NewPartnerTransaction(p.ID, partner.TransactionTypeCapitalAdd, decimal.NewFromInt(100), "first deposit")
	require.NoError(t, err)
	partnerRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	txRepo.On("FindByPartnerID", mock.Anything, p.ID, mock.Anything).
		Return([]partner.PartnerTransaction{*entry}, int64(1), nil)

	page, err := svc.ListTransactions(context.Background(), p.ID, shared.DefaultFilter())

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "capital_add", page.Items[0].Type)
	assert.Equal(t, int64(1), page.Total)
}

func TestListAllTransactions(t *testing.T) {
	t.Run("narrows to the requested type", func(t *testing.T) {
		svc, _, txRepo, _ := newTestService(t)
		entry, err := partner.NewPartnerTransaction(uuid.New(), partner.TransactionTypeCapitalWithdraw, decimal.NewFromInt(50), "")
		require.NoError(t, err)
		txRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["type"] == "capital_withdraw"
		})).Return([]partner.PartnerTransaction{*entry}, int64(1), nil)

		page, err := svc.ListAllTransactions(context.Background(), "capital_withdraw", shared.DefaultFilter())

		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "capital_withdraw", page.Items[0].Type)
	})

	t.Run("rejects an unknown type before querying", func(t *testing.T) {
		svc, _, txRepo, _ := newTestService(t)

		_, err := svc.ListAllTransactions(context.Background(), "balance_rewrite", shared.DefaultFilter())

		assert.Error(t, err)
		txRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})
}

func TestReverseTransaction(t *testing.T) {
	t.Run("capital_add reverses as a withdrawal", func(t *testing.T) {
		svc, partnerRepo, txRepo, historyRepo := newTestService(t)
		p := newStoredPartner(t, 1000)
		original, err := partner.NewPartnerTransaction(p.ID, partner.TransactionTypeCapitalAdd, decimal.NewFromInt(300), "deposit")
		require.NoError(t, err)
		txRepo.On("FindByID", mock.Anything, original.ID).Return(original, nil)
		partnerRepo.On("FindByIDForUpdate", mock.Anything, p.ID).Return(p, nil)
		partnerRepo.On("Save", mock.Anything, p).Return(nil)
		txRepo.On("Append", mock.Anything, mock.MatchedBy(func(tx *partner.PartnerTransaction) bool {
			return tx.Type == partner.TransactionTypeCapitalWithdraw &&
				tx.Amount.Equal(decimal.NewFromInt(300)) &&
				tx.Description == "Reversal of "+original.ID.String()
		})).Return(nil)
		historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.ReverseTransaction(context.Background(), original.ID, ReverseTransactionRequest{})

		require.NoError(t, err)
		assert.True(t, resp.Partner.AvailableCapital.Equal(decimal.NewFromInt(700)))
		txRepo.AssertExpectations(t)
	})

	t.Run("capital_withdraw reverses as a deposit", func(t *testing.T) {
		svc, partnerRepo, txRepo, historyRepo := newTestService(t)
		p := newStoredPartner(t, 1000)
		original, err := partner.NewPartnerTransaction(p.ID, partner.TransactionTypeCapitalWithdraw, decimal.NewFromInt(200), "withdrawal")
		require.NoError(t, err)
		txRepo.On("FindByID", mock.Anything, original.ID).Return(original, nil)
		partnerRepo.On("FindByIDForUpdate", mock.Anything, p.ID).Return(p, nil)
		partnerRepo.On("Save", mock.Anything, p).Return(nil)
		txRepo.On("Append", mock.Anything, mock.MatchedBy(func(tx *partner.PartnerTransaction) bool {
			return tx.Type == partner.TransactionTypeCapitalAdd && tx.Amount.Equal(decimal.NewFromInt(200))
		})).Return(nil)
		historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.ReverseTransaction(context.Background(), original.ID, ReverseTransactionRequest{Description: "posted twice"})

		require.NoError(t, err)
		assert.True(t, resp.Partner.AvailableCapital.Equal(decimal.NewFromInt(1200)))
		assert.Equal(t, "posted twice", resp.Transaction.Description)
	})

	t.Run("profit entries cannot be reversed", func(t *testing.T) {
		svc, partnerRepo, txRepo, _ := newTestService(t)
		original, err := partner.NewPartnerTransaction(uuid.New(), partner.TransactionTypeInitialProfitWithdraw, decimal.NewFromInt(50), "")
		require.NoError(t, err)
		txRepo.On("FindByID", mock.Anything, original.ID).Return(original, nil)

		_, err = svc.ReverseTransaction(context.Background(), original.ID, ReverseTransactionRequest{})

		assert.Error(t, err)
		partnerRepo.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
		txRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("missing entry is not found", func(t *testing.T) {
		svc, _, txRepo, _ := newTestService(t)
		id := uuid.New()
		txRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.ReverseTransaction(context.Background(), id, ReverseTransactionRequest{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
