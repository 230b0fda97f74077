package investor

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/investor"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInvestorRepository is a mock implementation of InvestorRepository
type MockInvestorRepository struct {
	mock.Mock
}

func (m *MockInvestorRepository) FindByID(ctx context.Context, id uuid.UUID) (*investor.Investor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*investor.Investor), args.Error(1)
}

func (m *MockInvestorRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*investor.Investor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*investor.Investor), args.Error(1)
}

func (m *MockInvestorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]investor.Investor, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]investor.Investor), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvestorRepository) Save(ctx context.Context, i *investor.Investor) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

// MockInvestorTransactionRepository is a mock implementation of InvestorTransactionRepository
type MockInvestorTransactionRepository struct {
	mock.Mock
}

func (m *MockInvestorTransactionRepository) Append(ctx context.Context, tx *investor.InvestorTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInvestorTransactionRepository) FindByInvestorID(ctx context.Context, investorID uuid.UUID, filter shared.Filter) ([]investor.InvestorTransaction, int64, error) {
	args := m.Called(ctx, investorID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]investor.InvestorTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvestorTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]investor.InvestorTransaction, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]investor.InvestorTransaction), args.Get(1).(int64), args.Error(2)
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(t *testing.T) (*InvestorService, *MockInvestorRepository, *MockInvestorTransactionRepository) {
	t.Helper()
	repo := new(MockInvestorRepository)
	txRepo := new(MockInvestorTransactionRepository)
	return NewInvestorService(repo, txRepo, passthroughTxManager{}), repo, txRepo
}

func newStoredInvestor(t *testing.T, amount int64) *investor.Investor {
	t.Helper()
	i, err := investor.NewInvestor("Kaveh Moradi", "+989351112233", "1234567890",
		decimal.NewFromInt(amount), decimal.NewFromInt(3), time.Now())
	require.NoError(t, err)
	return i
}

func TestAdjustCapital(t *testing.T) {
	t.Run("deposit writes the balance with an investment_add entry", func(t *testing.T) {
		svc, repo, txRepo := newTestService(t)
		inv := newStoredInvestor(t, 1000)
		repo.On("FindByIDForUpdate", mock.Anything, inv.ID).Return(inv, nil)
		repo.On("Save", mock.Anything, inv).Return(nil)
		txRepo.On("Append", mock.Anything, mock.MatchedBy(func(tx *investor.InvestorTransaction) bool {
			return tx.Type == investor.TransactionTypeInvestmentAdd && tx.Amount.Equal(decimal.NewFromInt(500))
		})).Return(nil)

		resp, err := svc.AdjustCapital(context.Background(), inv.ID, AdjustCapitalRequest{
			Amount: decimal.NewFromInt(500),
		})

		require.NoError(t, err)
		assert.True(t, resp.Investor.InvestmentAmount.Equal(decimal.NewFromInt(1500)))
		txRepo.AssertExpectations(t)
	})

	t.Run("withdrawal records a positive amount with withdraw type", func(t *testing.T) {
		svc, repo, txRepo := newTestService(t)
		inv := newStoredInvestor(t, 1000)
		repo.On("FindByIDForUpdate", mock.Anything, inv.ID).Return(inv, nil)
		repo.On("Save", mock.Anything, inv).Return(nil)
		txRepo.On("Append", mock.Anything, mock.MatchedBy(func(tx *investor.InvestorTransaction) bool {
			return tx.Type == investor.TransactionTypeInvestmentWithdraw && tx.Amount.Equal(decimal.NewFromInt(400))
		})).Return(nil)

		resp, err := svc.AdjustCapital(context.Background(), inv.ID, AdjustCapitalRequest{
			Amount: decimal.NewFromInt(-400),
		})

		require.NoError(t, err)
		assert.True(t, resp.Investor.InvestmentAmount.Equal(decimal.NewFromInt(600)))
	})

	t.Run("overdraw aborts without writes", func(t *testing.T) {
		svc, repo, txRepo := newTestService(t)
		inv := newStoredInvestor(t, 300)
		repo.On("FindByIDForUpdate", mock.Anything, inv.ID).Return(inv, nil)

		_, err := svc.AdjustCapital(context.Background(), inv.ID, AdjustCapitalRequest{
			Amount: decimal.NewFromInt(-301),
		})

		assert.ErrorIs(t, err, shared.ErrInsufficientFunds)
		assert.True(t, inv.InvestmentAmount.Equal(decimal.NewFromInt(300)))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		txRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestRecordProfitPayment(t *testing.T) {
	t.Run("accrues profit with a profit_payment entry", func(t *testing.T) {
		svc, repo, txRepo := newTestService(t)
		inv := newStoredInvestor(t, 1000)
		repo.On("FindByIDForUpdate", mock.Anything, inv.ID).Return(inv, nil)
		repo.On("Save", mock.Anything, inv).Return(nil)
		txRepo.On("Append", mock.Anything, mock.MatchedBy(func(tx *investor.InvestorTransaction) bool {
			return tx.Type == investor.TransactionTypeProfitPayment
		})).Return(nil)

		resp, err := svc.RecordProfitPayment(context.Background(), inv.ID, RecordProfitPaymentRequest{
			Amount: decimal.NewFromInt(30),
		})

		require.NoError(t, err)
		assert.True(t, resp.Investor.TotalProfit.Equal(decimal.NewFromInt(30)))
		assert.True(t, resp.Investor.InvestmentAmount.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("non-positive amount writes nothing", func(t *testing.T) {
		svc, repo, txRepo := newTestService(t)
		inv := newStoredInvestor(t, 1000)
		repo.On("FindByIDForUpdate", mock.Anything, inv.ID).Return(inv, nil)

		_, err := svc.RecordProfitPayment(context.Background(), inv.ID, RecordProfitPaymentRequest{
			Amount: decimal.Zero,
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		txRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestListAllTransactions(t *testing.T) {
	t.Run("narrows to the requested type", func(t *testing.T) {
		svc, _, txRepo := newTestService(t)
		entry, err := investor.NewInvestorTransaction(uuid.New(), investor.TransactionTypeProfitPayment, decimal.NewFromInt(30), "")
		require.NoError(t, err)
		txRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["type"] == "profit_payment"
		})).Return([]investor.InvestorTransaction{*entry}, int64(1), nil)

		page, err := svc.ListAllTransactions(context.Background(), "profit_payment", shared.DefaultFilter())

		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "profit_payment", page.Items[0].Type)
	})

	t.Run("rejects an unknown type before querying", func(t *testing.T) {
		svc, _, txRepo := newTestService(t)

		_, err := svc.ListAllTransactions(context.Background(), "dividend", shared.DefaultFilter())

		assert.Error(t, err)
		txRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})
}
