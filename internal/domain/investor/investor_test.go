package investor

import (
	"testing"
	"time"

	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInvestor(t *testing.T, amount int64) *Investor {
	t.Helper()
	i, err := NewInvestor("Kaveh Moradi", "+989351112233", "1234567890",
		decimal.NewFromInt(amount), decimal.NewFromInt(3), time.Now())
	require.NoError(t, err)
	return i
}

func TestNewInvestor(t *testing.T) {
	t.Run("creates active investor with zero profit", func(t *testing.T) {
		i := createTestInvestor(t, 5_000_000)

		assert.Equal(t, InvestorStatusActive, i.Status)
		assert.True(t, i.InvestmentAmount.Equal(decimal.NewFromInt(5_000_000)))
		assert.True(t, i.TotalProfit.IsZero())
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewInvestor("Kaveh", "", "", decimal.NewFromInt(-1), decimal.NewFromInt(3), time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects rate above 100", func(t *testing.T) {
		_, err := NewInvestor("Kaveh", "", "", decimal.NewFromInt(100), decimal.NewFromInt(101), time.Now())
		assert.Error(t, err)
	})
}

func TestInvestorAdjustCapital(t *testing.T) {
	t.Run("positive amount is a deposit", func(t *testing.T) {
		i := createTestInvestor(t, 1000)

		txType, err := i.AdjustCapital(decimal.NewFromInt(500))
		require.NoError(t, err)

		assert.Equal(t, TransactionTypeInvestmentAdd, txType)
		assert.True(t, i.InvestmentAmount.Equal(decimal.NewFromInt(1500)))
	})

	t.Run("negative amount is a withdrawal", func(t *testing.T) {
		i := createTestInvestor(t, 1000)

		txType, err := i.AdjustCapital(decimal.NewFromInt(-400))
		require.NoError(t, err)

		assert.Equal(t, TransactionTypeInvestmentWithdraw, txType)
		assert.True(t, i.InvestmentAmount.Equal(decimal.NewFromInt(600)))
	})

	t.Run("withdrawal below zero fails and leaves balance unchanged", func(t *testing.T) {
		i := createTestInvestor(t, 1000)

		_, err := i.AdjustCapital(decimal.NewFromInt(-1001))

		assert.ErrorIs(t, err, shared.ErrInsufficientFunds)
		assert.True(t, i.InvestmentAmount.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		i := createTestInvestor(t, 1000)

		_, err := i.AdjustCapital(decimal.Zero)

		assert.Error(t, err)
	})
}

func TestInvestorProfit(t *testing.T) {
	t.Run("profit payment accrues without touching the balance", func(t *testing.T) {
		i := createTestInvestor(t, 1000)

		require.NoError(t, i.RecordProfitPayment(decimal.NewFromInt(30)))
		require.NoError(t, i.RecordProfitPayment(decimal.NewFromInt(30)))

		assert.True(t, i.TotalProfit.Equal(decimal.NewFromInt(60)))
		assert.True(t, i.InvestmentAmount.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("monthly profit due follows rate and balance", func(t *testing.T) {
		i := createTestInvestor(t, 1_000_000)

		assert.True(t, i.MonthlyProfitDue().Equal(decimal.NewFromInt(30_000)))
	})
}

func TestInvestorDeactivate(t *testing.T) {
	i := createTestInvestor(t, 1000)

	require.NoError(t, i.Deactivate())

	assert.False(t, i.IsActive())
	_, err := i.AdjustCapital(decimal.NewFromInt(100))
	assert.Error(t, err)
	assert.Error(t, i.Deactivate())
}
