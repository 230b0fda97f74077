package sales

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSale(t *testing.T, months int) *Sale {
	t.Helper()
	terms := ScheduleTerms{
		PurchasePrice:   valueobject.NewTomanFromFloat(1200),
		DownPayment:     valueobject.NewTomanFromFloat(300),
		Months:          months,
		MonthlyRate:     decimal.RequireFromString("0.04"),
		CalculationType: ProfitCalculationDeclining,
		SaleDate:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	s, err := NewSale(uuid.New(), uuid.New(),
		valueobject.NewTomanFromFloat(1200), valueobject.NewTomanFromFloat(1000), terms, NewScheduleGenerator())
	require.NoError(t, err)
	return s
}

func TestNewSale(t *testing.T) {
	t.Run("creates active sale with full schedule", func(t *testing.T) {
		s := createTestSale(t, 6)

		assert.Equal(t, SaleStatusActive, s.Status)
		require.Len(t, s.Installments, 6)
		for i, inst := range s.Installments {
			assert.Equal(t, i+1, inst.Number)
			assert.Equal(t, s.ID, inst.SaleID)
			assert.Equal(t, InstallmentStatusPending, inst.Status)
			assert.Nil(t, inst.PaidDate)
		}
	})

	t.Run("derives initial and total profit", func(t *testing.T) {
		s := createTestSale(t, 6)

		// margin over phone cost
		assert.True(t, s.InitialProfit.Equals(valueobject.NewTomanFromFloat(200)))

		interest := valueobject.ZeroToman()
		for _, inst := range s.Installments {
			interest = interest.MustAdd(inst.InterestAmount)
		}
		assert.True(t, s.TotalProfit.Equals(s.InitialProfit.MustAdd(interest)))
	})

	t.Run("fails without creating a sale when the schedule is invalid", func(t *testing.T) {
		terms := ScheduleTerms{
			PurchasePrice:   valueobject.NewTomanFromFloat(1000),
			DownPayment:     valueobject.NewTomanFromFloat(0),
			Months:          0,
			MonthlyRate:     decimal.RequireFromString("0.04"),
			CalculationType: ProfitCalculationDeclining,
			SaleDate:        time.Now(),
		}

		s, err := NewSale(uuid.New(), uuid.New(),
			valueobject.NewTomanFromFloat(1000), valueobject.NewTomanFromFloat(900), terms, NewScheduleGenerator())

		assert.Error(t, err)
		assert.Nil(t, s)
	})

	t.Run("requires customer and phone references", func(t *testing.T) {
		terms := ScheduleTerms{
			PurchasePrice:   valueobject.NewTomanFromFloat(1000),
			DownPayment:     valueobject.NewTomanFromFloat(100),
			Months:          3,
			MonthlyRate:     decimal.RequireFromString("0.04"),
			CalculationType: ProfitCalculationDeclining,
			SaleDate:        time.Now(),
		}

		_, err := NewSale(uuid.Nil, uuid.New(),
			valueobject.NewTomanFromFloat(1000), valueobject.NewTomanFromFloat(900), terms, NewScheduleGenerator())
		assert.Error(t, err)

		_, err = NewSale(uuid.New(), uuid.Nil,
			valueobject.NewTomanFromFloat(1000), valueobject.NewTomanFromFloat(900), terms, NewScheduleGenerator())
		assert.Error(t, err)
	})
}

func TestSalePayInstallment(t *testing.T) {
	t.Run("marks the installment paid", func(t *testing.T) {
		s := createTestSale(t, 3)
		paidAt := time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)

		inst, err := s.PayInstallment(s.Installments[0].ID, paidAt)
		require.NoError(t, err)

		assert.Equal(t, InstallmentStatusPaid, inst.Status)
		require.NotNil(t, inst.PaidDate)
		assert.Equal(t, paidAt, *inst.PaidDate)
		assert.Equal(t, SaleStatusActive, s.Status)
	})

	t.Run("paying the last installment completes the sale", func(t *testing.T) {
		s := createTestSale(t, 3)

		for i := range s.Installments {
			_, err := s.PayInstallment(s.Installments[i].ID, time.Now())
			require.NoError(t, err)
		}

		assert.Equal(t, SaleStatusCompleted, s.Status)
	})

	t.Run("rejects paying an installment twice", func(t *testing.T) {
		s := createTestSale(t, 3)
		_, err := s.PayInstallment(s.Installments[0].ID, time.Now())
		require.NoError(t, err)

		_, err = s.PayInstallment(s.Installments[0].ID, time.Now())

		assert.Error(t, err)
	})

	t.Run("rejects payment on a defaulted sale", func(t *testing.T) {
		s := createTestSale(t, 3)
		require.NoError(t, s.MarkDefaulted())

		_, err := s.PayInstallment(s.Installments[0].ID, time.Now())

		assert.Error(t, err)
	})

	t.Run("unknown installment is not found", func(t *testing.T) {
		s := createTestSale(t, 3)

		_, err := s.PayInstallment(uuid.New(), time.Now())

		assert.Error(t, err)
	})
}

func TestSaleStateMachine(t *testing.T) {
	t.Run("default is terminal", func(t *testing.T) {
		s := createTestSale(t, 3)

		require.NoError(t, s.MarkDefaulted())

		assert.Equal(t, SaleStatusDefaulted, s.Status)
		assert.True(t, s.Status.IsTerminal())
		assert.Error(t, s.MarkDefaulted())
	})

	t.Run("completed sale cannot be defaulted", func(t *testing.T) {
		s := createTestSale(t, 1)
		_, err := s.PayInstallment(s.Installments[0].ID, time.Now())
		require.NoError(t, err)
		require.Equal(t, SaleStatusCompleted, s.Status)

		assert.Error(t, s.MarkDefaulted())
	})
}

func TestSaleOutstandingPrincipal(t *testing.T) {
	s := createTestSale(t, 3)
	require.True(t, s.OutstandingPrincipal().Equals(valueobject.NewTomanFromFloat(900)))

	_, err := s.PayInstallment(s.Installments[0].ID, time.Now())
	require.NoError(t, err)

	assert.True(t, s.OutstandingPrincipal().Equals(
		valueobject.NewTomanFromFloat(900).MustSubtract(s.Installments[0].PrincipalAmount)))
}

func TestInstallmentOverdue(t *testing.T) {
	s := createTestSale(t, 2)
	inst := &s.Installments[0]
	due := inst.DueDate

	t.Run("predicate is strict about the due date", func(t *testing.T) {
		assert.False(t, inst.IsOverdue(due))
		assert.False(t, inst.IsOverdue(due.Add(-time.Hour)))
		assert.True(t, inst.IsOverdue(due.Add(time.Hour)))
	})

	t.Run("paid installments are never overdue", func(t *testing.T) {
		require.NoError(t, inst.MarkPaid(time.Now()))
		assert.False(t, inst.IsOverdue(due.Add(24*time.Hour)))
		assert.Error(t, inst.MarkOverdue(due.Add(24*time.Hour)))
	})

	t.Run("pending installment past due can be marked overdue", func(t *testing.T) {
		second := &s.Installments[1]
		require.NoError(t, second.MarkOverdue(second.DueDate.Add(time.Hour)))
		assert.Equal(t, InstallmentStatusOverdue, second.Status)
	})

	t.Run("marking overdue before the due date fails", func(t *testing.T) {
		other := createTestSale(t, 1)
		assert.Error(t, other.Installments[0].MarkOverdue(other.Installments[0].DueDate.Add(-time.Hour)))
	})
}
