package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/partner"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/phoneshop/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPartnerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.PartnerModel{},
		&models.PartnerTransactionModel{},
		&models.PartnerHistoryModel{},
	)
	require.NoError(t, err)

	return db
}

func createTestPartner(t *testing.T, name string, capital int64) *partner.Partner {
	t.Helper()
	p, err := partner.NewPartner(name, decimal.NewFromInt(capital), decimal.NewFromInt(50))
	require.NoError(t, err)
	return p
}

func TestGormPartnerRepository_SaveAndFind(t *testing.T) {
	t.Run("round trips a new partner", func(t *testing.T) {
		db := setupPartnerTestDB(t)
		repo := NewGormPartnerRepository(db)
		ctx := context.Background()

		p := createTestPartner(t, "Reza", 5000)
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Reza", found.Name)
		assert.True(t, found.Capital.Equal(decimal.NewFromInt(5000)))
		assert.True(t, found.AvailableCapital.Equal(decimal.NewFromInt(5000)))
		assert.Equal(t, partner.PartnerStatusActive, found.Status)
		assert.Equal(t, 1, found.Version)
	})

	t.Run("persists mutations and bumps the version", func(t *testing.T) {
		db := setupPartnerTestDB(t)
		repo := NewGormPartnerRepository(db)
		ctx := context.Background()

		p := createTestPartner(t, "Reza", 5000)
		require.NoError(t, repo.Save(ctx, p))

		require.NoError(t, p.AddCapital(decimal.NewFromInt(1000)))
		require.NoError(t, repo.Save(ctx, p))
		assert.Equal(t, 2, p.Version)

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, found.Capital.Equal(decimal.NewFromInt(6000)))
		assert.Equal(t, 2, found.Version)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		db := setupPartnerTestDB(t)
		repo := NewGormPartnerRepository(db)

		_, err := repo.FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormPartnerRepository_OptimisticConflict(t *testing.T) {
	t.Run("rejects a save based on a stale version", func(t *testing.T) {
		db := setupPartnerTestDB(t)
		repo := NewGormPartnerRepository(db)
		ctx := context.Background()

		p := createTestPartner(t, "Reza", 5000)
		require.NoError(t, repo.Save(ctx, p))

		first, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)

		require.NoError(t, first.WithdrawCapital(decimal.NewFromInt(3000)))
		require.NoError(t, repo.Save(ctx, first))

		require.NoError(t, second.WithdrawCapital(decimal.NewFromInt(3000)))
		err = repo.Save(ctx, second)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		// the first writer's state is what persisted
		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, found.Capital.Equal(decimal.NewFromInt(2000)))
	})
}

func TestGormPartnerRepository_FindAll(t *testing.T) {
	t.Run("excludes deleted partners by default", func(t *testing.T) {
		db := setupPartnerTestDB(t)
		repo := NewGormPartnerRepository(db)
		ctx := context.Background()

		active := createTestPartner(t, "Active", 1000)
		require.NoError(t, repo.Save(ctx, active))

		deleted := createTestPartner(t, "Gone", 0)
		require.NoError(t, deleted.SoftDelete())
		require.NoError(t, repo.Save(ctx, deleted))

		partners, total, err := repo.FindAll(ctx, shared.DefaultFilter(), false)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, partners, 1)
		assert.Equal(t, "Active", partners[0].Name)

		all, total, err := repo.FindAll(ctx, shared.DefaultFilter(), true)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, all, 2)
	})
}

func TestGormPartnerTransactionRepository(t *testing.T) {
	t.Run("appends and lists entries newest first", func(t *testing.T) {
		db := setupPartnerTestDB(t)
		repo := NewGormPartnerTransactionRepository(db)
		ctx := context.Background()
		partnerID := uuid.New()

		older, err := partner.NewPartnerTransaction(
			partnerID, partner.TransactionTypeCapitalAdd, decimal.NewFromInt(1000), "initial deposit")
		require.NoError(t, err)
		older.OccurredAt = time.Now().Add(-time.Hour)

		newer, err := partner.NewPartnerTransaction(
			partnerID, partner.TransactionTypeCapitalWithdraw, decimal.NewFromInt(200), "withdrawal")
		require.NoError(t, err)

		require.NoError(t, repo.AppendAll(ctx, []*partner.PartnerTransaction{older, newer}))

		entries, total, err := repo.FindByPartnerID(ctx, partnerID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, entries, 2)
		assert.Equal(t, partner.TransactionTypeCapitalWithdraw, entries[0].Type)
		assert.Equal(t, partner.TransactionTypeCapitalAdd, entries[1].Type)
	})

	t.Run("keeps the profit type on conversion entries", func(t *testing.T) {
		db := setupPartnerTestDB(t)
		repo := NewGormPartnerTransactionRepository(db)
		ctx := context.Background()
		partnerID := uuid.New()

		tx, err := partner.NewPartnerTransaction(
			partnerID, partner.TransactionTypeProfitToCapital, decimal.NewFromInt(500), "")
		require.NoError(t, err)
		tx.WithProfitType(partner.ProfitTypeInitial)

		require.NoError(t, repo.Append(ctx, tx))

		entries, _, err := repo.FindByPartnerID(ctx, partnerID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.NotNil(t, entries[0].ProfitType)
		assert.Equal(t, partner.ProfitTypeInitial, *entries[0].ProfitType)
	})
}

func TestGormPartnerHistoryRepository(t *testing.T) {
	t.Run("appends and lists snapshots", func(t *testing.T) {
		db := setupPartnerTestDB(t)
		repo := NewGormPartnerHistoryRepository(db)
		ctx := context.Background()

		p := createTestPartner(t, "Reza", 5000)
		snapshot := partner.SnapshotPartner(p, partner.HistoryActionCreated)
		require.NoError(t, repo.Append(ctx, snapshot))

		snapshots, total, err := repo.FindByPartnerID(ctx, p.ID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, snapshots, 1)
		assert.Equal(t, partner.HistoryActionCreated, snapshots[0].Action)
		assert.True(t, snapshots[0].Capital.Equal(decimal.NewFromInt(5000)))
	})
}
