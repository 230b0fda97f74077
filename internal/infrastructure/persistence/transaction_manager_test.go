package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionManager_Do(t *testing.T) {
	t.Run("commits when the unit of work succeeds", func(t *testing.T) {
		db := setupPartnerTestDB(t)
		manager := &GormTransactionManager{db: db}
		repo := NewGormPartnerRepository(db)

		p := createTestPartner(t, "Reza", 5000)
		err := manager.Do(context.Background(), func(ctx context.Context) error {
			return repo.Save(ctx, p)
		})
		require.NoError(t, err)

		found, err := repo.FindByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Reza", found.Name)
	})

	t.Run("rolls back every write when the unit of work fails", func(t *testing.T) {
		db := setupPartnerTestDB(t)
		manager := &GormTransactionManager{db: db}
		repo := NewGormPartnerRepository(db)

		p := createTestPartner(t, "Reza", 5000)
		failure := errors.New("allocation failed")
		err := manager.Do(context.Background(), func(ctx context.Context) error {
			if err := repo.Save(ctx, p); err != nil {
				return err
			}
			return failure
		})
		assert.ErrorIs(t, err, failure)

		_, err = repo.FindByID(context.Background(), p.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("nested calls join the enclosing transaction", func(t *testing.T) {
		db := setupPartnerTestDB(t)
		manager := &GormTransactionManager{db: db}
		repo := NewGormPartnerRepository(db)

		p := createTestPartner(t, "Reza", 5000)
		failure := errors.New("outer failure")
		err := manager.Do(context.Background(), func(outer context.Context) error {
			if err := manager.Do(outer, func(inner context.Context) error {
				return repo.Save(inner, p)
			}); err != nil {
				return err
			}
			// inner writes must roll back with the outer transaction
			return failure
		})
		assert.ErrorIs(t, err, failure)

		_, err = repo.FindByID(context.Background(), p.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("writes inside the transaction see each other", func(t *testing.T) {
		db := setupPartnerTestDB(t)
		manager := &GormTransactionManager{db: db}
		repo := NewGormPartnerRepository(db)

		p := createTestPartner(t, "Reza", 5000)
		err := manager.Do(context.Background(), func(ctx context.Context) error {
			if err := repo.Save(ctx, p); err != nil {
				return err
			}
			loaded, err := repo.FindByID(ctx, p.ID)
			if err != nil {
				return err
			}
			if err := loaded.AddCapital(decimal.NewFromInt(1000)); err != nil {
				return err
			}
			return repo.Save(ctx, loaded)
		})
		require.NoError(t, err)

		found, err := repo.FindByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.True(t, found.Capital.Equal(decimal.NewFromInt(6000)))
	})
}
