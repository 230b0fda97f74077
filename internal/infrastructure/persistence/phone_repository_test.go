package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPhoneRepository creates a GormPhoneRepository with a mocked SQL connection
func newMockPhoneRepository(t *testing.T) (*GormPhoneRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPhoneRepository(gormDB), mock, mockDB
}

func TestGormPhoneRepository_FindByID(t *testing.T) {
	t.Run("finds existing phone", func(t *testing.T) {
		repo, mock, mockDB := newMockPhoneRepository(t)
		defer mockDB.Close()

		phoneID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "version", "brand", "model", "imei", "purchase_price", "selling_price", "status", "purchase_date"}).
			AddRow(phoneID, 1, "Samsung", "Galaxy A54", "356938035643809", decimal.NewFromInt(900), decimal.NewFromInt(1200), "available", time.Now())

		mock.ExpectQuery(`SELECT \* FROM "phones" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(phoneID, 1).
			WillReturnRows(rows)

		phone, err := repo.FindByID(context.Background(), phoneID)
		require.NoError(t, err)
		assert.Equal(t, phoneID, phone.ID)
		assert.Equal(t, "Samsung", phone.Brand)
		assert.True(t, phone.PurchasePrice.Equal(decimal.NewFromInt(900)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing phone", func(t *testing.T) {
		repo, mock, mockDB := newMockPhoneRepository(t)
		defer mockDB.Close()

		phoneID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "phones" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(phoneID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), phoneID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPhoneRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("locks the row with FOR UPDATE", func(t *testing.T) {
		repo, mock, mockDB := newMockPhoneRepository(t)
		defer mockDB.Close()

		phoneID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "version", "brand", "model", "imei", "status"}).
			AddRow(phoneID, 1, "Samsung", "Galaxy A54", "356938035643809", "available")

		mock.ExpectQuery(`SELECT \* FROM "phones" WHERE id = \$1 ORDER BY .* FOR UPDATE`).
			WithArgs(phoneID, 1).
			WillReturnRows(rows)

		phone, err := repo.FindByIDForUpdate(context.Background(), phoneID)
		require.NoError(t, err)
		assert.Equal(t, phoneID, phone.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPhoneRepository_Delete(t *testing.T) {
	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockPhoneRepository(t)
		defer mockDB.Close()

		phoneID := uuid.New()
		mock.ExpectExec(`DELETE FROM "phones" WHERE id = \$1`).
			WithArgs(phoneID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), phoneID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
