package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPhone(t *testing.T) *Phone {
	t.Helper()
	phone, err := NewPhone("Samsung", "Galaxy S24", "353912101234567",
		decimal.NewFromInt(20_000_000), decimal.NewFromInt(25_000_000))
	require.NoError(t, err)
	return phone
}

func TestNewPhone(t *testing.T) {
	t.Run("creates phone successfully", func(t *testing.T) {
		phone := createTestPhone(t)

		assert.NotEqual(t, uuid.Nil, phone.ID)
		assert.Equal(t, PhoneStatusAvailable, phone.Status)
		assert.Equal(t, "353912101234567", phone.IMEI)
		assert.False(t, phone.PurchaseDate.IsZero())
		assert.Len(t, phone.GetDomainEvents(), 1)
		assert.Equal(t, EventTypePhoneRegistered, phone.GetDomainEvents()[0].EventType())
	})

	t.Run("fails with empty brand", func(t *testing.T) {
		phone, err := NewPhone("", "Galaxy S24", "353912101234567",
			decimal.NewFromInt(100), decimal.NewFromInt(120))

		require.Error(t, err)
		assert.Nil(t, phone)
		assert.Contains(t, err.Error(), "Brand")
	})

	t.Run("fails with non-numeric IMEI", func(t *testing.T) {
		_, err := NewPhone("Samsung", "Galaxy S24", "35391210123456X",
			decimal.NewFromInt(100), decimal.NewFromInt(120))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "digits")
	})

	t.Run("fails with short IMEI", func(t *testing.T) {
		_, err := NewPhone("Samsung", "Galaxy S24", "12345",
			decimal.NewFromInt(100), decimal.NewFromInt(120))

		require.Error(t, err)
	})

	t.Run("fails with non-positive purchase price", func(t *testing.T) {
		_, err := NewPhone("Samsung", "Galaxy S24", "353912101234567",
			decimal.Zero, decimal.NewFromInt(120))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Purchase price")
	})
}

func TestPhone_MarkSold(t *testing.T) {
	t.Run("marks available phone as sold", func(t *testing.T) {
		phone := createTestPhone(t)
		phone.ClearDomainEvents()

		err := phone.MarkSold()

		require.NoError(t, err)
		assert.Equal(t, PhoneStatusSold, phone.Status)
		assert.False(t, phone.IsAvailable())
		require.Len(t, phone.GetDomainEvents(), 1)
		assert.Equal(t, EventTypePhoneSold, phone.GetDomainEvents()[0].EventType())
	})

	t.Run("fails when already sold", func(t *testing.T) {
		phone := createTestPhone(t)
		require.NoError(t, phone.MarkSold())

		err := phone.MarkSold()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not available")
	})
}

func TestPhone_MarkAvailable(t *testing.T) {
	t.Run("returns sold phone to stock", func(t *testing.T) {
		phone := createTestPhone(t)
		require.NoError(t, phone.MarkSold())

		err := phone.MarkAvailable()

		require.NoError(t, err)
		assert.True(t, phone.IsAvailable())
	})

	t.Run("fails for available phone", func(t *testing.T) {
		phone := createTestPhone(t)

		err := phone.MarkAvailable()

		require.Error(t, err)
	})
}

func TestPhone_UpdateDetails(t *testing.T) {
	t.Run("updates provided fields only", func(t *testing.T) {
		phone := createTestPhone(t)
		newModel := "Galaxy S24 Ultra"
		newPrice := decimal.NewFromInt(30_000_000)

		err := phone.UpdateDetails(UpdatePhoneCommand{
			Model:        &newModel,
			SellingPrice: &newPrice,
		})

		require.NoError(t, err)
		assert.Equal(t, "Galaxy S24 Ultra", phone.Model)
		assert.True(t, phone.SellingPrice.Equal(newPrice))
		assert.Equal(t, "Samsung", phone.Brand)
	})

	t.Run("rejects invalid IMEI", func(t *testing.T) {
		phone := createTestPhone(t)
		bad := "nope"

		err := phone.UpdateDetails(UpdatePhoneCommand{IMEI: &bad})

		require.Error(t, err)
		assert.Equal(t, "353912101234567", phone.IMEI)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		phone := createTestPhone(t)
		bad := decimal.NewFromInt(-5)

		err := phone.UpdateDetails(UpdatePhoneCommand{PurchasePrice: &bad})

		require.Error(t, err)
	})
}
