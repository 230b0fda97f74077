package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCustomer(t *testing.T) *Customer {
	t.Helper()
	c, err := NewCustomer("Maryam Hosseini", "0012345678", "+989121234567", "Tehran, Valiasr St")
	require.NoError(t, err)
	return c
}

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with valid fields", func(t *testing.T) {
		c := createTestCustomer(t)

		assert.Equal(t, "Maryam Hosseini", c.FullName)
		assert.Equal(t, "0012345678", c.NationalID)
		assert.Equal(t, "+989121234567", c.PhoneNumber)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCustomer("", "0012345678", "", "")
		assert.Error(t, err)
	})

	t.Run("rejects short national ID", func(t *testing.T) {
		_, err := NewCustomer("Maryam", "12345", "", "")
		assert.Error(t, err)
	})

	t.Run("rejects non-numeric national ID", func(t *testing.T) {
		_, err := NewCustomer("Maryam", "00123a5678", "", "")
		assert.Error(t, err)
	})

	t.Run("rejects malformed phone number", func(t *testing.T) {
		_, err := NewCustomer("Maryam", "0012345678", "not-a-number", "")
		assert.Error(t, err)
	})

	t.Run("allows empty phone number", func(t *testing.T) {
		c, err := NewCustomer("Maryam", "0012345678", "", "")
		require.NoError(t, err)
		assert.Empty(t, c.PhoneNumber)
	})
}

func TestCustomerUpdateDetails(t *testing.T) {
	t.Run("updates only the provided fields", func(t *testing.T) {
		c := createTestCustomer(t)
		name := "Maryam Karimi"
		notes := "prefers evening calls"

		err := c.UpdateDetails(UpdateCustomerCommand{FullName: &name, Notes: &notes})
		require.NoError(t, err)

		assert.Equal(t, "Maryam Karimi", c.FullName)
		assert.Equal(t, "prefers evening calls", c.Notes)
		assert.Equal(t, "+989121234567", c.PhoneNumber)
	})

	t.Run("rejects clearing the name", func(t *testing.T) {
		c := createTestCustomer(t)
		empty := ""

		err := c.UpdateDetails(UpdateCustomerCommand{FullName: &empty})

		assert.Error(t, err)
	})
}
