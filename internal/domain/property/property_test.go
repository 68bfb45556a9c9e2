package property

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProperty(t *testing.T) {
	t.Run("creates vacant property", func(t *testing.T) {
		p, err := NewProperty("PROP-001", "12 Hill Road", "apartment", decimal.NewFromInt(1500))
		require.NoError(t, err)
		assert.Equal(t, "PROP-001", p.Code)
		assert.Equal(t, StatusVacant, p.Status)
		assert.False(t, p.IsActive())
	})

	t.Run("fails without code", func(t *testing.T) {
		_, err := NewProperty("  ", "12 Hill Road", "apartment", decimal.NewFromInt(1500))
		assert.Error(t, err)
	})

	t.Run("fails with negative rent", func(t *testing.T) {
		_, err := NewProperty("PROP-001", "12 Hill Road", "apartment", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestProperty_AssignLease(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	t.Run("activates property", func(t *testing.T) {
		p, err := NewProperty("PROP-001", "12 Hill Road", "apartment", decimal.NewFromInt(1500))
		require.NoError(t, err)

		require.NoError(t, p.AssignLease("Amina Yusuf", "0712-000-000", start, end))
		assert.True(t, p.IsActive())
		assert.Equal(t, "Amina Yusuf", p.TenantName)
		require.NotNil(t, p.LeaseEnd)
		assert.Equal(t, end, *p.LeaseEnd)
	})

	t.Run("rejects lease ending before it starts", func(t *testing.T) {
		p, err := NewProperty("PROP-001", "12 Hill Road", "apartment", decimal.NewFromInt(1500))
		require.NoError(t, err)
		assert.Error(t, p.AssignLease("Amina Yusuf", "", end, start))
	})
}

func TestProperty_EndLease(t *testing.T) {
	p, err := NewProperty("PROP-002", "3 Bay Street", "house", decimal.NewFromInt(2000))
	require.NoError(t, err)

	assert.Error(t, p.EndLease())

	require.NoError(t, p.AssignLease("Joe Kim", "", time.Time{}, time.Time{}))
	require.NoError(t, p.EndLease())
	assert.Equal(t, StatusEnded, p.Status)
}
