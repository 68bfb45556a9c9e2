package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPayment(t *testing.T, dueDate time.Time) *PropertyPayment {
	p, err := NewPropertyPayment(uuid.New(), PaymentTypeRent, decimal.NewFromInt(1200), dueDate)
	require.NoError(t, err)
	return p
}

func TestNewPropertyPayment(t *testing.T) {
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates pending payment", func(t *testing.T) {
		p := createTestPayment(t, due)
		assert.Equal(t, PaymentStatusPending, p.Status)
		assert.Nil(t, p.PaidDate)
		assert.NoError(t, p.Validate())
	})

	t.Run("fails with invalid type", func(t *testing.T) {
		_, err := NewPropertyPayment(uuid.New(), PaymentType("parking"), decimal.NewFromInt(50), due)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid payment type")
	})

	t.Run("fails with negative amount", func(t *testing.T) {
		_, err := NewPropertyPayment(uuid.New(), PaymentTypeWater, decimal.NewFromInt(-1), due)
		assert.Error(t, err)
	})
}

func TestPropertyPayment_MarkPaid(t *testing.T) {
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("sets paid date with status", func(t *testing.T) {
		p := createTestPayment(t, due)
		paidAt := due.AddDate(0, 0, -2)

		require.NoError(t, p.MarkPaid(paidAt, "bank_transfer"))
		assert.Equal(t, PaymentStatusPaid, p.Status)
		require.NotNil(t, p.PaidDate)
		assert.Equal(t, paidAt, *p.PaidDate)
		require.NotNil(t, p.Method)
		assert.Equal(t, "bank_transfer", *p.Method)
		assert.NoError(t, p.Validate())
		assert.NotEmpty(t, p.GetDomainEvents())
	})

	t.Run("rejects double settlement", func(t *testing.T) {
		p := createTestPayment(t, due)
		require.NoError(t, p.MarkPaid(due, ""))
		err := p.MarkPaid(due, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already paid")
	})

	t.Run("overdue payment can still be paid", func(t *testing.T) {
		p := createTestPayment(t, due)
		require.NoError(t, p.MarkOverdue(due.AddDate(0, 0, 1)))
		require.NoError(t, p.MarkPaid(due.AddDate(0, 0, 5), "cash"))
		assert.Equal(t, PaymentStatusPaid, p.Status)
	})
}

func TestPropertyPayment_MarkOverdue(t *testing.T) {
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("transitions pending past due date", func(t *testing.T) {
		p := createTestPayment(t, due)
		require.NoError(t, p.MarkOverdue(due.AddDate(0, 0, 1)))
		assert.Equal(t, PaymentStatusOverdue, p.Status)
		assert.Nil(t, p.PaidDate)
	})

	t.Run("rejects transition before due date", func(t *testing.T) {
		p := createTestPayment(t, due)
		err := p.MarkOverdue(due.AddDate(0, 0, -1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not past its due date")
		assert.Equal(t, PaymentStatusPending, p.Status)
	})

	t.Run("rejects transition from paid", func(t *testing.T) {
		p := createTestPayment(t, due)
		require.NoError(t, p.MarkPaid(due, ""))
		err := p.MarkOverdue(due.AddDate(0, 0, 10))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Only pending payments")
	})
}

func TestStatusEnums(t *testing.T) {
	assert.True(t, BillStatusPaid.IsValid())
	assert.True(t, BillStatusUnpaid.IsValid())
	assert.False(t, BillStatus("overdue").IsValid())

	assert.True(t, PaymentStatusPending.IsValid())
	assert.True(t, PaymentStatusPaid.IsValid())
	assert.True(t, PaymentStatusOverdue.IsValid())
	assert.False(t, PaymentStatus("unpaid").IsValid())

	for _, pt := range []PaymentType{PaymentTypeRent, PaymentTypeWater, PaymentTypeSewer, PaymentTypeMaintenance, PaymentTypeDeposit, PaymentTypeOther} {
		assert.True(t, pt.IsValid())
	}
	assert.False(t, PaymentType("").IsValid())
}

func TestPropertyPayment_UpdatedAtAdvances(t *testing.T) {
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	stale := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("on settlement", func(t *testing.T) {
		p := createTestPayment(t, due)
		p.UpdatedAt = stale

		require.NoError(t, p.MarkPaid(due, "cash"))
		assert.True(t, p.UpdatedAt.After(stale))
	})

	t.Run("on the overdue transition", func(t *testing.T) {
		p := createTestPayment(t, due)
		p.UpdatedAt = stale

		require.NoError(t, p.MarkOverdue(due.AddDate(0, 0, 1)))
		assert.True(t, p.UpdatedAt.After(stale))
	})
}
