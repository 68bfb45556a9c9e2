package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/nasmila140/property-lease-management-system/internal/domain/ledger"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/persistence/memory"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func seedPayment(t *testing.T, repo *memory.PropertyPaymentRepository, status ledger.PaymentStatus, dueDate time.Time) *ledger.PropertyPayment {
	t.Helper()

	p, err := ledger.NewPropertyPayment(uuid.New(), ledger.PaymentTypeRent, decimal.RequireFromString("950.00"), dueDate)
	require.NoError(t, err)
	if status == ledger.PaymentStatusPaid {
		require.NoError(t, p.MarkPaid(dueDate, "transfer"))
	}
	p.ClearDomainEvents()
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func TestOverdueSweeper_Sweep(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("moves pending payments past due to overdue", func(t *testing.T) {
		repo := memory.NewPropertyPaymentRepository()
		late := seedPayment(t, repo, ledger.PaymentStatusPending, base.AddDate(0, 0, -3))
		future := seedPayment(t, repo, ledger.PaymentStatusPending, base.AddDate(0, 0, 3))
		paid := seedPayment(t, repo, ledger.PaymentStatusPaid, base.AddDate(0, 0, -3))

		sweeper := NewOverdueSweeper(DefaultOverdueSweepConfig(), repo, zap.NewNop())
		sweeper.SetClock(func() time.Time { return base })
		sweeper.Sweep(ctx)

		stored, err := repo.FindByID(ctx, late.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.PaymentStatusOverdue, stored.Status)

		stored, err = repo.FindByID(ctx, future.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.PaymentStatusPending, stored.Status)

		stored, err = repo.FindByID(ctx, paid.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.PaymentStatusPaid, stored.Status)
	})

	t.Run("publishes an overdue event per swept payment", func(t *testing.T) {
		repo := memory.NewPropertyPaymentRepository()
		seedPayment(t, repo, ledger.PaymentStatusPending, base.AddDate(0, 0, -2))
		seedPayment(t, repo, ledger.PaymentStatusPending, base.AddDate(0, 0, -1))

		pub := &recordingPublisher{}
		sweeper := NewOverdueSweeper(DefaultOverdueSweepConfig(), repo, zap.NewNop())
		sweeper.SetEventPublisher(pub)
		sweeper.SetClock(func() time.Time { return base })
		sweeper.Sweep(ctx)

		require.Equal(t, 2, pub.count())
		assert.Equal(t, "PropertyPaymentOverdue", pub.events[0].EventType())
	})

	t.Run("a second pass finds nothing left to sweep", func(t *testing.T) {
		repo := memory.NewPropertyPaymentRepository()
		seedPayment(t, repo, ledger.PaymentStatusPending, base.AddDate(0, 0, -2))

		pub := &recordingPublisher{}
		sweeper := NewOverdueSweeper(DefaultOverdueSweepConfig(), repo, zap.NewNop())
		sweeper.SetEventPublisher(pub)
		sweeper.SetClock(func() time.Time { return base })

		sweeper.Sweep(ctx)
		sweeper.Sweep(ctx)
		assert.Equal(t, 1, pub.count())
	})
}

func TestOverdueSweeper_Lifecycle(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("start and stop are idempotent", func(t *testing.T) {
		repo := memory.NewPropertyPaymentRepository()
		sweeper := NewOverdueSweeper(OverdueSweepConfig{Enabled: true, SweepInterval: time.Hour}, repo, zap.NewNop())

		require.NoError(t, sweeper.Start(ctx))
		require.NoError(t, sweeper.Start(ctx))
		require.NoError(t, sweeper.Stop(ctx))
		require.NoError(t, sweeper.Stop(ctx))
	})

	t.Run("disabled sweeper never runs", func(t *testing.T) {
		repo := memory.NewPropertyPaymentRepository()
		p := seedPayment(t, repo, ledger.PaymentStatusPending, base.AddDate(0, 0, -2))

		sweeper := NewOverdueSweeper(OverdueSweepConfig{Enabled: false, SweepInterval: time.Millisecond}, repo, zap.NewNop())
		sweeper.SetClock(func() time.Time { return base })

		require.NoError(t, sweeper.Start(ctx))
		time.Sleep(20 * time.Millisecond)
		require.NoError(t, sweeper.Stop(ctx))

		stored, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.PaymentStatusPending, stored.Status)
	})

	t.Run("running sweeper picks up late payments", func(t *testing.T) {
		repo := memory.NewPropertyPaymentRepository()
		p := seedPayment(t, repo, ledger.PaymentStatusPending, base.AddDate(0, 0, -2))

		sweeper := NewOverdueSweeper(OverdueSweepConfig{Enabled: true, SweepInterval: 5 * time.Millisecond}, repo, zap.NewNop())
		sweeper.SetClock(func() time.Time { return base })

		require.NoError(t, sweeper.Start(ctx))
		assert.Eventually(t, func() bool {
			stored, err := repo.FindByID(ctx, p.ID)
			return err == nil && stored.Status == ledger.PaymentStatusOverdue
		}, time.Second, 5*time.Millisecond)
		require.NoError(t, sweeper.Stop(ctx))
	})
}
