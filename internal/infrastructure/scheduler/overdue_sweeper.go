package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/nasmila140/property-lease-management-system/internal/domain/ledger"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OverdueSweepConfig holds configuration for the overdue payment sweeper
type OverdueSweepConfig struct {
	Enabled bool

	// SweepInterval is how often pending payments are checked against
	// their due date
	SweepInterval time.Duration
}

// DefaultOverdueSweepConfig returns default sweeper configuration
func DefaultOverdueSweepConfig() OverdueSweepConfig {
	return OverdueSweepConfig{
		Enabled:       true,
		SweepInterval: time.Hour,
	}
}

// OverdueSweeper periodically reclassifies pending lease payments whose due
// date has passed. Overdue is an explicit stored transition, so without the
// sweeper a payment only becomes overdue when someone flags it by hand.
type OverdueSweeper struct {
	config   OverdueSweepConfig
	payments ledger.PropertyPaymentRepository
	events   shared.EventPublisher
	metrics  *telemetry.LedgerMetrics
	logger   *zap.Logger

	now func() time.Time

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewOverdueSweeper creates a new overdue sweeper
func NewOverdueSweeper(config OverdueSweepConfig, payments ledger.PropertyPaymentRepository, logger *zap.Logger) *OverdueSweeper {
	return &OverdueSweeper{
		config:   config,
		payments: payments,
		logger:   logger,
		now:      time.Now,
	}
}

// SetEventPublisher sets the optional domain event publisher
func (s *OverdueSweeper) SetEventPublisher(events shared.EventPublisher) {
	s.events = events
}

// SetMetrics sets the optional ledger metrics collector
func (s *OverdueSweeper) SetMetrics(m *telemetry.LedgerMetrics) {
	s.metrics = m
}

// SetClock overrides the wall clock, used by tests
func (s *OverdueSweeper) SetClock(now func() time.Time) {
	s.now = now
}

// Start starts the background sweep loop
func (s *OverdueSweeper) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.logger.Info("Overdue sweeper disabled")
		return nil
	}

	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Overdue sweeper started",
		zap.Duration("sweep_interval", s.config.SweepInterval),
	)
	return nil
}

// Stop stops the sweep loop, waiting for an in-flight sweep to finish
func (s *OverdueSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Overdue sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *OverdueSweeper) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass: every pending payment past its due date is moved to
// overdue. Failures on individual payments are logged and do not stop the
// pass.
func (s *OverdueSweeper) Sweep(ctx context.Context) {
	now := s.now()
	candidates, err := s.payments.FindPendingDueBefore(ctx, now)
	if err != nil {
		s.logger.Error("Overdue sweep query failed", zap.Error(err))
		return
	}
	if len(candidates) == 0 {
		return
	}

	swept := 0
	for i := range candidates {
		p := &candidates[i]
		if err := p.MarkOverdue(now); err != nil {
			s.logger.Warn("Skipping payment during overdue sweep",
				zap.String("payment_id", p.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if err := s.payments.Update(ctx, p); err != nil {
			s.logger.Error("Failed to persist overdue transition",
				zap.String("payment_id", p.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if s.events != nil {
			_ = s.events.Publish(ctx, p.GetDomainEvents()...)
		}
		p.ClearDomainEvents()
		if s.metrics != nil {
			s.metrics.RecordPaymentOverdue(ctx, p.Amount)
		}
		swept++
	}

	s.logger.Info("Overdue sweep finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("swept", swept),
	)
}
