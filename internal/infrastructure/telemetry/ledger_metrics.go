package telemetry

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// LedgerMetrics tracks billing ledger activity: bills recorded, billed
// amounts, and payments that slip into overdue.
type LedgerMetrics struct {
	logger *zap.Logger

	billsCreatedTotal    metric.Int64Counter
	billAmountTotal      metric.Float64Counter
	paymentsOverdueTotal metric.Int64Counter
	overdueAmountTotal   metric.Float64Counter
}

// NewLedgerMetrics creates the ledger metric instruments on the given meter
func NewLedgerMetrics(meter metric.Meter, logger *zap.Logger) (*LedgerMetrics, error) {
	billsCreated, err := meter.Int64Counter(
		"ledger_bills_created_total",
		metric.WithDescription("Total number of billing periods recorded"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bills counter: %w", err)
	}

	billAmount, err := meter.Float64Counter(
		"ledger_bill_amount_total",
		metric.WithDescription("Total billed amount across all recorded bills"),
		metric.WithUnit("{currency}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bill amount counter: %w", err)
	}

	paymentsOverdue, err := meter.Int64Counter(
		"ledger_payments_overdue_total",
		metric.WithDescription("Total number of lease payments marked overdue"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create overdue counter: %w", err)
	}

	overdueAmount, err := meter.Float64Counter(
		"ledger_overdue_amount_total",
		metric.WithDescription("Total amount of lease payments marked overdue"),
		metric.WithUnit("{currency}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create overdue amount counter: %w", err)
	}

	return &LedgerMetrics{
		logger:               logger,
		billsCreatedTotal:    billsCreated,
		billAmountTotal:      billAmount,
		paymentsOverdueTotal: paymentsOverdue,
		overdueAmountTotal:   overdueAmount,
	}, nil
}

// RecordBillCreated increments the bill counters for a newly recorded bill
func (m *LedgerMetrics) RecordBillCreated(ctx context.Context, total decimal.Decimal, status string) {
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.billsCreatedTotal.Add(ctx, 1, attrs)

	amount, _ := total.Float64()
	m.billAmountTotal.Add(ctx, amount, attrs)
}

// RecordPaymentOverdue increments the overdue counters
func (m *LedgerMetrics) RecordPaymentOverdue(ctx context.Context, amount decimal.Decimal) {
	m.paymentsOverdueTotal.Add(ctx, 1)

	v, _ := amount.Float64()
	m.overdueAmountTotal.Add(ctx, v)
}
