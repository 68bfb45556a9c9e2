package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockBillingPeriodRepository creates a GormBillingPeriodRepository with a mocked SQL connection
func newMockBillingPeriodRepository(t *testing.T) (*GormBillingPeriodRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormBillingPeriodRepository(gormDB), mock, mockDB
}

func billRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tenant_id", "year", "month",
		"rent", "water_charge", "sewage_charge", "total", "status",
	})
}

func TestGormBillingPeriodRepository_FindByID(t *testing.T) {
	t.Run("finds existing bill", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingPeriodRepository(t)
		defer mockDB.Close()

		billID := uuid.New()
		tenantID := uuid.New()

		rows := billRows().
			AddRow(billID, tenantID, 2024, 3, decimal.NewFromInt(500), decimal.NewFromInt(30), decimal.NewFromInt(20), decimal.NewFromInt(550), "unpaid")

		mock.ExpectQuery(`SELECT \* FROM "billing_periods" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(billID, 1).
			WillReturnRows(rows)

		bill, err := repo.FindByID(context.Background(), billID)

		assert.NoError(t, err)
		require.NotNil(t, bill)
		assert.Equal(t, billID, bill.ID)
		assert.Equal(t, tenantID, bill.TenantID)
		assert.Equal(t, 2024, bill.Period.Year)
		assert.Equal(t, 3, bill.Period.Month)
		assert.True(t, bill.Total.Equal(decimal.NewFromInt(550)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for non-existent bill", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingPeriodRepository(t)
		defer mockDB.Close()

		billID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "billing_periods" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(billID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		bill, err := repo.FindByID(context.Background(), billID)

		assert.NoError(t, err)
		assert.Nil(t, bill)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBillingPeriodRepository_FindByTenantAndPeriod(t *testing.T) {
	t.Run("finds bill by uniqueness key", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingPeriodRepository(t)
		defer mockDB.Close()

		billID := uuid.New()
		tenantID := uuid.New()

		rows := billRows().
			AddRow(billID, tenantID, 2024, 1, decimal.NewFromInt(480), decimal.Zero, decimal.Zero, decimal.NewFromInt(480), "paid")

		mock.ExpectQuery(`SELECT \* FROM "billing_periods" WHERE tenant_id = \$1 AND year = \$2 AND month = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, 2024, 1, 1).
			WillReturnRows(rows)

		bill, err := repo.FindByTenantAndPeriod(context.Background(), tenantID, ledger.Period{Month: 1, Year: 2024})

		assert.NoError(t, err)
		require.NotNil(t, bill)
		assert.Equal(t, ledger.BillStatusPaid, bill.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil when no bill exists for the period", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingPeriodRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "billing_periods" WHERE tenant_id = \$1 AND year = \$2 AND month = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, 2024, 2, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		bill, err := repo.FindByTenantAndPeriod(context.Background(), tenantID, ledger.Period{Month: 2, Year: 2024})

		assert.NoError(t, err)
		assert.Nil(t, bill)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBillingPeriodRepository_ExistsByTenantAndPeriod(t *testing.T) {
	t.Run("returns true when a bill exists", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingPeriodRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "billing_periods" WHERE tenant_id = \$1 AND year = \$2 AND month = \$3`).
			WithArgs(tenantID, 2024, 3).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByTenantAndPeriod(context.Background(), tenantID, ledger.Period{Month: 3, Year: 2024})

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when no bill exists", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingPeriodRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "billing_periods" WHERE tenant_id = \$1 AND year = \$2 AND month = \$3`).
			WithArgs(tenantID, 2024, 4).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByTenantAndPeriod(context.Background(), tenantID, ledger.Period{Month: 4, Year: 2024})

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBillingPeriodRepository_FindAll(t *testing.T) {
	t.Run("orders by year, month, created_at descending", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingPeriodRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		rows := billRows().
			AddRow(uuid.New(), tenantID, 2024, 3, decimal.NewFromInt(500), decimal.Zero, decimal.Zero, decimal.NewFromInt(500), "unpaid").
			AddRow(uuid.New(), tenantID, 2024, 1, decimal.NewFromInt(480), decimal.Zero, decimal.Zero, decimal.NewFromInt(480), "paid")

		mock.ExpectQuery(`SELECT \* FROM "billing_periods" ORDER BY year DESC, month DESC, created_at DESC`).
			WillReturnRows(rows)

		bills, err := repo.FindAll(context.Background(), ledger.BillingHistoryFilter{})

		assert.NoError(t, err)
		require.Len(t, bills, 2)
		assert.Equal(t, 3, bills[0].Period.Month)
		assert.Equal(t, 1, bills[1].Period.Month)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies all filters with AND semantics", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingPeriodRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		status := ledger.BillStatusUnpaid
		year := 2024

		mock.ExpectQuery(`SELECT \* FROM "billing_periods" WHERE tenant_id = \$1 AND status = \$2 AND year = \$3 ORDER BY year DESC, month DESC, created_at DESC`).
			WithArgs(tenantID, status, year).
			WillReturnRows(billRows())

		bills, err := repo.FindAll(context.Background(), ledger.BillingHistoryFilter{
			TenantID: &tenantID,
			Status:   &status,
			Year:     &year,
		})

		assert.NoError(t, err)
		assert.Empty(t, bills)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBillingPeriodRepository_FindRecent(t *testing.T) {
	t.Run("limits to the most recently created bills", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingPeriodRepository(t)
		defer mockDB.Close()

		rows := billRows().
			AddRow(uuid.New(), uuid.New(), 2024, 5, decimal.NewFromInt(600), decimal.Zero, decimal.Zero, decimal.NewFromInt(600), "unpaid")

		mock.ExpectQuery(`SELECT \* FROM "billing_periods" ORDER BY created_at DESC LIMIT .*`).
			WithArgs(10).
			WillReturnRows(rows)

		bills, err := repo.FindRecent(context.Background(), 10)

		assert.NoError(t, err)
		assert.Len(t, bills, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBillingPeriodRepository_Save(t *testing.T) {
	t.Run("inserts a new bill", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingPeriodRepository(t)
		defer mockDB.Close()

		bill, err := ledger.NewBillingPeriod(
			uuid.New(),
			ledger.Period{Month: 3, Year: 2024},
			decimal.NewFromInt(500), decimal.NewFromInt(30), decimal.NewFromInt(20),
			ledger.BillStatusUnpaid,
		)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "billing_periods"`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err = repo.Save(context.Background(), bill)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps unique constraint violation to duplicate error", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingPeriodRepository(t)
		defer mockDB.Close()

		bill, err := ledger.NewBillingPeriod(
			uuid.New(),
			ledger.Period{Month: 3, Year: 2024},
			decimal.NewFromInt(500), decimal.Zero, decimal.Zero,
			ledger.BillStatusUnpaid,
		)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "billing_periods"`).
			WillReturnError(gorm.ErrDuplicatedKey)

		err = repo.Save(context.Background(), bill)

		assert.ErrorIs(t, err, ledger.ErrDuplicateBillingPeriod)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBillingPeriodRepository_Update(t *testing.T) {
	t.Run("updates charge columns", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingPeriodRepository(t)
		defer mockDB.Close()

		bill, err := ledger.NewBillingPeriod(
			uuid.New(),
			ledger.Period{Month: 3, Year: 2024},
			decimal.NewFromInt(500), decimal.NewFromInt(30), decimal.NewFromInt(20),
			ledger.BillStatusUnpaid,
		)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "billing_periods" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Update(context.Background(), bill)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no row matched", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingPeriodRepository(t)
		defer mockDB.Close()

		bill, err := ledger.NewBillingPeriod(
			uuid.New(),
			ledger.Period{Month: 3, Year: 2024},
			decimal.NewFromInt(500), decimal.Zero, decimal.Zero,
			ledger.BillStatusUnpaid,
		)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "billing_periods" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Update(context.Background(), bill)

		assert.ErrorIs(t, err, ledger.ErrBillingPeriodNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBillingPeriodRepository_Count(t *testing.T) {
	t.Run("counts bills matching filter", func(t *testing.T) {
		repo, mock, mockDB := newMockBillingPeriodRepository(t)
		defer mockDB.Close()

		status := ledger.BillStatusPaid

		mock.ExpectQuery(`SELECT count\(\*\) FROM "billing_periods" WHERE status = \$1`).
			WithArgs(status).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.Count(context.Background(), ledger.BillingHistoryFilter{Status: &status})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
