package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/domain/ledger"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBillingPeriodRepository implements BillingPeriodRepository using GORM.
// The unique index on (tenant_id, year, month) makes the store the final
// arbiter of bill uniqueness; a violated insert surfaces as
// ErrDuplicateBillingPeriod.
type GormBillingPeriodRepository struct {
	db *gorm.DB
}

// NewGormBillingPeriodRepository creates a new GormBillingPeriodRepository
func NewGormBillingPeriodRepository(db *gorm.DB) *GormBillingPeriodRepository {
	return &GormBillingPeriodRepository{db: db}
}

// FindByID finds a billing period by its ID
func (r *GormBillingPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.BillingPeriod, error) {
	var model models.BillingPeriodModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenantAndPeriod performs the exact point lookup on the uniqueness key
func (r *GormBillingPeriodRepository) FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period ledger.Period) (*ledger.BillingPeriod, error) {
	var model models.BillingPeriodModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND year = ? AND month = ?", tenantID, period.Year, period.Month).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByTenantAndPeriod checks for a record with the same uniqueness key
func (r *GormBillingPeriodRepository) ExistsByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period ledger.Period) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BillingPeriodModel{}).
		Where("tenant_id = ? AND year = ? AND month = ?", tenantID, period.Year, period.Month).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll returns the filtered history ordered by year desc, month desc,
// created_at desc
func (r *GormBillingPeriodRepository) FindAll(ctx context.Context, filter ledger.BillingHistoryFilter) ([]ledger.BillingPeriod, error) {
	var billModels []models.BillingPeriodModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BillingPeriodModel{}), filter)

	if err := query.Order("year DESC, month DESC, created_at DESC").Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]ledger.BillingPeriod, len(billModels))
	for i, model := range billModels {
		bills[i] = *model.ToDomain()
	}
	return bills, nil
}

// FindRecent returns the most recently created bills, newest first
func (r *GormBillingPeriodRepository) FindRecent(ctx context.Context, limit int) ([]ledger.BillingPeriod, error) {
	var billModels []models.BillingPeriodModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]ledger.BillingPeriod, len(billModels))
	for i, model := range billModels {
		bills[i] = *model.ToDomain()
	}
	return bills, nil
}

// Save inserts a new billing period
func (r *GormBillingPeriodRepository) Save(ctx context.Context, bp *ledger.BillingPeriod) error {
	var model models.BillingPeriodModel
	model.FromDomain(bp)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ledger.ErrDuplicateBillingPeriod
		}
		return err
	}
	return nil
}

// Update persists changes to an existing billing period
func (r *GormBillingPeriodRepository) Update(ctx context.Context, bp *ledger.BillingPeriod) error {
	var model models.BillingPeriodModel
	model.FromDomain(bp)

	result := r.db.WithContext(ctx).Model(&models.BillingPeriodModel{}).
		Where("id = ?", model.ID).
		Select("rent", "water_charge", "sewage_charge", "total", "status", "updated_at").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledger.ErrBillingPeriodNotFound
	}
	return nil
}

// Count counts billing periods matching the filter
func (r *GormBillingPeriodRepository) Count(ctx context.Context, filter ledger.BillingHistoryFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BillingPeriodModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormBillingPeriodRepository) applyFilter(query *gorm.DB, filter ledger.BillingHistoryFilter) *gorm.DB {
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Year != nil {
		query = query.Where("year = ?", *filter.Year)
	}
	return query
}

var _ ledger.BillingPeriodRepository = (*GormBillingPeriodRepository)(nil)
