package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/domain/ledger"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPropertyPaymentRepository implements PropertyPaymentRepository using GORM
type GormPropertyPaymentRepository struct {
	db *gorm.DB
}

// NewGormPropertyPaymentRepository creates a new GormPropertyPaymentRepository
func NewGormPropertyPaymentRepository(db *gorm.DB) *GormPropertyPaymentRepository {
	return &GormPropertyPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPropertyPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.PropertyPayment, error) {
	var model models.PropertyPaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProperty returns all payments for a property, most recent due first
func (r *GormPropertyPaymentRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]ledger.PropertyPayment, error) {
	var paymentModels []models.PropertyPaymentModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("due_date DESC, created_at DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindAll returns every payment, most recent due first
func (r *GormPropertyPaymentRepository) FindAll(ctx context.Context) ([]ledger.PropertyPayment, error) {
	var paymentModels []models.PropertyPaymentModel
	if err := r.db.WithContext(ctx).
		Order("due_date DESC, created_at DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindPendingDueBefore returns pending payments whose due date has passed,
// oldest due first
func (r *GormPropertyPaymentRepository) FindPendingDueBefore(ctx context.Context, cutoff time.Time) ([]ledger.PropertyPayment, error) {
	var paymentModels []models.PropertyPaymentModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", ledger.PaymentStatusPending, cutoff).
		Order("due_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// Save inserts a new payment
func (r *GormPropertyPaymentRepository) Save(ctx context.Context, p *ledger.PropertyPayment) error {
	var model models.PropertyPaymentModel
	model.FromDomain(p)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update persists changes to an existing payment
func (r *GormPropertyPaymentRepository) Update(ctx context.Context, p *ledger.PropertyPayment) error {
	var model models.PropertyPaymentModel
	model.FromDomain(p)

	result := r.db.WithContext(ctx).Model(&models.PropertyPaymentModel{}).
		Where("id = ?", model.ID).
		Select("amount", "due_date", "paid_date", "status", "method", "notes", "updated_at").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledger.ErrPaymentNotFound
	}
	return nil
}

func toDomainPayments(paymentModels []models.PropertyPaymentModel) []ledger.PropertyPayment {
	payments := make([]ledger.PropertyPayment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments
}

var _ ledger.PropertyPaymentRepository = (*GormPropertyPaymentRepository)(nil)
