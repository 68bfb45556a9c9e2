package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/domain/identity"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a user by username (stored lowercase)
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		First(&model, "username = ?", strings.ToLower(username)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates a new user
func (r *GormUserRepository) Save(ctx context.Context, u *identity.User) error {
	var model models.UserModel
	model.FromDomain(u)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update persists changes to an existing user
func (r *GormUserRepository) Update(ctx context.Context, u *identity.User) error {
	var model models.UserModel
	model.FromDomain(u)
	return r.db.WithContext(ctx).Save(&model).Error
}

var _ identity.UserRepository = (*GormUserRepository)(nil)

// GormLoginActivityRepository implements identity.LoginActivityRepository
// using GORM. The table is append-only; records are never updated.
type GormLoginActivityRepository struct {
	db *gorm.DB
}

// NewGormLoginActivityRepository creates a new GormLoginActivityRepository
func NewGormLoginActivityRepository(db *gorm.DB) *GormLoginActivityRepository {
	return &GormLoginActivityRepository{db: db}
}

// Save appends a login activity record
func (r *GormLoginActivityRepository) Save(ctx context.Context, a *identity.LoginActivity) error {
	var model models.LoginActivityModel
	model.FromDomain(a)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindRecent returns the most recent login attempts, newest first
func (r *GormLoginActivityRepository) FindRecent(ctx context.Context, limit int) ([]identity.LoginActivity, error) {
	var activityModels []models.LoginActivityModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&activityModels).Error; err != nil {
		return nil, err
	}

	activities := make([]identity.LoginActivity, len(activityModels))
	for i, model := range activityModels {
		activities[i] = *model.ToDomain()
	}
	return activities, nil
}

var _ identity.LoginActivityRepository = (*GormLoginActivityRepository)(nil)
