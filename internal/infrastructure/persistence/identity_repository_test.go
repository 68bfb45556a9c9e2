package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/domain/identity"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupIdentityTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.UserModel{}, &models.LoginActivityModel{})
	require.NoError(t, err)

	return db
}

func TestGormUserRepository(t *testing.T) {
	db := setupIdentityTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("Manager01", "manager@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	t.Run("finds user by case-insensitive username", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "MANAGER01")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "manager01", found.Username)
	})

	t.Run("returns nil for unknown username", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("returns nil for unknown ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("persists login bookkeeping on update", func(t *testing.T) {
		user.RecordLoginSuccess("192.0.2.10")
		require.NoError(t, repo.Update(ctx, user))

		reloaded, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, reloaded)
		assert.NotNil(t, reloaded.LastLoginAt)
		assert.Equal(t, "192.0.2.10", reloaded.LastLoginIP)
		assert.Equal(t, 0, reloaded.FailedAttempts)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		dupe, err := identity.NewUser("manager01", "", "another-pass")
		require.NoError(t, err)

		err = repo.Save(ctx, dupe)
		assert.Error(t, err)
	})
}

func TestGormLoginActivityRepository(t *testing.T) {
	db := setupIdentityTestDB(t)
	repo := NewGormLoginActivityRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	for i := 0; i < 3; i++ {
		entry := identity.NewLoginActivity(userID, "manager01", i != 0, "192.0.2.10", "test-agent")
		entry.CreatedAt = time.Date(2024, 3, 1+i, 9, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Save(ctx, entry))
	}

	t.Run("returns newest attempts first", func(t *testing.T) {
		entries, err := repo.FindRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, entries[0].CreatedAt.After(entries[1].CreatedAt))
		assert.True(t, entries[0].Success)
	})

	t.Run("limit larger than table returns everything", func(t *testing.T) {
		entries, err := repo.FindRecent(ctx, 50)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})
}
