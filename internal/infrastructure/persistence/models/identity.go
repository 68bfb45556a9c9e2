package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/domain/identity"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
)

// UserModel is the persistence model for admin users
type UserModel struct {
	BaseModel
	Username       string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email          string              `gorm:"type:varchar(255)"`
	PasswordHash   string              `gorm:"type:varchar(255);not null"`
	DisplayName    string              `gorm:"type:varchar(200)"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt    *time.Time
	LastLoginIP    string `gorm:"type:varchar(45)"`
	FailedAttempts int    `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		DisplayName:       m.DisplayName,
		Status:            m.Status,
		LastLoginAt:       m.LastLoginAt,
		LastLoginIP:       m.LastLoginIP,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
	}
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Username = u.Username
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
}

// LoginActivityModel is the persistence model for the login audit log
type LoginActivityModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Username  string    `gorm:"type:varchar(50);not null"`
	Success   bool      `gorm:"not null"`
	IPAddress string    `gorm:"type:varchar(45)"`
	UserAgent string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (LoginActivityModel) TableName() string {
	return "login_activity"
}

// ToDomain converts the persistence model to a domain LoginActivity
func (m *LoginActivityModel) ToDomain() *identity.LoginActivity {
	return &identity.LoginActivity{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Username:   m.Username,
		Success:    m.Success,
		IPAddress:  m.IPAddress,
		UserAgent:  m.UserAgent,
	}
}

// FromDomain populates the persistence model from a domain LoginActivity
func (m *LoginActivityModel) FromDomain(a *identity.LoginActivity) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.UserID = a.UserID
	m.Username = a.Username
	m.Success = a.Success
	m.IPAddress = a.IPAddress
	m.UserAgent = a.UserAgent
}
