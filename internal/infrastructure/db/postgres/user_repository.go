package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/showcase/portfolio-api/internal/core/domain"
)

// adminQuotaLockKey serializes admin registrations with a transaction-scoped
// advisory lock, so the quota can never be exceeded by concurrent inserts.
const adminQuotaLockKey = 8153

// UserRepository persists accounts in the users table. Username and email
// each carry a unique index; uniqueness is enforced by the database, not by
// a prior SELECT.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRecord struct {
	ID           uint       `gorm:"primaryKey"`
	Username     string     `gorm:"size:50;not null;uniqueIndex"`
	PasswordHash string     `gorm:"size:255;not null"`
	Email        string     `gorm:"size:100;not null;uniqueIndex"`
	Position     string     `gorm:"size:50;not null"`
	Role         string     `gorm:"size:10;not null;default:user;index"`
	CreatedAt    time.Time  `gorm:"not null"`
	LastLogin    *time.Time
}

func (userRecord) TableName() string { return "users" }

func (rec *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           rec.ID,
		Username:     rec.Username,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Position:     rec.Position,
		Role:         rec.Role,
		CreatedAt:    rec.CreatedAt,
		LastLogin:    rec.LastLogin,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	rec := userRecord{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Email:        user.Email,
		Position:     user.Position,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rec.Role == domain.RoleAdmin {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", adminQuotaLockKey).Error; err != nil {
				return fmt.Errorf("acquire admin lock: %w", err)
			}
			var admins int64
			if err := tx.Model(&userRecord{}).Where("role = ?", domain.RoleAdmin).Count(&admins).Error; err != nil {
				return fmt.Errorf("count admins: %w", err)
			}
			if admins >= domain.AdminLimit {
				return domain.ErrAdminLimitReached
			}
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserExists
		}
		if errors.Is(err, domain.ErrAdminLimitReached) {
			return nil, domain.ErrAdminLimitReached
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return rec.toDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("uniqueness check: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("role = ?", role).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count by role: %w", err)
	}
	return count, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("id = ?", userID).
		Update("last_login", time.Now().UTC()).Error
	if err != nil {
		return fmt.Errorf("update last_login: %w", err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var recs []userRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]*domain.User, len(recs))
	for i := range recs {
		users[i] = recs[i].toDomain()
	}
	return users, nil
}
