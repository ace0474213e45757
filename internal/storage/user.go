package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/easeaico/zetazen/internal/auth"
	"github.com/easeaico/zetazen/internal/types"
)

// userModel maps to the users table.
type userModel struct {
	ID            string `gorm:"primaryKey"`
	Name          string
	Email         string
	EmailVerified bool
	Image         *string
	PasswordHash  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (userModel) TableName() string {
	return "users"
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo returns an auth.UserRepo.
func NewUserRepo(db *gorm.DB) auth.UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *types.User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}
	record := userModel{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		Image:         user.Image,
		PasswordHash:  user.PasswordHash,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return auth.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*types.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepo) Update(ctx context.Context, id string, update types.UserUpdate, now time.Time) (*types.User, error) {
	updates := map[string]any{"updated_at": now}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.ClearImage {
		updates["image"] = nil
	} else if update.Image != nil {
		updates["image"] = *update.Image
	}

	res := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, auth.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *userRepo) first(ctx context.Context, cond string, arg any) (*types.User, error) {
	var record userModel
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	result := userFromModel(record)
	return &result, nil
}

func userFromModel(record userModel) types.User {
	return types.User{
		ID:            record.ID,
		Name:          record.Name,
		Email:         record.Email,
		EmailVerified: record.EmailVerified,
		Image:         record.Image,
		PasswordHash:  record.PasswordHash,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}
