package users

import (
	"context"
	"errors"

	"campus/internal/shared/apierr"

	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdateProfileImage(ctx context.Context, userID string, path string) error
	List(ctx context.Context, role string) ([]User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *repository) UpdateProfileImage(ctx context.Context, userID string, path string) error {
	result := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", userID).
		Update("profile_image", path)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apierr.NotFound("user not found")
	}
	return nil
}

func (r *repository) List(ctx context.Context, role string) ([]User, error) {
	var list []User
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
