package faculty

import (
	"context"
	"errors"

	"campus/internal/shared/apierr"

	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Faculty, error)
	GetByUserID(ctx context.Context, userID string) (*Faculty, error)
	List(ctx context.Context, departmentID uint) ([]Faculty, error)
	Update(ctx context.Context, member *Faculty) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Faculty, error) {
	var member Faculty
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("faculty record not found")
		}
		return nil, err
	}
	return &member, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID string) (*Faculty, error) {
	var member Faculty
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("faculty record not found")
		}
		return nil, err
	}
	return &member, nil
}

func (r *repository) List(ctx context.Context, departmentID uint) ([]Faculty, error) {
	var list []Faculty
	q := r.db.WithContext(ctx).Order("employee_number ASC")
	if departmentID != 0 {
		q = q.Where("department_id = ?", departmentID)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) Update(ctx context.Context, member *Faculty) error {
	return r.db.WithContext(ctx).Save(member).Error
}
