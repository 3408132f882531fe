package students

import (
	"context"
	"errors"

	"campus/internal/shared/apierr"

	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Student, error)
	GetByUserID(ctx context.Context, userID string) (*Student, error)
	List(ctx context.Context, departmentID uint) ([]Student, error)
	Update(ctx context.Context, student *Student) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Student, error) {
	var student Student
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("student record not found")
		}
		return nil, err
	}
	return &student, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID string) (*Student, error) {
	var student Student
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("student record not found")
		}
		return nil, err
	}
	return &student, nil
}

func (r *repository) List(ctx context.Context, departmentID uint) ([]Student, error) {
	var list []Student
	q := r.db.WithContext(ctx).Order("student_number ASC")
	if departmentID != 0 {
		q = q.Where("department_id = ?", departmentID)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) Update(ctx context.Context, student *Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}
