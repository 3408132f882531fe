package departments

import (
	"context"
	"errors"

	"campus/internal/faculty"
	"campus/internal/shared/apierr"
	"campus/internal/students"

	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context) ([]Department, error)
	GetByID(ctx context.Context, id uint) (*Department, error)
	GetByCode(ctx context.Context, code string) (*Department, error)
	Create(ctx context.Context, dept *Department) error
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id uint) error
	CountStudents(ctx context.Context, id uint) (int64, error)
	CountFaculty(ctx context.Context, id uint) (int64, error)
	ListStudents(ctx context.Context, id uint, limit int) ([]students.Student, error)
	ListFaculty(ctx context.Context, id uint) ([]faculty.Faculty, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Department, error) {
	var list []Department
	err := r.db.WithContext(ctx).
		Order("faculty_name ASC, name ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).First(&dept, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("department not found")
		}
		return nil, err
	}
	return &dept, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("department not found")
		}
		return nil, err
	}
	return &dept, nil
}

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Department{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apierr.NotFound("department not found")
	}
	return nil
}

func (r *repository) CountStudents(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&students.Student{}).
		Where("department_id = ?", id).Count(&count).Error
	return count, err
}

func (r *repository) CountFaculty(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&faculty.Faculty{}).
		Where("department_id = ?", id).Count(&count).Error
	return count, err
}

func (r *repository) ListStudents(ctx context.Context, id uint, limit int) ([]students.Student, error) {
	var list []students.Student
	err := r.db.WithContext(ctx).
		Where("department_id = ?", id).
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *repository) ListFaculty(ctx context.Context, id uint) ([]faculty.Faculty, error) {
	var list []faculty.Faculty
	err := r.db.WithContext(ctx).
		Where("department_id = ?", id).
		Find(&list).Error
	return list, err
}
