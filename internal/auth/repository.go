package auth

import (
	"context"
	"errors"

	"campus/internal/departments"
	"campus/internal/faculty"
	"campus/internal/students"
	"campus/internal/users"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	CreateUser(ctx context.Context, user *users.User) error
	CreateStudentProfile(ctx context.Context, profile *students.Student) error
	CreateFacultyProfile(ctx context.Context, profile *faculty.Faculty) error
	GetUserByEmail(ctx context.Context, email string) (*users.User, error)
	GetUserByID(ctx context.Context, id string) (*users.User, error)
	GetUserByVerificationToken(ctx context.Context, tokenHash string) (*users.User, error)
	GetUserByResetToken(ctx context.Context, tokenHash string) (*users.User, error)
	UpdateUser(ctx context.Context, user *users.User) error
	UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error
	EmailExists(ctx context.Context, email string) (bool, error)
	DepartmentExists(ctx context.Context, id uint) (bool, error)

	// RunInTransaction executes fn against a repository bound to a single
	// transaction; any error rolls the whole registration back.
	RunInTransaction(ctx context.Context, fn func(txRepo Repository) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(ctx context.Context, user *users.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) CreateStudentProfile(ctx context.Context, profile *students.Student) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *repository) CreateFacultyProfile(ctx context.Context, profile *faculty.Faculty) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.getUser(ctx, "email = ?", email)
}

func (r *repository) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	return r.getUser(ctx, "id = ?", id)
}

func (r *repository) GetUserByVerificationToken(ctx context.Context, tokenHash string) (*users.User, error) {
	return r.getUser(ctx, "verification_token = ?", tokenHash)
}

func (r *repository) GetUserByResetToken(ctx context.Context, tokenHash string) (*users.User, error) {
	return r.getUser(ctx, "reset_token = ?", tokenHash)
}

func (r *repository) getUser(ctx context.Context, query string, args ...interface{}) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) UpdateUser(ctx context.Context, user *users.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *repository) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&users.User{}).
		Where("id = ?", userID).
		Update("password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&users.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) DepartmentExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&departments.Department{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) RunInTransaction(ctx context.Context, fn func(txRepo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}
