package students

import (
	"context"

	"campus/internal/shared/apierr"
)

// academic record update payload; values outside the valid grade range
// are rejected before they reach storage
type UpdateAcademicRequest struct {
	GPA             *float64 `json:"gpa,omitempty"`
	CGPA            *float64 `json:"cgpa,omitempty"`
	CurrentSemester *int     `json:"current_semester,omitempty"`
}

type Service interface {
	GetOwnRecord(ctx context.Context, userID string) (*Student, error)
	GetByID(ctx context.Context, id string) (*Student, error)
	List(ctx context.Context, departmentID uint) ([]Student, error)
	UpdateAcademic(ctx context.Context, id string, req *UpdateAcademicRequest) (*Student, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetOwnRecord(ctx context.Context, userID string) (*Student, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Student, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, departmentID uint) ([]Student, error) {
	return s.repo.List(ctx, departmentID)
}

func (s *service) UpdateAcademic(ctx context.Context, id string, req *UpdateAcademicRequest) (*Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.GPA != nil {
		if *req.GPA < 0 || *req.GPA > 4 {
			return nil, apierr.Validation("gpa must be between 0.0 and 4.0")
		}
		student.GPA = *req.GPA
	}
	if req.CGPA != nil {
		if *req.CGPA < 0 || *req.CGPA > 4 {
			return nil, apierr.Validation("cgpa must be between 0.0 and 4.0")
		}
		student.CGPA = *req.CGPA
	}
	if req.CurrentSemester != nil {
		if *req.CurrentSemester < 1 {
			return nil, apierr.Validation("current_semester must be at least 1")
		}
		student.CurrentSemester = *req.CurrentSemester
	}

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}
