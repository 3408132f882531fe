package faculty

import (
	"context"
	"fmt"
	"strings"

	"campus/internal/shared/apierr"
)

// office/title update payload for a faculty member's own record
type UpdateFacultyRequest struct {
	Title          string `json:"title,omitempty"`
	OfficeLocation string `json:"office_location,omitempty"`
	OfficePhone    string `json:"office_phone,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

type Service interface {
	GetOwnRecord(ctx context.Context, userID string) (*Faculty, error)
	GetByID(ctx context.Context, id string) (*Faculty, error)
	List(ctx context.Context, departmentID uint) ([]Faculty, error)
	UpdateOwnRecord(ctx context.Context, userID string, req *UpdateFacultyRequest) (*Faculty, error)
	SetStatus(ctx context.Context, id string, status Status) (*Faculty, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetOwnRecord(ctx context.Context, userID string) (*Faculty, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Faculty, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, departmentID uint) ([]Faculty, error) {
	return s.repo.List(ctx, departmentID)
}

func (s *service) UpdateOwnRecord(ctx context.Context, userID string, req *UpdateFacultyRequest) (*Faculty, error) {
	member, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		if !IsValidTitle(req.Title) {
			return nil, apierr.Validation(fmt.Sprintf("title must be one of: %s", strings.Join(Titles, ", ")))
		}
		member.Title = req.Title
	}
	if req.OfficeLocation != "" {
		member.OfficeLocation = req.OfficeLocation
	}
	if req.OfficePhone != "" {
		member.OfficePhone = req.OfficePhone
	}
	if req.Specialization != "" {
		member.Specialization = req.Specialization
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *service) SetStatus(ctx context.Context, id string, status Status) (*Faculty, error) {
	switch status {
	case StatusActive, StatusOnLeave, StatusRetired:
	default:
		return nil, apierr.Validation("status must be one of: active, on_leave, retired")
	}

	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member.Status = status
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}
