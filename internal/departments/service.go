package departments

import (
	"context"
	"errors"

	"campus/internal/shared/apierr"
	"campus/internal/shared/constants"
	"campus/pkg/cache"
)

// member preview size on the detail endpoint
const studentPreviewLimit = 10

type Service interface {
	List(ctx context.Context) ([]Department, error)
	GetByID(ctx context.Context, id uint) (*DetailResponse, error)
	Create(ctx context.Context, req *CreateDepartmentRequest) (*Department, error)
	Update(ctx context.Context, id uint, req *UpdateDepartmentRequest) (*Department, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context, id uint) (*StatsResponse, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService builds the department service. cache may be nil, in which
// case every read goes to the database. TTLs come from the shared cache
// registry.
func NewService(repo Repository, cacheSvc cache.Service) Service {
	return &service{repo: repo, cache: cacheSvc}
}

// List serves the public department catalogue, cache-aside.
func (s *service) List(ctx context.Context) ([]Department, error) {
	if s.cache == nil {
		return s.repo.List(ctx)
	}

	var list []Department
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_DEPARTMENTS_LIST, constants.TTL_DEPARTMENTS_LIST, func() (interface{}, error) {
		return s.repo.List(ctx)
	}, &list)
	if err != nil {
		// Redis trouble must not take the catalogue down.
		return s.repo.List(ctx)
	}
	return list, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*DetailResponse, error) {
	if s.cache != nil {
		var cached DetailResponse
		err := s.cache.GetOrSet(ctx, constants.BuildDepartmentDetailKey(id), constants.TTL_DEPARTMENT_DETAIL, func() (interface{}, error) {
			return s.buildDetail(ctx, id)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
		var typed *apierr.Error
		if errors.As(err, &typed) {
			return nil, err
		}
	}
	return s.buildDetail(ctx, id)
}

func (s *service) buildDetail(ctx context.Context, id uint) (*DetailResponse, error) {
	dept, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	studentPreview, err := s.repo.ListStudents(ctx, id, studentPreviewLimit)
	if err != nil {
		return nil, err
	}
	facultyMembers, err := s.repo.ListFaculty(ctx, id)
	if err != nil {
		return nil, err
	}

	return &DetailResponse{
		Department:     *dept,
		Students:       studentPreview,
		FacultyMembers: facultyMembers,
	}, nil
}

func (s *service) Create(ctx context.Context, req *CreateDepartmentRequest) (*Department, error) {
	if err := s.ensureCodeFree(ctx, req.Code, 0); err != nil {
		return nil, err
	}

	dept := &Department{
		Name:        req.Name,
		Code:        req.Code,
		FacultyName: req.FacultyName,
	}
	if err := s.repo.Create(ctx, dept); err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	return dept, nil
}

func (s *service) Update(ctx context.Context, id uint, req *UpdateDepartmentRequest) (*Department, error) {
	dept, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != "" && req.Code != dept.Code {
		if err := s.ensureCodeFree(ctx, req.Code, id); err != nil {
			return nil, err
		}
		dept.Code = req.Code
	}
	if req.Name != "" {
		dept.Name = req.Name
	}
	if req.FacultyName != "" {
		dept.FacultyName = req.FacultyName
	}

	if err := s.repo.Update(ctx, dept); err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	return dept, nil
}

// Delete refuses while the department still has members, so accounts
// never end up pointing at a missing department.
func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	studentCount, err := s.repo.CountStudents(ctx, id)
	if err != nil {
		return err
	}
	facultyCount, err := s.repo.CountFaculty(ctx, id)
	if err != nil {
		return err
	}
	if studentCount > 0 || facultyCount > 0 {
		return apierr.BadRequest("this department still has registered students or faculty members, remove them first")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateList(ctx)
	return nil
}

func (s *service) Stats(ctx context.Context, id uint) (*StatsResponse, error) {
	if s.cache != nil {
		var cached StatsResponse
		err := s.cache.GetOrSet(ctx, constants.BuildDepartmentStatsKey(id), constants.TTL_DEPARTMENT_STATS, func() (interface{}, error) {
			return s.computeStats(ctx, id)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
		// NotFound and other typed errors pass through untouched.
		var typed *apierr.Error
		if errors.As(err, &typed) {
			return nil, err
		}
	}
	return s.computeStats(ctx, id)
}

func (s *service) computeStats(ctx context.Context, id uint) (*StatsResponse, error) {
	dept, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	studentCount, err := s.repo.CountStudents(ctx, id)
	if err != nil {
		return nil, err
	}
	facultyCount, err := s.repo.CountFaculty(ctx, id)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		DepartmentID: dept.ID,
		Name:         dept.Name,
		Code:         dept.Code,
		StudentCount: studentCount,
		FacultyCount: facultyCount,
	}, nil
}

func (s *service) ensureCodeFree(ctx context.Context, code string, selfID uint) error {
	existing, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		var typed *apierr.Error
		if errors.As(err, &typed) && typed.Kind == apierr.KindNotFound {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apierr.Conflict("a department with this code already exists")
	}
	return nil
}

func (s *service) invalidateList(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_DEPARTMENTS)
	}
}
