package departments

import (
	"context"
	"testing"

	"campus/internal/faculty"
	"campus/internal/shared/apierr"
	"campus/internal/students"
	"campus/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	departments map[uint]*Department
	nextID      uint

	studentCounts map[uint]int64
	facultyCounts map[uint]int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		departments:   make(map[uint]*Department),
		nextID:        1,
		studentCounts: make(map[uint]int64),
		facultyCounts: make(map[uint]int64),
	}
}

func (r *stubRepo) List(ctx context.Context) ([]Department, error) {
	out := make([]Department, 0, len(r.departments))
	for _, d := range r.departments {
		out = append(out, *d)
	}
	return out, nil
}

func (r *stubRepo) GetByID(ctx context.Context, id uint) (*Department, error) {
	if d, ok := r.departments[id]; ok {
		return d, nil
	}
	return nil, apierr.NotFound("department not found")
}

func (r *stubRepo) GetByCode(ctx context.Context, code string) (*Department, error) {
	for _, d := range r.departments {
		if d.Code == code {
			return d, nil
		}
	}
	return nil, apierr.NotFound("department not found")
}

func (r *stubRepo) Create(ctx context.Context, dept *Department) error {
	dept.ID = r.nextID
	r.nextID++
	r.departments[dept.ID] = dept
	return nil
}

func (r *stubRepo) Update(ctx context.Context, dept *Department) error {
	r.departments[dept.ID] = dept
	return nil
}

func (r *stubRepo) Delete(ctx context.Context, id uint) error {
	delete(r.departments, id)
	return nil
}

func (r *stubRepo) CountStudents(ctx context.Context, id uint) (int64, error) {
	return r.studentCounts[id], nil
}

func (r *stubRepo) CountFaculty(ctx context.Context, id uint) (int64, error) {
	return r.facultyCounts[id], nil
}

func (r *stubRepo) ListStudents(ctx context.Context, id uint, limit int) ([]students.Student, error) {
	return nil, nil
}

func (r *stubRepo) ListFaculty(ctx context.Context, id uint) ([]faculty.Faculty, error) {
	return nil, nil
}

func seedDepartment(t *testing.T, repo *stubRepo) *Department {
	t.Helper()
	dept := &Department{Name: "Computer Engineering", Code: "CENG", FacultyName: "Faculty of Engineering"}
	require.NoError(t, repo.Create(context.Background(), dept))
	return dept
}

func TestCreate(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, nil)

	dept, err := svc.Create(context.Background(), &CreateDepartmentRequest{
		Name:        "Mathematics",
		Code:        "MATH",
		FacultyName: "Faculty of Science",
	})
	require.NoError(t, err)
	require.NotZero(t, dept.ID)
	require.Equal(t, "MATH", dept.Code)
}

func TestCreate_DuplicateCode(t *testing.T) {
	repo := newStubRepo()
	seedDepartment(t, repo)
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), &CreateDepartmentRequest{
		Name:        "Another",
		Code:        "CENG",
		FacultyName: "Faculty of Engineering",
	})
	var typed *apierr.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, apierr.KindConflict, typed.Kind)
}

func TestUpdate(t *testing.T) {
	repo := newStubRepo()
	dept := seedDepartment(t, repo)
	svc := NewService(repo, nil)

	updated, err := svc.Update(context.Background(), dept.ID, &UpdateDepartmentRequest{Name: "Software Engineering"})
	require.NoError(t, err)
	require.Equal(t, "Software Engineering", updated.Name)
	// Empty fields keep their current value.
	require.Equal(t, "CENG", updated.Code)
}

func TestUpdate_CodeTakenByOther(t *testing.T) {
	repo := newStubRepo()
	dept := seedDepartment(t, repo)
	other := &Department{Name: "Mathematics", Code: "MATH", FacultyName: "Faculty of Science"}
	require.NoError(t, repo.Create(context.Background(), other))
	svc := NewService(repo, nil)

	_, err := svc.Update(context.Background(), dept.ID, &UpdateDepartmentRequest{Code: "MATH"})
	var typed *apierr.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, apierr.KindConflict, typed.Kind)
}

func TestDelete_RefusesWithMembers(t *testing.T) {
	repo := newStubRepo()
	dept := seedDepartment(t, repo)
	repo.studentCounts[dept.ID] = 3
	svc := NewService(repo, nil)

	err := svc.Delete(context.Background(), dept.ID)
	var typed *apierr.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, apierr.KindBadRequest, typed.Kind)

	// Still present afterwards.
	_, err = svc.GetByID(context.Background(), dept.ID)
	require.NoError(t, err)
}

func TestDelete_Empty(t *testing.T) {
	repo := newStubRepo()
	dept := seedDepartment(t, repo)
	svc := NewService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), dept.ID))

	_, err := svc.GetByID(context.Background(), dept.ID)
	var typed *apierr.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, apierr.KindNotFound, typed.Kind)
}

func TestGetByID_CachedDetailInvalidatedOnUpdate(t *testing.T) {
	repo := newStubRepo()
	dept := seedDepartment(t, repo)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	svc := NewService(repo, cache.NewService(client))
	ctx := context.Background()

	detail, err := svc.GetByID(ctx, dept.ID)
	require.NoError(t, err)
	require.Equal(t, "Computer Engineering", detail.Name)

	// A change behind the service's back is not visible while cached.
	dept.Name = "Stale"
	detail, err = svc.GetByID(ctx, dept.ID)
	require.NoError(t, err)
	require.Equal(t, "Computer Engineering", detail.Name)

	// Admin mutations drop every department key.
	_, err = svc.Update(ctx, dept.ID, &UpdateDepartmentRequest{Name: "Software Engineering"})
	require.NoError(t, err)

	detail, err = svc.GetByID(ctx, dept.ID)
	require.NoError(t, err)
	require.Equal(t, "Software Engineering", detail.Name)
}

func TestStats(t *testing.T) {
	repo := newStubRepo()
	dept := seedDepartment(t, repo)
	repo.studentCounts[dept.ID] = 41
	repo.facultyCounts[dept.ID] = 7
	svc := NewService(repo, nil)

	stats, err := svc.Stats(context.Background(), dept.ID)
	require.NoError(t, err)
	require.Equal(t, dept.ID, stats.DepartmentID)
	require.Equal(t, int64(41), stats.StudentCount)
	require.Equal(t, int64(7), stats.FacultyCount)
}

func TestStats_UnknownDepartment(t *testing.T) {
	svc := NewService(newStubRepo(), nil)

	_, err := svc.Stats(context.Background(), 99)
	var typed *apierr.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, apierr.KindNotFound, typed.Kind)
}
