package departments

import (
	"campus/internal/faculty"
	"campus/internal/students"
)

// department detail with a bounded member preview
type DetailResponse struct {
	Department
	Students       []students.Student `json:"students"`
	FacultyMembers []faculty.Faculty  `json:"faculty_members"`
}

// department statistics
type StatsResponse struct {
	DepartmentID uint   `json:"department_id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	StudentCount int64  `json:"student_count"`
	FacultyCount int64  `json:"faculty_count"`
}
