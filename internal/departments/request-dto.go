package departments

// department creation payload (admin only)
type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Code        string `json:"code" validate:"required,min=2,max=10"`
	FacultyName string `json:"faculty_name" validate:"required,min=2,max=100"`
}

// department update payload; empty fields keep their current value
type UpdateDepartmentRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Code        string `json:"code,omitempty" validate:"omitempty,min=2,max=10"`
	FacultyName string `json:"faculty_name,omitempty" validate:"omitempty,min=2,max=100"`
}
