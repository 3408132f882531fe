package faculty

import (
	"time"

	"github.com/google/uuid"
)

// Titles is the closed list of academic titles a faculty member may hold.
var Titles = []string{
	"Prof. Dr.",
	"Assoc. Prof. Dr.",
	"Asst. Prof. Dr.",
	"Research Assistant",
	"Lecturer",
	"Instructor",
}

func IsValidTitle(title string) bool {
	for _, t := range Titles {
		if t == title {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusActive  Status = "active"
	StatusOnLeave Status = "on_leave"
	StatusRetired Status = "retired"
)

// Faculty is the academic profile attached to a user account with the
// faculty role.
type Faculty struct {
	ID             uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	DepartmentID   uint      `json:"department_id" gorm:"not null;index"`
	EmployeeNumber string    `json:"employee_number" gorm:"uniqueIndex;not null"`
	Title          string    `json:"title" gorm:"not null"`
	OfficeLocation string    `json:"office_location,omitempty"`
	OfficePhone    string    `json:"office_phone,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	HireDate       time.Time `json:"hire_date"`
	Status         Status    `json:"status" gorm:"not null;default:'active'"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
