package students

import (
	"time"

	"github.com/google/uuid"
)

// Student is the academic profile attached to a user account with the
// student role. Created during registration, in the same transaction as
// the account itself.
type Student struct {
	ID              uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID          uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	DepartmentID    uint      `json:"department_id" gorm:"not null;index"`
	StudentNumber   string    `json:"student_number" gorm:"uniqueIndex;not null"`
	GPA             float64   `json:"gpa" gorm:"default:0"`
	CGPA            float64   `json:"cgpa" gorm:"default:0"`
	CurrentSemester int       `json:"current_semester" gorm:"default:1"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
