package departments

import "time"

// Department identifiers are small stable integers, unlike the uuid
// accounts; codes are short unique mnemonics (CENG, EEE, ...).
type Department struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Code        string    `json:"code" gorm:"uniqueIndex;not null"`
	FacultyName string    `json:"faculty_name" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
