package database

import (
	"campus/internal/departments"
	"campus/internal/faculty"
	"campus/internal/students"
	"campus/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&departments.Department{},
		&users.User{},
		&students.Student{},
		&faculty.Faculty{},
	)
}
