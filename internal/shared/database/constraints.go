package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes AutoMigrate does not cover.
func MigrateConstraints(db *gorm.DB) error {
	// Partial index so verification lookups skip rows whose token was
	// already consumed.
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_users_verification_token_pending
		ON users (verification_token)
		WHERE verification_token IS NOT NULL AND verification_token != '';
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_users_reset_token_pending
		ON users (reset_token)
		WHERE reset_token IS NOT NULL AND reset_token != '';
	`).Error
	if err != nil {
		return err
	}

	// Department rosters are always filtered by department_id.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_students_department_id
		ON students (department_id);
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_faculties_department_id
		ON faculties (department_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
