package users

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles carried inside tokens.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFaculty Role = "faculty"
	RoleStudent Role = "student"
)

func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleAdmin, RoleFaculty, RoleStudent:
		return true
	default:
		return false
	}
}

// RegistrationRoles lists the roles a caller may self-register with.
// Admin accounts are only created by the seeder or another admin.
func RegistrationRoles() []Role {
	return []Role{RoleStudent, RoleFaculty}
}

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"not null;default:'student'"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`

	// National identity number, 11 numeric digits.
	NationalID string `json:"national_id" gorm:"column:national_id;uniqueIndex;not null"`

	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	Address      string     `json:"address,omitempty"`
	City         string     `json:"city,omitempty"`
	Country      string     `json:"country,omitempty"`
	ProfileImage string     `json:"profile_image,omitempty"`

	// Email verification state. Only the sha256 hash of the verification
	// token is stored; the raw value exists solely in the outbound email.
	IsVerified          bool       `json:"is_verified" gorm:"not null;default:false"`
	VerificationToken   string     `json:"-" gorm:"index"`
	VerificationExpires *time.Time `json:"-"`

	// Password reset state, same hashed single-use token scheme.
	ResetToken   string     `json:"-" gorm:"index"`
	ResetExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
