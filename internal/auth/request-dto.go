package auth

// registration payload; student/faculty specific fields are gated by role
// in the registration validator, not by struct tags alone
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	Role       string `json:"role" validate:"required"`
	FirstName  string `json:"first_name" validate:"required,min=2,max=50"`
	LastName   string `json:"last_name" validate:"required,min=2,max=50"`
	NationalID string `json:"national_id" validate:"required,len=11,numeric"`

	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`

	DepartmentID uint `json:"department_id" validate:"required"`

	// student-only
	StudentNumber string `json:"student_number,omitempty"`

	// faculty-only
	EmployeeNumber string `json:"employee_number,omitempty"`
	Title          string `json:"title,omitempty"`
	OfficeLocation string `json:"office_location,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

// login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// email verification redemption
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// resend verification / forgot password request
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// password reset redemption
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// change password request (authenticated)
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// logout request
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}
