package auth

import (
	"fmt"
	"strings"
	"unicode"

	"campus/internal/faculty"
	"campus/internal/shared/apierr"
	"campus/internal/shared/config"
	"campus/internal/users"

	"github.com/go-playground/validator/v10"
)

// RegistrationValidator checks registration and login payloads before any
// business logic runs. Structural rules live in struct tags; the
// role-conditional rules (required or forbidden depending on the role
// discriminant) and the password policy are applied here so that every
// violated field produces its own message.
type RegistrationValidator struct {
	validate *validator.Validate
	policy   config.PasswordConfig
}

func NewRegistrationValidator(policy config.PasswordConfig) *RegistrationValidator {
	return &RegistrationValidator{
		validate: validator.New(),
		policy:   policy,
	}
}

// ValidateRegistration collects all violations and returns a single
// validation failure carrying one message per field.
func (rv *RegistrationValidator) ValidateRegistration(req *RegisterRequest) error {
	var messages []string

	if err := rv.validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				messages = append(messages, tagMessage(fe))
			}
		} else {
			return apierr.Internal(err)
		}
	}

	if req.Password != "" {
		messages = append(messages, rv.passwordViolations(req.Password)...)
	}

	messages = append(messages, roleViolations(req)...)

	if len(messages) > 0 {
		return apierr.Validation(messages...)
	}
	return nil
}

// ValidateLogin requires only email format and password presence.
func (rv *RegistrationValidator) ValidateLogin(req *LoginRequest) error {
	if err := rv.validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			messages := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				messages = append(messages, tagMessage(fe))
			}
			return apierr.Validation(messages...)
		}
		return apierr.Internal(err)
	}
	return nil
}

// ValidatePassword applies the complexity policy alone, for the password
// change and reset flows.
func (rv *RegistrationValidator) ValidatePassword(password string) error {
	if violations := rv.passwordViolations(password); len(violations) > 0 {
		return apierr.Validation(violations...)
	}
	return nil
}

func (rv *RegistrationValidator) passwordViolations(password string) []string {
	var messages []string
	if len(password) < rv.policy.MinLength {
		messages = append(messages, fmt.Sprintf("password must be at least %d characters", rv.policy.MinLength))
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if (rv.policy.RequireUpper && !hasUpper) ||
		(rv.policy.RequireLower && !hasLower) ||
		(rv.policy.RequireDigit && !hasDigit) {
		messages = append(messages, "password must contain at least one upper-case letter, one lower-case letter and one digit")
	}
	return messages
}

// roleViolations enforces the tagged-union shape of the payload: which
// fields are required and which are forbidden follows the role field.
// Only the self-registration roles are accepted; admin accounts are
// provisioned, never registered.
func roleViolations(req *RegisterRequest) []string {
	var messages []string

	switch req.Role {
	case "":
		// the required tag already reported it
	case "faculty":
		if req.Title == "" {
			messages = append(messages, "title is required for faculty registration")
		} else if !faculty.IsValidTitle(req.Title) {
			messages = append(messages, fmt.Sprintf("title must be one of: %s", strings.Join(faculty.Titles, ", ")))
		}
		if req.StudentNumber != "" {
			messages = append(messages, "student_number is not allowed for faculty registration")
		}
	case "student":
		if req.Title != "" {
			messages = append(messages, "title is not allowed for student registration")
		}
		if req.EmployeeNumber != "" {
			messages = append(messages, "employee_number is not allowed for student registration")
		}
		if req.OfficeLocation != "" {
			messages = append(messages, "office_location is not allowed for student registration")
		}
		if req.Specialization != "" {
			messages = append(messages, "specialization is not allowed for student registration")
		}
	default:
		allowed := make([]string, 0, len(users.RegistrationRoles()))
		for _, role := range users.RegistrationRoles() {
			allowed = append(allowed, string(role))
		}
		messages = append(messages, fmt.Sprintf("role must be one of: %s", strings.Join(allowed, ", ")))
	}
	return messages
}

// tagMessage rewrites a struct-tag violation into the stable per-field
// message format shared with the classifier.
func tagMessage(fe validator.FieldError) string {
	field := jsonFieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// jsonFieldName maps the Go field name to its snake_case JSON name so the
// messages match what the client actually sent.
func jsonFieldName(fe validator.FieldError) string {
	var b strings.Builder
	for i, r := range fe.Field() {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(b.String(), "i_d", "id")
}
