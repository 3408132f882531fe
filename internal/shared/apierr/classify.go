package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Classify maps any internal failure to the client-facing status code and
// message. It is the only layer allowed to shape user-visible error text;
// raw storage or library messages never pass through. Unmatched errors fall
// through to the 500 branch.
func Classify(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, "internal server error"
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed.Status(), typed.Message
	}

	// Unique constraint violations surface as a generic conflict so the
	// violated column name never leaks.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return http.StatusBadRequest, "this record already exists"
		case pgerrcode.InvalidTextRepresentation:
			return http.StatusBadRequest, "invalid identifier format"
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return http.StatusBadRequest, "this record already exists"
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		messages := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			messages = append(messages, fieldMessage(fe))
		}
		return http.StatusBadRequest, strings.Join(messages, ", ")
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return http.StatusUnauthorized, "token has expired, please log in again"
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return http.StatusUnauthorized, "invalid token, please log in again"
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, "record not found"
	}

	return http.StatusInternalServerError, "internal server error"
}

// fieldMessage rewrites a validator violation into a stable field-level
// message instead of exposing the library's default text.
func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
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
