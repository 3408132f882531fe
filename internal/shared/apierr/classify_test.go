package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "typed conflict",
			err:        Conflict("an account with this email already exists"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "an account with this email already exists",
		},
		{
			name:       "typed validation",
			err:        Validation("email is required", "password is required"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "email is required, password is required",
		},
		{
			name:       "typed invalid id",
			err:        InvalidID(),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid identifier format",
		},
		{
			name:       "typed missing credential",
			err:        MissingCredential(),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "you must be signed in to perform this action",
		},
		{
			name:       "typed stale credential",
			err:        StaleCredential(),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "the account for this token no longer exists",
		},
		{
			name:       "typed forbidden names the accepted roles",
			err:        Forbidden("admin", "faculty"),
			wantStatus: http.StatusForbidden,
			wantMsg:    "you are not permitted to perform this action, required role(s): admin, faculty",
		},
		{
			name:       "typed not found",
			err:        NotFound("department not found"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "department not found",
		},
		{
			name:       "wrapped typed error keeps its classification",
			err:        fmt.Errorf("saving department: %w", Conflict("a department with this code already exists")),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "a department with this code already exists",
		},
		{
			name:       "postgres unique violation hides the column",
			err:        &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "this record already exists",
		},
		{
			name:       "postgres invalid text representation",
			err:        &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid identifier format",
		},
		{
			name:       "gorm duplicated key",
			err:        gorm.ErrDuplicatedKey,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "this record already exists",
		},
		{
			name:       "expired token",
			err:        jwt.ErrTokenExpired,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "token has expired, please log in again",
		},
		{
			name:       "malformed token",
			err:        jwt.ErrTokenMalformed,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid token, please log in again",
		},
		{
			name:       "bad signature",
			err:        jwt.ErrTokenSignatureInvalid,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid token, please log in again",
		},
		{
			name:       "record not found",
			err:        gorm.ErrRecordNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "record not found",
		},
		{
			name:       "unknown errors never leak their text",
			err:        errors.New("dial tcp 10.0.0.5:5432: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
		{
			name:       "nil defaults to internal",
			err:        nil,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Classify(tt.err)
			require.Equal(t, tt.wantStatus, status)
			require.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestClassify_ValidatorFieldErrors(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required,min=2"`
	}

	v := validator.New()
	err := v.Struct(payload{Email: "nope", Name: "x"})
	require.Error(t, err)

	status, msg := Classify(err)
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, msg, "email must be a valid email address")
	require.Contains(t, msg, "name must be at least 2 characters")
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Internal(cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "internal server error")
	require.Contains(t, err.Error(), "boom")
}
