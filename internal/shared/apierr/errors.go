package apierr

import (
	"fmt"
	"net/http"
	"strings"
)

// Kind identifies a failure class. Every error that reaches the HTTP
// boundary is classified into exactly one kind.
type Kind int

const (
	KindInternal Kind = iota
	KindConflict
	KindInvalidID
	KindValidation
	KindUnauthenticated
	KindMissingCredential
	KindStaleCredential
	KindForbidden
	KindUpload
	KindNotFound
	KindBadRequest
)

// Error is a typed failure carried from services up to the classifier.
// Message is already safe to show to a client; the wrapped cause is not.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Status returns the HTTP status for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindConflict, KindInvalidID, KindValidation, KindUpload, KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthenticated, KindMissingCredential, KindStaleCredential:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func InvalidID() *Error {
	return &Error{Kind: KindInvalidID, Message: "invalid identifier format"}
}

// Validation joins one message per violated field into a single failure.
func Validation(messages ...string) *Error {
	return &Error{Kind: KindValidation, Message: strings.Join(messages, ", ")}
}

// Unauthenticated deliberately hides which verification step failed.
func Unauthenticated(cause error) *Error {
	return &Error{
		Kind:    KindUnauthenticated,
		Message: "invalid or expired token, please log in again",
		cause:   cause,
	}
}

func MissingCredential() *Error {
	return &Error{Kind: KindMissingCredential, Message: "you must be signed in to perform this action"}
}

// StaleCredential covers tokens whose account no longer exists.
func StaleCredential() *Error {
	return &Error{Kind: KindStaleCredential, Message: "the account for this token no longer exists"}
}

// Forbidden names the roles that would have been accepted.
func Forbidden(roles ...string) *Error {
	return &Error{
		Kind:    KindForbidden,
		Message: fmt.Sprintf("you are not permitted to perform this action, required role(s): %s", strings.Join(roles, ", ")),
	}
}

func Upload(message string) *Error {
	return &Error{Kind: KindUpload, Message: message}
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// InvalidCredentials keeps login failures indistinguishable between an
// unknown email and a wrong password.
func InvalidCredentials() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "invalid email or password"}
}

func IncorrectPassword() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "current password is incorrect"}
}

// UnverifiedAccount rejects logins until the email address is confirmed.
func UnverifiedAccount() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "please verify your email address before logging in"}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", cause: cause}
}
