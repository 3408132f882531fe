package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"campus/internal/faculty"
	"campus/internal/shared/apierr"
	"campus/internal/students"
	"campus/internal/users"
	"campus/pkg/logger"
)

// Mailer delivers account emails. Send failures propagate to the caller
// so registration can roll back when the verification link cannot go out.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, name, token string, expiresAt time.Time) error
	SendPasswordResetEmail(ctx context.Context, to, name, token string, expiresAt time.Time) error
}

// WelcomeMailer is implemented by mailers that can also greet freshly
// verified accounts.
type WelcomeMailer interface {
	SendWelcomeEmail(ctx context.Context, userID uuid.UUID, email, name string) error
}

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)
	VerifyEmail(ctx context.Context, rawToken string) error
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *ResetPasswordRequest) error
}

type service struct {
	repo      Repository
	codec     *TokenCodec
	verifier  *VerificationTokenGenerator
	validator *RegistrationValidator
	mailer    Mailer
}

func NewService(repo Repository, codec *TokenCodec, verifier *VerificationTokenGenerator, validator *RegistrationValidator, mailer Mailer) Service {
	return &service{
		repo:      repo,
		codec:     codec,
		verifier:  verifier,
		validator: validator,
		mailer:    mailer,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	if err := s.validator.ValidateRegistration(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.Conflict("an account with this email already exists")
	}

	deptOK, err := s.repo.DepartmentExists(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	if !deptOK {
		return nil, apierr.Validation("department_id does not reference an existing department")
	}

	var dateOfBirth *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, apierr.Validation("date_of_birth must be in YYYY-MM-DD format")
		}
		dateOfBirth = &parsed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	verification, err := s.verifier.Generate()
	if err != nil {
		return nil, err
	}

	user := &users.User{
		Email:               req.Email,
		Password:            string(hashedPassword),
		Role:                users.Role(req.Role),
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		NationalID:          req.NationalID,
		DateOfBirth:         dateOfBirth,
		Gender:              req.Gender,
		PhoneNumber:         req.PhoneNumber,
		Address:             req.Address,
		City:                req.City,
		Country:             req.Country,
		IsVerified:          false,
		VerificationToken:   verification.Hash,
		VerificationExpires: &verification.ExpiresAt,
	}

	// Account, academic profile and the verification email hand-off are a
	// single unit: a failed email send rolls the registration back.
	err = s.repo.RunInTransaction(ctx, func(tx Repository) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}

		switch user.Role {
		case users.RoleStudent:
			number := req.StudentNumber
			if number == "" {
				number = generateMemberNumber("S")
			}
			if err := tx.CreateStudentProfile(ctx, &students.Student{
				UserID:        user.ID,
				DepartmentID:  req.DepartmentID,
				StudentNumber: number,
			}); err != nil {
				return err
			}
		case users.RoleFaculty:
			number := req.EmployeeNumber
			if number == "" {
				number = generateMemberNumber("F")
			}
			if err := tx.CreateFacultyProfile(ctx, &faculty.Faculty{
				UserID:         user.ID,
				DepartmentID:   req.DepartmentID,
				EmployeeNumber: number,
				Title:          req.Title,
				OfficeLocation: req.OfficeLocation,
				Specialization: req.Specialization,
				HireDate:       time.Now(),
				Status:         faculty.StatusActive,
			}); err != nil {
				return err
			}
		}

		return s.mailer.SendVerificationEmail(ctx, user.Email, user.FullName(), verification.Raw, verification.ExpiresAt)
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		User:    users.ToProfileResponse(user),
		Message: "registration successful, please check your email to verify your account",
	}, nil
}

func (s *service) VerifyEmail(ctx context.Context, rawToken string) error {
	user, err := s.repo.GetUserByVerificationToken(ctx, HashVerificationToken(rawToken))
	if err != nil {
		if err == ErrUserNotFound {
			return apierr.BadRequest("verification token is invalid or already used")
		}
		return err
	}

	if VerificationExpired(user.VerificationExpires, time.Now()) {
		return apierr.BadRequest("verification token has expired, please request a new one")
	}

	// One-time use: the stored hash is cleared on redemption.
	user.IsVerified = true
	user.VerificationToken = ""
	user.VerificationExpires = nil
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return err
	}

	// Welcome mail is best effort; verification already succeeded.
	if wm, ok := s.mailer.(WelcomeMailer); ok {
		if err := wm.SendWelcomeEmail(ctx, user.ID, user.Email, user.FullName()); err != nil {
			logger.GetDefault().Warn("failed to send welcome email", "email", user.Email, "error", err)
		}
	}
	return nil
}

func (s *service) ResendVerification(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			// No account enumeration: a missing address reports success.
			return nil
		}
		return err
	}
	if user.IsVerified {
		return apierr.BadRequest("this account is already verified")
	}

	verification, err := s.verifier.Generate()
	if err != nil {
		return err
	}
	user.VerificationToken = verification.Hash
	user.VerificationExpires = &verification.ExpiresAt
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return err
	}

	return s.mailer.SendVerificationEmail(ctx, user.Email, user.FullName(), verification.Raw, verification.ExpiresAt)
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validator.ValidateLogin(req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, apierr.InvalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apierr.InvalidCredentials()
	}

	if !user.IsVerified {
		return nil, apierr.UnverifiedAccount()
	}

	pair, err := s.codec.IssuePair(Principal{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         users.ToProfileResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.codec.VerifyKind(refreshToken, TokenKindRefresh)
	if err != nil {
		return nil, apierr.Unauthenticated(err)
	}

	// The account may have been deleted since issuance; a refresh against
	// a vanished account is a stale credential, not an internal error.
	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, apierr.StaleCredential()
		}
		return nil, err
	}

	// Fresh role is picked up here; outstanding access tokens keep their
	// issued role until expiry.
	return s.codec.IssuePair(Principal{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   string(user.Role),
	})
}

func (s *service) ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if err == ErrUserNotFound {
			return apierr.StaleCredential()
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return apierr.IncorrectPassword()
	}

	if err := s.validator.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdateUserPassword(ctx, userID, string(hashed))
}

func (s *service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil
		}
		return err
	}

	reset, err := s.verifier.Generate()
	if err != nil {
		return err
	}
	user.ResetToken = reset.Hash
	user.ResetExpires = &reset.ExpiresAt
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return err
	}

	return s.mailer.SendPasswordResetEmail(ctx, user.Email, user.FullName(), reset.Raw, reset.ExpiresAt)
}

func (s *service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	user, err := s.repo.GetUserByResetToken(ctx, HashVerificationToken(req.Token))
	if err != nil {
		if err == ErrUserNotFound {
			return apierr.BadRequest("reset token is invalid or already used")
		}
		return err
	}

	if VerificationExpired(user.ResetExpires, time.Now()) {
		return apierr.BadRequest("reset token has expired, please request a new one")
	}

	if err := s.validator.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	user.ResetToken = ""
	user.ResetExpires = nil
	return s.repo.UpdateUser(ctx, user)
}

// generateMemberNumber builds a fallback student/employee number when the
// payload omits one.
func generateMemberNumber(prefix string) string {
	return fmt.Sprintf("%s%d%06d", prefix, time.Now().Year(), time.Now().UnixNano()%1000000)
}
