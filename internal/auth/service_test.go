package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus/internal/faculty"
	"campus/internal/shared/apierr"
	"campus/internal/shared/config"
	"campus/internal/students"
	"campus/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// stubRepo is an in-memory Repository. RunInTransaction applies fn
// against a snapshot copy and only commits it back when fn succeeds,
// mirroring rollback semantics.
type stubRepo struct {
	users    map[string]*users.User // keyed by email
	students []students.Student
	faculty  []faculty.Faculty

	departments map[uint]bool
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		users:       make(map[string]*users.User),
		departments: map[uint]bool{1: true},
	}
}

func (r *stubRepo) CreateUser(ctx context.Context, user *users.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.Email] = user
	return nil
}

func (r *stubRepo) CreateStudentProfile(ctx context.Context, profile *students.Student) error {
	r.students = append(r.students, *profile)
	return nil
}

func (r *stubRepo) CreateFacultyProfile(ctx context.Context, profile *faculty.Faculty) error {
	r.faculty = append(r.faculty, *profile)
	return nil
}

func (r *stubRepo) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (r *stubRepo) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	for _, u := range r.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *stubRepo) GetUserByVerificationToken(ctx context.Context, tokenHash string) (*users.User, error) {
	for _, u := range r.users {
		if u.VerificationToken != "" && u.VerificationToken == tokenHash {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *stubRepo) GetUserByResetToken(ctx context.Context, tokenHash string) (*users.User, error) {
	for _, u := range r.users {
		if u.ResetToken != "" && u.ResetToken == tokenHash {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *stubRepo) UpdateUser(ctx context.Context, user *users.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *stubRepo) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	for _, u := range r.users {
		if u.ID.String() == userID {
			u.Password = hashedPassword
			return nil
		}
	}
	return ErrUserNotFound
}

func (r *stubRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *stubRepo) DepartmentExists(ctx context.Context, id uint) (bool, error) {
	return r.departments[id], nil
}

func (r *stubRepo) RunInTransaction(ctx context.Context, fn func(txRepo Repository) error) error {
	tx := &stubRepo{
		users:       make(map[string]*users.User, len(r.users)),
		students:    append([]students.Student(nil), r.students...),
		faculty:     append([]faculty.Faculty(nil), r.faculty...),
		departments: r.departments,
	}
	for k, v := range r.users {
		tx.users[k] = v
	}

	if err := fn(tx); err != nil {
		return err
	}

	r.users = tx.users
	r.students = tx.students
	r.faculty = tx.faculty
	return nil
}

// stubMailer records sends and can be told to fail.
type stubMailer struct {
	verificationSent int
	resetSent        int
	lastToken        string
	fail             error
}

func (m *stubMailer) SendVerificationEmail(ctx context.Context, to, name, token string, expiresAt time.Time) error {
	if m.fail != nil {
		return m.fail
	}
	m.verificationSent++
	m.lastToken = token
	return nil
}

func (m *stubMailer) SendPasswordResetEmail(ctx context.Context, to, name, token string, expiresAt time.Time) error {
	if m.fail != nil {
		return m.fail
	}
	m.resetSent++
	m.lastToken = token
	return nil
}

func newTestService(repo Repository, mailer Mailer) Service {
	codec := NewTokenCodec(config.JWTConfig{
		Secret:           "test-secret-at-least-32-bytes-long!",
		Issuer:           "campus-test",
		AccessExpiresIn:  15 * time.Minute,
		RefreshExpiresIn: 7 * 24 * time.Hour,
	})
	verifier := NewVerificationTokenGenerator(24 * time.Hour)
	validator := NewRegistrationValidator(config.PasswordConfig{
		MinLength:    8,
		RequireUpper: true,
		RequireLower: true,
		RequireDigit: true,
	})
	return NewService(repo, codec, verifier, validator, mailer)
}

func requireKind(t *testing.T, err error, kind apierr.Kind) *apierr.Error {
	t.Helper()
	var typed *apierr.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, kind, typed.Kind)
	return typed
}

func TestRegister_Student(t *testing.T) {
	repo := newStubRepo()
	mailer := &stubMailer{}
	svc := newTestService(repo, mailer)

	resp, err := svc.Register(context.Background(), validStudentRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	require.Equal(t, "ada@campus.edu", resp.User.Email)

	created := repo.users["ada@campus.edu"]
	require.NotNil(t, created)
	require.False(t, created.IsVerified)
	require.NotEmpty(t, created.VerificationToken)
	require.NotEqual(t, "Sifre1234", created.Password, "password must be stored hashed")

	require.Len(t, repo.students, 1)
	require.Equal(t, created.ID, repo.students[0].UserID)
	require.NotEmpty(t, repo.students[0].StudentNumber)

	require.Equal(t, 1, mailer.verificationSent)
	// The mailed token is the raw value; storage holds only its hash.
	require.Equal(t, created.VerificationToken, HashVerificationToken(mailer.lastToken))
}

func TestRegister_Faculty(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo, &stubMailer{})

	_, err := svc.Register(context.Background(), validFacultyRequest())
	require.NoError(t, err)

	require.Len(t, repo.faculty, 1)
	require.Equal(t, "Lecturer", repo.faculty[0].Title)
	require.Equal(t, faculty.StatusActive, repo.faculty[0].Status)
	require.Empty(t, repo.students)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo, &stubMailer{})

	_, err := svc.Register(context.Background(), validStudentRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validStudentRequest())
	typed := requireKind(t, err, apierr.KindConflict)
	require.Equal(t, 400, typed.Status())
}

func TestRegister_UnknownDepartment(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo, &stubMailer{})

	req := validStudentRequest()
	req.DepartmentID = 99
	_, err := svc.Register(context.Background(), req)
	requireKind(t, err, apierr.KindValidation)
}

func TestRegister_MailFailureRollsBack(t *testing.T) {
	repo := newStubRepo()
	mailer := &stubMailer{fail: errors.New("smtp unreachable")}
	svc := newTestService(repo, mailer)

	_, err := svc.Register(context.Background(), validStudentRequest())
	require.Error(t, err)

	// Nothing committed: the account does not exist afterwards.
	require.Empty(t, repo.users)
	require.Empty(t, repo.students)
}

func TestVerifyEmail(t *testing.T) {
	repo := newStubRepo()
	mailer := &stubMailer{}
	svc := newTestService(repo, mailer)

	_, err := svc.Register(context.Background(), validStudentRequest())
	require.NoError(t, err)

	require.NoError(t, svc.VerifyEmail(context.Background(), mailer.lastToken))

	user := repo.users["ada@campus.edu"]
	require.True(t, user.IsVerified)
	require.Empty(t, user.VerificationToken, "token hash must be cleared on redemption")

	// Single use: redeeming again fails.
	err = svc.VerifyEmail(context.Background(), mailer.lastToken)
	requireKind(t, err, apierr.KindBadRequest)
}

func TestVerifyEmail_UnknownToken(t *testing.T) {
	svc := newTestService(newStubRepo(), &stubMailer{})
	err := svc.VerifyEmail(context.Background(), "deadbeef")
	requireKind(t, err, apierr.KindBadRequest)
}

func TestVerifyEmail_ExpiredToken(t *testing.T) {
	repo := newStubRepo()
	mailer := &stubMailer{}
	svc := newTestService(repo, mailer)

	_, err := svc.Register(context.Background(), validStudentRequest())
	require.NoError(t, err)

	past := time.Now().Add(-time.Minute)
	repo.users["ada@campus.edu"].VerificationExpires = &past

	err = svc.VerifyEmail(context.Background(), mailer.lastToken)
	requireKind(t, err, apierr.KindBadRequest)
}

func registerVerified(t *testing.T, svc Service, mailer *stubMailer) {
	t.Helper()
	_, err := svc.Register(context.Background(), validStudentRequest())
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(context.Background(), mailer.lastToken))
}

func TestLogin(t *testing.T) {
	repo := newStubRepo()
	mailer := &stubMailer{}
	svc := newTestService(repo, mailer)
	registerVerified(t, svc, mailer)

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@campus.edu", Password: "Sifre1234"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "ada@campus.edu", resp.User.Email)
}

func TestLogin_UnverifiedAccount(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo, &stubMailer{})

	_, err := svc.Register(context.Background(), validStudentRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "ada@campus.edu", Password: "Sifre1234"})
	typed := requireKind(t, err, apierr.KindUnauthenticated)
	require.Equal(t, 401, typed.Status())
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubRepo()
	mailer := &stubMailer{}
	svc := newTestService(repo, mailer)
	registerVerified(t, svc, mailer)

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@campus.edu", Password: "Wrong1234"})
	typed := requireKind(t, err, apierr.KindUnauthenticated)
	require.Equal(t, "invalid email or password", typed.Message)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(newStubRepo(), &stubMailer{})

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "ghost@campus.edu", Password: "Sifre1234"})
	typed := requireKind(t, err, apierr.KindUnauthenticated)
	// Unknown email and wrong password are indistinguishable.
	require.Equal(t, "invalid email or password", typed.Message)
}

func TestRefreshToken(t *testing.T) {
	repo := newStubRepo()
	mailer := &stubMailer{}
	svc := newTestService(repo, mailer)
	registerVerified(t, svc, mailer)

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@campus.edu", Password: "Sifre1234"})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	repo := newStubRepo()
	mailer := &stubMailer{}
	svc := newTestService(repo, mailer)
	registerVerified(t, svc, mailer)

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@campus.edu", Password: "Sifre1234"})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), resp.AccessToken)
	requireKind(t, err, apierr.KindUnauthenticated)
}

func TestRefreshToken_DeletedAccount(t *testing.T) {
	repo := newStubRepo()
	mailer := &stubMailer{}
	svc := newTestService(repo, mailer)
	registerVerified(t, svc, mailer)

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "ada@campus.edu", Password: "Sifre1234"})
	require.NoError(t, err)

	delete(repo.users, "ada@campus.edu")

	_, err = svc.RefreshToken(context.Background(), resp.RefreshToken)
	requireKind(t, err, apierr.KindStaleCredential)
}

func TestChangePassword(t *testing.T) {
	repo := newStubRepo()
	mailer := &stubMailer{}
	svc := newTestService(repo, mailer)
	registerVerified(t, svc, mailer)

	userID := repo.users["ada@campus.edu"].ID.String()

	err := svc.ChangePassword(context.Background(), userID, &ChangePasswordRequest{
		CurrentPassword: "Wrong1234",
		NewPassword:     "Yeni12345",
	})
	requireKind(t, err, apierr.KindUnauthenticated)

	err = svc.ChangePassword(context.Background(), userID, &ChangePasswordRequest{
		CurrentPassword: "Sifre1234",
		NewPassword:     "weak",
	})
	requireKind(t, err, apierr.KindValidation)

	err = svc.ChangePassword(context.Background(), userID, &ChangePasswordRequest{
		CurrentPassword: "Sifre1234",
		NewPassword:     "Yeni12345",
	})
	require.NoError(t, err)

	stored := repo.users["ada@campus.edu"].Password
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("Yeni12345")))
}

func TestForgotAndResetPassword(t *testing.T) {
	repo := newStubRepo()
	mailer := &stubMailer{}
	svc := newTestService(repo, mailer)
	registerVerified(t, svc, mailer)

	// Unknown address reports success and sends nothing.
	resetsBefore := mailer.resetSent
	require.NoError(t, svc.ForgotPassword(context.Background(), "ghost@campus.edu"))
	require.Equal(t, resetsBefore, mailer.resetSent)

	require.NoError(t, svc.ForgotPassword(context.Background(), "ada@campus.edu"))
	require.Equal(t, resetsBefore+1, mailer.resetSent)

	err := svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       mailer.lastToken,
		NewPassword: "Yeni12345",
	})
	require.NoError(t, err)

	user := repo.users["ada@campus.edu"]
	require.Empty(t, user.ResetToken)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Yeni12345")))

	// Single use.
	err = svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       mailer.lastToken,
		NewPassword: "Yeni12345",
	})
	requireKind(t, err, apierr.KindBadRequest)
}

func TestResendVerification(t *testing.T) {
	repo := newStubRepo()
	mailer := &stubMailer{}
	svc := newTestService(repo, mailer)

	_, err := svc.Register(context.Background(), validStudentRequest())
	require.NoError(t, err)
	firstToken := mailer.lastToken

	require.NoError(t, svc.ResendVerification(context.Background(), "ada@campus.edu"))
	require.Equal(t, 2, mailer.verificationSent)
	require.NotEqual(t, firstToken, mailer.lastToken)

	// Old link is dead: storage holds the new hash.
	err = svc.VerifyEmail(context.Background(), firstToken)
	requireKind(t, err, apierr.KindBadRequest)
	require.NoError(t, svc.VerifyEmail(context.Background(), mailer.lastToken))

	// Already-verified accounts are refused.
	err = svc.ResendVerification(context.Background(), "ada@campus.edu")
	requireKind(t, err, apierr.KindBadRequest)

	// Unknown address reports success.
	require.NoError(t, svc.ResendVerification(context.Background(), "ghost@campus.edu"))
}
