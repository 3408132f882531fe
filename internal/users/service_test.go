package users

import (
	"context"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"campus/internal/shared/apierr"
	"campus/internal/shared/config"
	"campus/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	users         map[string]*User
	profileImages map[string]string
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		users:         make(map[string]*User),
		profileImages: make(map[string]string),
	}
}

func (r *stubRepo) GetByID(ctx context.Context, id string) (*User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apierr.NotFound("user not found")
}

func (r *stubRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apierr.NotFound("user not found")
}

func (r *stubRepo) Update(ctx context.Context, user *User) error {
	r.users[user.ID.String()] = user
	return nil
}

func (r *stubRepo) UpdateProfileImage(ctx context.Context, userID string, path string) error {
	r.profileImages[userID] = path
	return nil
}

func (r *stubRepo) List(ctx context.Context, role string) ([]User, error) {
	var out []User
	for _, u := range r.users {
		if role == "" || string(u.Role) == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func uploadConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{
			MaxSize:      5 * 1024 * 1024,
			Path:         "uploads/profile-images",
			AllowedTypes: []string{"image/jpeg", "image/png", "image/jpg"},
		},
	}
}

func seedUser(repo *stubRepo) *User {
	u := &User{
		ID:        uuid.New(),
		Email:     "ada@campus.edu",
		Role:      RoleStudent,
		FirstName: "Ada",
		LastName:  "Yildiz",
	}
	repo.users[u.ID.String()] = u
	return u
}

func fileHeader(name, contentType string, size int64) *multipart.FileHeader {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: name,
		Header:   header,
		Size:     size,
	}
}

func TestUpdateProfile(t *testing.T) {
	repo := newStubRepo()
	user := seedUser(repo)
	svc := NewService(repo, uploadConfig(), nil, nil)

	profile, err := svc.UpdateProfile(context.Background(), user.ID.String(), &UpdateProfileRequest{
		FirstName:   "Grace",
		PhoneNumber: "+905551112233",
	})
	require.NoError(t, err)
	require.Equal(t, "Grace", profile.FirstName)
	// Untouched fields survive a partial update.
	require.Equal(t, "Yildiz", profile.LastName)
	require.Equal(t, "+905551112233", profile.PhoneNumber)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	svc := NewService(newStubRepo(), uploadConfig(), nil, nil)

	_, err := svc.UpdateProfile(context.Background(), uuid.NewString(), &UpdateProfileRequest{FirstName: "Grace"})
	var typed *apierr.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, apierr.KindNotFound, typed.Kind)
}

func TestSaveProfileImage_TooLarge(t *testing.T) {
	repo := newStubRepo()
	user := seedUser(repo)
	svc := NewService(repo, uploadConfig(), nil, nil)

	_, err := svc.SaveProfileImage(context.Background(), user.ID.String(), fileHeader("me.jpg", "image/jpeg", 6*1024*1024))
	var typed *apierr.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, apierr.KindUpload, typed.Kind)
	require.Contains(t, typed.Message, "too large")
}

func TestSaveProfileImage_BadType(t *testing.T) {
	repo := newStubRepo()
	user := seedUser(repo)
	svc := NewService(repo, uploadConfig(), nil, nil)

	_, err := svc.SaveProfileImage(context.Background(), user.ID.String(), fileHeader("evil.pdf", "application/pdf", 1024))
	var typed *apierr.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, apierr.KindUpload, typed.Kind)
}

func TestSaveProfileImage(t *testing.T) {
	repo := newStubRepo()
	user := seedUser(repo)

	var savedDst string
	saver := func(file *multipart.FileHeader, dst string) error {
		savedDst = dst
		return nil
	}
	svc := NewService(repo, uploadConfig(), saver, nil)

	url, err := svc.SaveProfileImage(context.Background(), user.ID.String(), fileHeader("me.JPG", "image/jpeg", 1024))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(url, "/uploads/profile_"+user.ID.String()+"_"))
	require.True(t, strings.HasSuffix(url, ".jpg"), "extension is lowercased: %s", url)
	require.True(t, strings.HasPrefix(savedDst, "uploads/profile-images/"))
	require.Equal(t, url, repo.profileImages[user.ID.String()])
}

func TestGetProfile_CacheInvalidatedOnUpdate(t *testing.T) {
	repo := newStubRepo()
	user := seedUser(repo)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	svc := NewService(repo, uploadConfig(), nil, cache.NewService(client))
	ctx := context.Background()

	profile, err := svc.GetProfile(ctx, user.ID.String())
	require.NoError(t, err)
	require.Equal(t, "Ada", profile.FirstName)

	// A change behind the service's back is not visible while cached.
	user.FirstName = "Stale"
	profile, err = svc.GetProfile(ctx, user.ID.String())
	require.NoError(t, err)
	require.Equal(t, "Ada", profile.FirstName)

	// Updating through the service drops the cached entry.
	_, err = svc.UpdateProfile(ctx, user.ID.String(), &UpdateProfileRequest{FirstName: "Grace"})
	require.NoError(t, err)

	profile, err = svc.GetProfile(ctx, user.ID.String())
	require.NoError(t, err)
	require.Equal(t, "Grace", profile.FirstName)
}

func TestListUsers_InvalidRoleFilter(t *testing.T) {
	svc := NewService(newStubRepo(), uploadConfig(), nil, nil)

	_, err := svc.ListUsers(context.Background(), "wizard")
	var typed *apierr.Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, apierr.KindValidation, typed.Kind)
	require.Contains(t, typed.Message, "role must be one of")
}

func TestListUsers_FilterByRole(t *testing.T) {
	repo := newStubRepo()
	seedUser(repo)
	admin := &User{ID: uuid.New(), Email: "admin@campus.edu", Role: RoleAdmin}
	repo.users[admin.ID.String()] = admin
	svc := NewService(repo, uploadConfig(), nil, nil)

	all, err := svc.ListUsers(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	onlyAdmins, err := svc.ListUsers(context.Background(), "admin")
	require.NoError(t, err)
	require.Len(t, onlyAdmins, 1)
	require.Equal(t, "admin@campus.edu", onlyAdmins[0].Email)
}
