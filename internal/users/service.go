package users

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"campus/internal/shared/apierr"
	"campus/internal/shared/config"
	"campus/internal/shared/constants"
	"campus/pkg/cache"
)

type Service interface {
	GetProfile(ctx context.Context, userID string) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*ProfileResponse, error)
	SaveProfileImage(ctx context.Context, userID string, file *multipart.FileHeader) (string, error)
	ListUsers(ctx context.Context, role string) ([]ProfileResponse, error)
}

type service struct {
	repo   Repository
	config *config.Config
	saver  FileSaver
	cache  cache.Service
}

// FileSaver persists an uploaded file to its destination path.
// gin's Context.SaveUploadedFile satisfies it.
type FileSaver func(file *multipart.FileHeader, dst string) error

// SaveToDisk is the production FileSaver. It creates the destination
// directory on first use.
func SaveToDisk(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

// NewService builds the user service. cacheSvc may be nil, in which case
// profile reads always hit the database.
func NewService(repo Repository, cfg *config.Config, saver FileSaver, cacheSvc cache.Service) Service {
	return &service{repo: repo, config: cfg, saver: saver, cache: cacheSvc}
}

// GetProfile serves the own-profile read, cache-aside; mutations drop
// the cached entry.
func (s *service) GetProfile(ctx context.Context, userID string) (*ProfileResponse, error) {
	if s.cache != nil {
		var cached ProfileResponse
		err := s.cache.GetOrSet(ctx, constants.BuildUserProfileKey(userID), constants.TTL_USER_PROFILE, func() (interface{}, error) {
			user, err := s.repo.GetByID(ctx, userID)
			if err != nil {
				return nil, err
			}
			return ToProfileResponse(user), nil
		}, &cached)
		if err == nil {
			return &cached, nil
		}
		var typed *apierr.Error
		if errors.As(err, &typed) {
			return nil, err
		}
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToProfileResponse(user), nil
}

func (s *service) invalidateProfile(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, constants.BuildUserProfileKey(userID))
	}
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*ProfileResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.City != "" {
		user.City = req.City
	}
	if req.Country != "" {
		user.Country = req.Country
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.invalidateProfile(ctx, userID)
	return ToProfileResponse(user), nil
}

// SaveProfileImage validates upload constraints before anything touches
// disk: size cap first, then content type against the allowed list.
func (s *service) SaveProfileImage(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	if file.Size > s.config.Upload.MaxSize {
		return "", apierr.Upload(fmt.Sprintf("file is too large, maximum size is %d MB", s.config.Upload.MaxSize/(1024*1024)))
	}

	contentType := file.Header.Get("Content-Type")
	allowed := false
	for _, t := range s.config.Upload.AllowedTypes {
		if strings.EqualFold(contentType, t) {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", apierr.Upload("invalid file format, only JPG, JPEG and PNG files are accepted")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("profile_%s_%d%s", userID, time.Now().UnixNano(), ext)
	dst := filepath.Join(s.config.Upload.Path, name)

	if err := s.saver(file, dst); err != nil {
		return "", err
	}

	if err := s.repo.UpdateProfileImage(ctx, userID, "/uploads/"+name); err != nil {
		return "", err
	}

	s.invalidateProfile(ctx, userID)
	return "/uploads/" + name, nil
}

func (s *service) ListUsers(ctx context.Context, role string) ([]ProfileResponse, error) {
	if role != "" && !IsValidRole(role) {
		return nil, apierr.Validation("role must be one of: admin, faculty, student")
	}

	list, err := s.repo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	out := make([]ProfileResponse, 0, len(list))
	for i := range list {
		out = append(out, *ToProfileResponse(&list[i]))
	}
	return out, nil
}
