package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/summitworks/eventreg/internal/domain/entity"
	repo "github.com/summitworks/eventreg/internal/domain/repository"
	"github.com/summitworks/eventreg/pkg/helpers"
	"github.com/summitworks/eventreg/pkg/password"
)

// ErrInvalidCredentials covers every login failure the caller may see:
// unknown email and wrong password produce the same error on purpose, so
// a failed login never confirms whether an account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService owns account lifecycle: registration, credential checks,
// profile edits, and avatar storage.
type AuthService struct {
	Repo      repo.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewAuthService(r repo.UserRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

// Register creates an account with a freshly hashed password. A duplicate
// email surfaces as repository.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, plainPassword, name string) (*entity.User, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate resolves email+password to a user. Lookup misses and hash
// mismatches both collapse to ErrInvalidCredentials; a hash that cannot be
// parsed is data corruption and propagates as-is.
func (s *AuthService) Authenticate(ctx context.Context, email, plainPassword string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	ok, err := password.Verify(plainPassword, u.PasswordHash)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("stored password hash unreadable")
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	Name      string
	AvatarURL string
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.AvatarURL != "" {
		u.AvatarURL = in.AvatarURL
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword requires the current password to match before the new one
// replaces it.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := password.Verify(current, u.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}
	hash, err := password.Hash(next)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, userID, hash)
}

// UploadAvatar streams an image to GCS and records its public URL on the
// profile.
func (s *AuthService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("object storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
