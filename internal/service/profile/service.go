package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"annonsplats/internal/config"
	"annonsplats/internal/domain"
	"annonsplats/internal/repository"
)

const MaxAvatarSize = 5 << 20

var (
	ErrNotAnImage   = errors.New("avatar must be an image")
	ErrFileTooLarge = errors.New("avatar exceeds 5 MB")
	ErrNoStorage    = errors.New("avatar storage is not configured")
)

// ObjectStore is the part of *minio.Client the avatar upload needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type Service interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetPublic(ctx context.Context, userID uuid.UUID) (*domain.PublicProfile, error)
	Update(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, size int64, contentType string, reader io.Reader) (*domain.User, error)
}

type service struct {
	userRepo repository.UserRepository
	store    ObjectStore
	cfg      *config.Config
	logger   *zap.Logger
}

func NewService(userRepo repository.UserRepository, store ObjectStore, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		userRepo: userRepo,
		store:    store,
		cfg:      cfg,
		logger:   logger.Named("profile"),
	}
}

func (s *service) GetMe(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *service) GetPublic(ctx context.Context, userID uuid.UUID) (*domain.PublicProfile, error) {
	user, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			user.Username = nil
		} else {
			taken, err := s.userRepo.ExistsByUsername(ctx, username, userID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.ErrUsernameTaken
			}
			user.Username = &username
		}
	}
	if input.Description != nil {
		user.Description = input.Description
	}
	if input.Municipality != nil {
		municipality := strings.TrimSpace(*input.Municipality)
		if municipality == "" {
			user.Municipality = nil
		} else {
			user.Municipality = &municipality
		}
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) UploadAvatar(ctx context.Context, userID uuid.UUID, size int64, contentType string, reader io.Reader) (*domain.User, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}
	if size > MaxAvatarSize {
		return nil, ErrFileTooLarge
	}

	if s.store == nil {
		return nil, ErrNoStorage
	}

	user, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}

	storagePath := fmt.Sprintf("avatars/%s/%s", time.Now().Format("2006/01"), uuid.New().String())
	_, err = s.store.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	avatarURL := s.publicURL(storagePath)
	if err := s.userRepo.UpdateAvatar(ctx, userID, avatarURL); err != nil {
		_ = s.store.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	if user.AvatarURL != nil {
		if old, ok := s.storagePath(*user.AvatarURL); ok {
			if err := s.store.RemoveObject(ctx, s.cfg.MinIOBucket, old, minio.RemoveObjectOptions{}); err != nil {
				s.logger.Warn("failed to remove previous avatar", zap.String("path", old), zap.Error(err))
			}
		}
	}

	user.AvatarURL = &avatarURL
	return user, nil
}

func (s *service) publicURL(storagePath string) string {
	return s.publicPrefix() + storagePath
}

func (s *service) storagePath(avatarURL string) (string, bool) {
	prefix := s.publicPrefix()
	if !strings.HasPrefix(avatarURL, prefix) {
		return "", false
	}
	return strings.TrimPrefix(avatarURL, prefix), true
}

func (s *service) publicPrefix() string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket)
}
