package profile_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"annonsplats/internal/config"
	"annonsplats/internal/domain"
	"annonsplats/internal/mocks"
	"annonsplats/internal/service/profile"
)

type objectStore struct {
	mock.Mock
}

func (m *objectStore) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucket, object, size, opts.ContentType)
	return minio.UploadInfo{Bucket: bucket, Key: object, Size: size}, args.Error(0)
}

func (m *objectStore) RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucket, object)
	return args.Error(0)
}

var testConfig = &config.Config{
	MinIOBucket:         "avatars",
	MinIOPublicEndpoint: "cdn.example.com",
	MinIOPublicUseSSL:   true,
}

func strPtr(s string) *string { return &s }

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := profile.NewService(users, new(objectStore), testConfig, zap.NewNop())
		users.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, EmailName: "anna"}, nil).Once()
		users.On("ExistsByUsername", ctx, "annaS", userID).Return(false, nil).Once()
		users.On("UpdateProfile", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username != nil && *u.Username == "annaS" && u.Municipality != nil && *u.Municipality == "Lund"
		})).Return(nil).Once()

		user, err := svc.Update(ctx, userID, domain.UpdateProfileInput{
			Username:     strPtr(" annaS "),
			Municipality: strPtr("Lund"),
		})

		require.NoError(t, err)
		assert.Equal(t, "annaS", user.DisplayName())
		users.AssertExpectations(t)
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := profile.NewService(users, new(objectStore), testConfig, zap.NewNop())
		users.On("GetByID", ctx, userID).Return(&domain.User{ID: userID}, nil).Once()
		users.On("ExistsByUsername", ctx, "taken", userID).Return(true, nil).Once()

		_, err := svc.Update(ctx, userID, domain.UpdateProfileInput{Username: strPtr("taken")})

		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
		users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("ClearUsername", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := profile.NewService(users, new(objectStore), testConfig, zap.NewNop())
		users.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, Username: strPtr("old"), EmailName: "anna"}, nil).Once()
		users.On("UpdateProfile", ctx, mock.Anything).Return(nil).Once()

		user, err := svc.Update(ctx, userID, domain.UpdateProfileInput{Username: strPtr("")})

		require.NoError(t, err)
		assert.Equal(t, "anna", user.DisplayName())
	})
}

func TestProfileService_UploadAvatar(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("ReplacesPreviousAvatar", func(t *testing.T) {
		users := new(mocks.UserRepository)
		store := new(objectStore)
		svc := profile.NewService(users, store, testConfig, zap.NewNop())

		oldURL := "https://cdn.example.com/avatars/avatars/2025/01/old"
		users.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, AvatarURL: &oldURL}, nil).Once()
		store.On("PutObject", ctx, "avatars", mock.MatchedBy(func(p string) bool {
			return strings.HasPrefix(p, "avatars/")
		}), int64(3), "image/png").Return(nil).Once()
		users.On("UpdateAvatar", ctx, userID, mock.MatchedBy(func(u string) bool {
			return strings.HasPrefix(u, "https://cdn.example.com/avatars/avatars/")
		})).Return(nil).Once()
		store.On("RemoveObject", ctx, "avatars", "avatars/2025/01/old").Return(nil).Once()

		user, err := svc.UploadAvatar(ctx, userID, 3, "image/png", strings.NewReader("png"))

		require.NoError(t, err)
		require.NotNil(t, user.AvatarURL)
		assert.NotEqual(t, oldURL, *user.AvatarURL)
		store.AssertExpectations(t)
	})

	t.Run("RejectsNonImage", func(t *testing.T) {
		svc := profile.NewService(new(mocks.UserRepository), new(objectStore), testConfig, zap.NewNop())

		_, err := svc.UploadAvatar(ctx, userID, 3, "application/pdf", strings.NewReader("pdf"))

		assert.ErrorIs(t, err, profile.ErrNotAnImage)
	})

	t.Run("RejectsLargeFile", func(t *testing.T) {
		svc := profile.NewService(new(mocks.UserRepository), new(objectStore), testConfig, zap.NewNop())

		_, err := svc.UploadAvatar(ctx, userID, profile.MaxAvatarSize+1, "image/jpeg", strings.NewReader(""))

		assert.ErrorIs(t, err, profile.ErrFileTooLarge)
	})

	t.Run("CleansUpOnFailure", func(t *testing.T) {
		users := new(mocks.UserRepository)
		store := new(objectStore)
		svc := profile.NewService(users, store, testConfig, zap.NewNop())

		users.On("GetByID", ctx, userID).Return(&domain.User{ID: userID}, nil).Once()
		store.On("PutObject", ctx, "avatars", mock.Anything, int64(3), "image/png").Return(nil).Once()
		users.On("UpdateAvatar", ctx, userID, mock.Anything).Return(errors.New("db down")).Once()
		store.On("RemoveObject", ctx, "avatars", mock.Anything).Return(nil).Once()

		_, err := svc.UploadAvatar(ctx, userID, 3, "image/png", strings.NewReader("png"))

		assert.Error(t, err)
		store.AssertExpectations(t)
	})
}
