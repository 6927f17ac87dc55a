package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"annonsplats/internal/mocks"
	"annonsplats/internal/service/notification"
)

func TestService_Refresh(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Sums pending applications and unread messages", func(t *testing.T) {
		appRepo := new(mocks.ApplicationRepository)
		msgRepo := new(mocks.MessageRepository)
		tracker := notification.NewTracker()
		svc := notification.NewService(appRepo, msgRepo, tracker, zaptest.NewLogger(t))

		appRepo.On("CountPendingForPoster", ctx, userID).Return(2, nil).Once()
		msgRepo.On("CountUnreadForReceiver", ctx, userID).Return(3, nil).Once()

		badge, err := svc.Refresh(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, 5, badge.Count)
		assert.Equal(t, 2, badge.PendingApplications)
		assert.Equal(t, 3, badge.UnreadMessages)

		count, ok := tracker.Get(userID)
		assert.True(t, ok)
		assert.Equal(t, 5, count)

		appRepo.AssertExpectations(t)
		msgRepo.AssertExpectations(t)
	})

	t.Run("Repository error leaves tracker alone", func(t *testing.T) {
		appRepo := new(mocks.ApplicationRepository)
		msgRepo := new(mocks.MessageRepository)
		tracker := notification.NewTracker()
		svc := notification.NewService(appRepo, msgRepo, tracker, zaptest.NewLogger(t))

		appRepo.On("CountPendingForPoster", ctx, userID).Return(0, errors.New("db down")).Once()

		_, err := svc.Refresh(ctx, userID)

		assert.Error(t, err)
		_, ok := tracker.Get(userID)
		assert.False(t, ok)
		msgRepo.AssertNotCalled(t, "CountUnreadForReceiver")
	})
}

func TestService_IncrementDecrement(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	appRepo := new(mocks.ApplicationRepository)
	msgRepo := new(mocks.MessageRepository)
	tracker := notification.NewTracker()
	svc := notification.NewService(appRepo, msgRepo, tracker, zaptest.NewLogger(t))

	svc.Increment(userID, 1)
	_, ok := tracker.Get(userID)
	assert.False(t, ok, "adjustments before a refresh are dropped")

	appRepo.On("CountPendingForPoster", ctx, userID).Return(1, nil)
	msgRepo.On("CountUnreadForReceiver", ctx, userID).Return(4, nil)
	_, err := svc.Refresh(ctx, userID)
	require.NoError(t, err)

	svc.Decrement(userID, 3)
	count, _ := tracker.Get(userID)
	assert.Equal(t, 2, count)

	svc.Decrement(userID, 10)
	count, _ = tracker.Get(userID)
	assert.Equal(t, 0, count)

	svc.Increment(userID, 2)
	count, _ = tracker.Get(userID)
	assert.Equal(t, 2, count)
}
