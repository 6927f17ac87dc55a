package message_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"annonsplats/internal/domain"
	"annonsplats/internal/mocks"
	"annonsplats/internal/realtime"
	"annonsplats/internal/service/message"
	"annonsplats/internal/service/notification"
)

type fixture struct {
	msgs   *mocks.MessageRepository
	apps   *mocks.ApplicationRepository
	ads    *mocks.AdRepository
	users  *mocks.UserRepository
	notif  *mocks.NotificationService
	broker *realtime.MemoryBroker
	svc    message.Service
	app    *domain.Application
	baseAt time.Time
}

func newFixture(t *testing.T, status domain.ApplicationStatus) *fixture {
	f := &fixture{
		msgs:   new(mocks.MessageRepository),
		apps:   new(mocks.ApplicationRepository),
		ads:    new(mocks.AdRepository),
		users:  new(mocks.UserRepository),
		notif:  new(mocks.NotificationService),
		broker: realtime.NewMemoryBroker(),
		baseAt: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	t.Cleanup(func() { f.broker.Close() })

	f.app = &domain.Application{
		ID:          uuid.New(),
		AdID:        uuid.New(),
		ApplicantID: uuid.New(),
		PosterID:    uuid.New(),
		Status:      status,
	}
	f.svc = message.NewService(f.msgs, f.apps, f.ads, f.users, f.notif, f.broker, zaptest.NewLogger(t))
	return f
}

func (f *fixture) thread() []domain.Message {
	return []domain.Message{
		{ID: uuid.New(), ApplicationID: f.app.ID, SenderID: f.app.ApplicantID, ReceiverID: f.app.PosterID,
			Content: "intro", IsSystemMessage: true, ReadStatus: true, CreatedAt: f.baseAt},
		{ID: uuid.New(), ApplicationID: f.app.ID, SenderID: f.app.PosterID, ReceiverID: f.app.ApplicantID,
			Content: "accepted", IsSystemMessage: true, ForApplicantOnly: true, ReadStatus: true, CreatedAt: f.baseAt.Add(time.Minute)},
		{ID: uuid.New(), ApplicationID: f.app.ID, SenderID: f.app.ApplicantID, ReceiverID: f.app.PosterID,
			Content: "when do you need me?", CreatedAt: f.baseAt.Add(2 * time.Minute)},
	}
}

func TestMessageService_Thread(t *testing.T) {
	ctx := context.Background()

	t.Run("Poster view hides applicant-only messages and decrements by marked count", func(t *testing.T) {
		f := newFixture(t, domain.ApplicationAccepted)
		f.apps.On("GetByID", ctx, f.app.ID).Return(f.app, nil).Once()
		f.msgs.On("MarkRead", ctx, f.app.ID, f.app.PosterID).Return(int64(2), nil).Once()
		f.msgs.On("ListByApplication", ctx, f.app.ID).Return(f.thread(), nil).Once()
		f.ads.On("GetByID", ctx, f.app.AdID).Return(&domain.Ad{Title: "Snöskottning"}, nil).Once()
		f.notif.On("Decrement", f.app.PosterID, 2).Once()

		thread, err := f.svc.Thread(ctx, f.app.PosterID, f.app.ID)

		require.NoError(t, err)
		assert.Equal(t, int64(2), thread.MarkedRead)
		assert.True(t, thread.CanSend)
		assert.Equal(t, "Snöskottning", thread.AdTitle)
		require.Len(t, thread.Messages, 2)
		for _, m := range thread.Messages {
			assert.False(t, m.ForApplicantOnly)
		}
		assert.True(t, thread.Messages[0].CreatedAt.Before(thread.Messages[1].CreatedAt))
		f.notif.AssertExpectations(t)
	})

	t.Run("Nothing unread leaves badge alone", func(t *testing.T) {
		f := newFixture(t, domain.ApplicationPending)
		f.apps.On("GetByID", ctx, f.app.ID).Return(f.app, nil).Once()
		f.msgs.On("MarkRead", ctx, f.app.ID, f.app.ApplicantID).Return(int64(0), nil).Once()
		f.msgs.On("ListByApplication", ctx, f.app.ID).Return(f.thread(), nil).Once()
		f.ads.On("GetByID", ctx, f.app.AdID).Return(nil, nil).Once()

		thread, err := f.svc.Thread(ctx, f.app.ApplicantID, f.app.ID)

		require.NoError(t, err)
		assert.Len(t, thread.Messages, 3)
		assert.False(t, thread.CanSend)
		f.notif.AssertNotCalled(t, "Decrement", mock.Anything, mock.Anything)
	})

	t.Run("Outsider is forbidden", func(t *testing.T) {
		f := newFixture(t, domain.ApplicationAccepted)
		f.apps.On("GetByID", ctx, f.app.ID).Return(f.app, nil).Once()

		_, err := f.svc.Thread(ctx, uuid.New(), f.app.ID)

		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.msgs.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMessageService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepted application delivers to counterpart", func(t *testing.T) {
		f := newFixture(t, domain.ApplicationAccepted)
		sub, err := f.broker.Subscribe(ctx, realtime.MessagesTopic(f.app.ID))
		require.NoError(t, err)

		f.apps.On("GetByID", ctx, f.app.ID).Return(f.app, nil).Once()
		f.msgs.On("Create", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.SenderID == f.app.ApplicantID && m.ReceiverID == f.app.PosterID &&
				m.Content == "See you at nine" && !m.IsSystemMessage && !m.ReadStatus
		})).Return(nil).Once()
		f.notif.On("Increment", f.app.PosterID, 1).Once()
		username := "kalle"
		f.users.On("GetByID", ctx, f.app.ApplicantID).Return(&domain.User{ID: f.app.ApplicantID, Username: &username}, nil).Once()

		msg, err := f.svc.Send(ctx, f.app.ApplicantID, f.app.ID, domain.SendMessageInput{Content: "  See you at nine\n"})

		require.NoError(t, err)
		assert.Equal(t, "See you at nine", msg.Content)
		f.msgs.AssertExpectations(t)
		f.notif.AssertExpectations(t)

		select {
		case payload := <-sub.C():
			evt, err := realtime.DecodeEvent(payload)
			require.NoError(t, err)
			assert.Equal(t, msg.ID, evt.Message.ID)
			assert.Equal(t, "kalle", evt.Message.SenderName)
		case <-time.After(time.Second):
			t.Fatal("message was not published")
		}
	})

	t.Run("Pending application is locked", func(t *testing.T) {
		f := newFixture(t, domain.ApplicationPending)
		f.apps.On("GetByID", ctx, f.app.ID).Return(f.app, nil).Once()

		_, err := f.svc.Send(ctx, f.app.PosterID, f.app.ID, domain.SendMessageInput{Content: "hello"})

		assert.ErrorIs(t, err, domain.ErrMessagingLocked)
		f.msgs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Whitespace only", func(t *testing.T) {
		f := newFixture(t, domain.ApplicationAccepted)

		_, err := f.svc.Send(ctx, f.app.PosterID, f.app.ID, domain.SendMessageInput{Content: " \t "})

		assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	})

	t.Run("Missing application", func(t *testing.T) {
		f := newFixture(t, domain.ApplicationAccepted)
		f.apps.On("GetByID", ctx, f.app.ID).Return(nil, nil).Once()

		_, err := f.svc.Send(ctx, f.app.PosterID, f.app.ID, domain.SendMessageInput{Content: "hello"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// Reading a thread lowers the badge by exactly the number of messages
// marked read.
func TestMessageService_ThreadKeepsBadgeConsistent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.ApplicationAccepted)

	apps := new(mocks.ApplicationRepository)
	tracker := notification.NewTracker()
	notifSvc := notification.NewService(apps, f.msgs, tracker, zaptest.NewLogger(t))
	svc := message.NewService(f.msgs, f.apps, f.ads, f.users, notifSvc, f.broker, zaptest.NewLogger(t))

	viewer := f.app.ApplicantID
	apps.On("CountPendingForPoster", ctx, viewer).Return(0, nil).Once()
	f.msgs.On("CountUnreadForReceiver", ctx, viewer).Return(5, nil).Once()
	_, err := notifSvc.Refresh(ctx, viewer)
	require.NoError(t, err)

	f.apps.On("GetByID", ctx, f.app.ID).Return(f.app, nil).Once()
	f.msgs.On("MarkRead", ctx, f.app.ID, viewer).Return(int64(3), nil).Once()
	f.msgs.On("ListByApplication", ctx, f.app.ID).Return([]domain.Message{}, nil).Once()
	f.ads.On("GetByID", ctx, f.app.AdID).Return(nil, nil).Once()

	_, err = svc.Thread(ctx, viewer, f.app.ID)
	require.NoError(t, err)

	count, ok := tracker.Get(viewer)
	require.True(t, ok)
	assert.Equal(t, 2, count)
}
