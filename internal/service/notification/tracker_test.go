package notification_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annonsplats/internal/domain"
	"annonsplats/internal/service/notification"
)

func TestTracker_Adjust(t *testing.T) {
	tracker := notification.NewTracker()
	userID := uuid.New()

	t.Run("Untracked user is ignored", func(t *testing.T) {
		_, ok := tracker.Adjust(userID, 3)
		assert.False(t, ok)
		_, ok = tracker.Get(userID)
		assert.False(t, ok)
	})

	t.Run("Decrement floors at zero", func(t *testing.T) {
		tracker.Set(userID, 2)

		count, ok := tracker.Adjust(userID, -5)
		assert.True(t, ok)
		assert.Equal(t, 0, count)

		count, _ = tracker.Adjust(userID, 1)
		assert.Equal(t, 1, count)
	})

	t.Run("Negative set is clamped", func(t *testing.T) {
		tracker.Set(userID, -4)
		count, _ := tracker.Get(userID)
		assert.Equal(t, 0, count)
	})

	t.Run("Forget stops tracking", func(t *testing.T) {
		tracker.Forget(userID)
		_, ok := tracker.Adjust(userID, 1)
		assert.False(t, ok)
	})
}

func TestTracker_Subscribe(t *testing.T) {
	tracker := notification.NewTracker()
	userID := uuid.New()

	ch, cancel := tracker.Subscribe(userID)

	tracker.Set(userID, 4)
	tracker.Adjust(userID, -1)
	tracker.Set(uuid.New(), 9)

	next := func() domain.Badge {
		select {
		case b := <-ch:
			return b
		case <-time.After(time.Second):
			t.Fatal("no badge received")
			return domain.Badge{}
		}
	}

	assert.Equal(t, 4, next().Count)
	assert.Equal(t, 3, next().Count)

	cancel()
	cancel()
	_, open := <-ch
	require.False(t, open)

	// Updates after cancel must not panic.
	tracker.Set(userID, 1)
}

func TestTracker_ReleasesCountWithLastSubscriber(t *testing.T) {
	tracker := notification.NewTracker()
	userID := uuid.New()

	_, first := tracker.Subscribe(userID)
	_, second := tracker.Subscribe(userID)
	tracker.Set(userID, 3)

	tracker.Forget(userID)
	_, ok := tracker.Get(userID)
	assert.True(t, ok, "count is kept while a feed is open")

	first()
	_, ok = tracker.Get(userID)
	assert.True(t, ok)

	second()
	_, ok = tracker.Get(userID)
	assert.False(t, ok)
}

func TestTracker_SlowSubscriberKeepsLatest(t *testing.T) {
	tracker := notification.NewTracker()
	userID := uuid.New()
	ch, cancel := tracker.Subscribe(userID)
	defer cancel()

	tracker.Set(userID, 0)
	for i := 0; i < 50; i++ {
		tracker.Adjust(userID, 1)
	}

	var last domain.Badge
	for len(ch) > 0 {
		last = <-ch
	}
	assert.Equal(t, 50, last.Count)
}
