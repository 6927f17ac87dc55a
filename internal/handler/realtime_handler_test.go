package handler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annonsplats/internal/domain"
	"annonsplats/internal/realtime"
)

func TestVisibleEvent(t *testing.T) {
	ctx := context.Background()
	app := &domain.Application{ID: uuid.New(), ApplicantID: uuid.New(), PosterID: uuid.New(), Status: domain.ApplicationAccepted}

	broker := realtime.NewMemoryBroker()
	defer broker.Close()
	sub, err := broker.Subscribe(ctx, realtime.MessagesTopic(app.ID))
	require.NoError(t, err)
	defer sub.Close()

	receive := func() []byte {
		select {
		case payload := <-sub.C():
			return payload
		case <-time.After(time.Second):
			t.Fatal("no event received")
			return nil
		}
	}

	decision := &domain.Message{
		ID: uuid.New(), ApplicationID: app.ID, SenderID: app.PosterID, ReceiverID: app.ApplicantID,
		Content: "accepted", IsSystemMessage: true, ForApplicantOnly: true, SenderName: "anna",
	}
	chat := &domain.Message{
		ID: uuid.New(), ApplicationID: app.ID, SenderID: app.ApplicantID, ReceiverID: app.PosterID,
		Content: "Tack!", SenderName: "lisa",
	}

	require.NoError(t, realtime.PublishMessage(ctx, broker, decision))
	payload := receive()

	_, ok := visibleEvent(payload, app.PosterID, app)
	assert.False(t, ok, "poster must not see applicant-only system messages")

	evt, ok := visibleEvent(payload, app.ApplicantID, app)
	require.True(t, ok)
	assert.Equal(t, decision.ID, evt.Message.ID)
	assert.Equal(t, "anna", evt.Message.SenderName)

	require.NoError(t, realtime.PublishMessage(ctx, broker, chat))
	payload = receive()

	evt, ok = visibleEvent(payload, app.PosterID, app)
	require.True(t, ok)
	assert.Equal(t, "lisa", evt.Message.SenderName)

	_, ok = visibleEvent([]byte(`{"type":"badge"}`), app.PosterID, app)
	assert.False(t, ok)
	_, ok = visibleEvent([]byte(`not json`), app.ApplicantID, app)
	assert.False(t, ok)
}
