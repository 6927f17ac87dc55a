package domain_test

import (
	"testing"

	"annonsplats/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestApplicationStatus_CanTransitionTo(t *testing.T) {
	all := []domain.ApplicationStatus{
		domain.ApplicationPending,
		domain.ApplicationAccepted,
		domain.ApplicationRejected,
		domain.ApplicationRejectedRead,
	}

	allowed := map[[2]domain.ApplicationStatus]bool{
		{domain.ApplicationPending, domain.ApplicationAccepted}:      true,
		{domain.ApplicationPending, domain.ApplicationRejected}:      true,
		{domain.ApplicationRejected, domain.ApplicationRejectedRead}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]domain.ApplicationStatus{from, to}]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestApplicationStatus_IsValid(t *testing.T) {
	assert.True(t, domain.ApplicationRejectedRead.IsValid())
	assert.False(t, domain.ApplicationStatus("archived").IsValid())
}

func TestApplication_Counterpart(t *testing.T) {
	app := domain.Application{ApplicantID: uuid.New(), PosterID: uuid.New()}

	assert.Equal(t, app.PosterID, app.Counterpart(app.ApplicantID))
	assert.Equal(t, app.ApplicantID, app.Counterpart(app.PosterID))
	assert.True(t, app.IsParticipant(app.PosterID))
	assert.False(t, app.IsParticipant(uuid.New()))
}
