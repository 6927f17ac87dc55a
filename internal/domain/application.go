package domain

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending      ApplicationStatus = "pending"
	ApplicationAccepted     ApplicationStatus = "accepted"
	ApplicationRejected     ApplicationStatus = "rejected"
	ApplicationRejectedRead ApplicationStatus = "rejected_read"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:  {ApplicationAccepted, ApplicationRejected},
	ApplicationRejected: {ApplicationRejectedRead},
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected, ApplicationRejectedRead:
		return true
	default:
		return false
	}
}

func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Application struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	AdID        uuid.UUID         `json:"ad_id" db:"ad_id"`
	ApplicantID uuid.UUID         `json:"applicant_id" db:"applicant_id"`
	PosterID    uuid.UUID         `json:"poster_id" db:"poster_id"`
	Status      ApplicationStatus `json:"status" db:"status"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`
}

func (a *Application) IsParticipant(userID uuid.UUID) bool {
	return a.ApplicantID == userID || a.PosterID == userID
}

// Counterpart returns the other participant of the application.
func (a *Application) Counterpart(userID uuid.UUID) uuid.UUID {
	if a.ApplicantID == userID {
		return a.PosterID
	}
	return a.ApplicantID
}

type ApplyInput struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

type DecideInput struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=accepted rejected"`
}

// ReceivedApplication is an application as the poster sees it in the
// applications inbox.
type ReceivedApplication struct {
	Application
	AdTitle           string  `json:"ad_title" db:"ad_title"`
	ApplicantUsername *string `json:"-" db:"applicant_username"`
	ApplicantEmail    string  `json:"-" db:"applicant_email_name"`
	ApplicantName     string  `json:"applicant_name" db:"-"`
	InitialMessage    *string `json:"initial_message,omitempty" db:"initial_message"`
}

// SentApplication is an application as the applicant sees it on their
// profile.
type SentApplication struct {
	Application
	AdTitle         string  `json:"ad_title" db:"ad_title"`
	AdRegion        string  `json:"ad_region" db:"ad_region"`
	AdMunicipality  *string `json:"ad_municipality,omitempty" db:"ad_municipality"`
	PosterUsername  *string `json:"-" db:"poster_username"`
	PosterEmailName string  `json:"-" db:"poster_email_name"`
	PosterName      string  `json:"poster_name" db:"-"`
}

type ReceivedFilter struct {
	ApplicationID *uuid.UUID
	AdID          *uuid.UUID
}
