package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID               uuid.UUID `json:"id" db:"id"`
	ApplicationID    uuid.UUID `json:"application_id" db:"application_id"`
	SenderID         uuid.UUID `json:"sender_id" db:"sender_id"`
	ReceiverID       uuid.UUID `json:"receiver_id" db:"receiver_id"`
	Content          string    `json:"content" db:"content"`
	IsSystemMessage  bool      `json:"is_system_message" db:"is_system_message"`
	ForApplicantOnly bool      `json:"for_applicant_only" db:"for_applicant_only"`
	ReadStatus       bool      `json:"read_status" db:"read_status"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`

	SenderUsername  *string `json:"-" db:"sender_username"`
	SenderEmailName string  `json:"-" db:"sender_email_name"`
	SenderName      string  `json:"sender_name,omitempty" db:"-"`
}

// VisibleTo hides applicant-only system messages from the poster.
func (m *Message) VisibleTo(viewerID uuid.UUID, app *Application) bool {
	if m.IsSystemMessage && m.ForApplicantOnly && viewerID == app.PosterID {
		return false
	}
	return true
}

// FilterVisible keeps the order of msgs.
func FilterVisible(msgs []Message, viewerID uuid.UUID, app *Application) []Message {
	out := make([]Message, 0, len(msgs))
	for i := range msgs {
		if msgs[i].VisibleTo(viewerID, app) {
			out = append(out, msgs[i])
		}
	}
	return out
}

type SendMessageInput struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type Thread struct {
	Application Application `json:"application"`
	AdTitle     string      `json:"ad_title"`
	Messages    []Message   `json:"messages"`
	MarkedRead  int64       `json:"marked_read"`
	CanSend     bool        `json:"can_send"`
}

// Conversation is one row of the message list.
type Conversation struct {
	ApplicationID       uuid.UUID         `json:"application_id" db:"application_id"`
	AdID                uuid.UUID         `json:"ad_id" db:"ad_id"`
	AdTitle             string            `json:"ad_title" db:"ad_title"`
	Status              ApplicationStatus `json:"status" db:"status"`
	ApplicantID         uuid.UUID         `json:"applicant_id" db:"applicant_id"`
	PosterID            uuid.UUID         `json:"poster_id" db:"poster_id"`
	OtherUsername       *string           `json:"-" db:"other_username"`
	OtherEmailName      string            `json:"-" db:"other_email_name"`
	OtherName           string            `json:"other_name" db:"-"`
	LastMessage         *string           `json:"last_message,omitempty" db:"last_message"`
	LastMessageAt       *time.Time        `json:"last_message_at,omitempty" db:"last_message_at"`
	LastSenderUsername  *string           `json:"-" db:"last_sender_username"`
	LastSenderEmailName *string           `json:"-" db:"last_sender_email_name"`
	LastSenderName      *string           `json:"last_sender_name,omitempty" db:"-"`
	UnreadCount         int               `json:"unread_count" db:"unread_count"`
	CreatedAt           time.Time         `json:"created_at" db:"created_at"`
}

// SortConversations orders pending applications first, newest first, then
// accepted ones by latest message. Conversations without messages go last.
func SortConversations(convs []Conversation) {
	sort.SliceStable(convs, func(i, j int) bool {
		a, b := convs[i], convs[j]
		aPending := a.Status == ApplicationPending
		bPending := b.Status == ApplicationPending
		if aPending != bPending {
			return aPending
		}
		if aPending {
			return a.CreatedAt.After(b.CreatedAt)
		}
		if (a.LastMessageAt == nil) != (b.LastMessageAt == nil) {
			return a.LastMessageAt != nil
		}
		if a.LastMessageAt == nil {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.LastMessageAt.After(*b.LastMessageAt)
	})
}
