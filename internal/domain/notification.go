package domain

import "github.com/google/uuid"

// Badge is the aggregate of pending applications a user has received and
// messages addressed to them that they have not read.
type Badge struct {
	UserID              uuid.UUID `json:"user_id"`
	Count               int       `json:"count"`
	PendingApplications int       `json:"pending_applications,omitempty"`
	UnreadMessages      int       `json:"unread_messages,omitempty"`
}
