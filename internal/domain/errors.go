package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrMessagingLocked   = errors.New("messaging is only available for accepted applications")
	ErrAlreadyApplied    = errors.New("already applied to this ad")
	ErrOwnAd             = errors.New("cannot apply to your own ad")
	ErrInvalidLocation   = errors.New("unknown region or municipality")
	ErrEmptyMessage      = errors.New("message content is required")
	ErrUsernameTaken     = errors.New("username already taken")
)
