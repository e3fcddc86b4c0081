package services

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrReportNotFound       = errors.New("report not found")
	ErrGuiltyReportNotFound = errors.New("guilty report not found")
	ErrSongNotFound         = errors.New("song not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrContactNotFound      = errors.New("contact message not found")

	ErrReportAlreadyProcessed = errors.New("report already processed")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrInvalidStatus          = errors.New("unknown status")
	ErrReapplyTooSoon         = errors.New("reapply window has not opened yet")

	ErrInvalidReport   = errors.New("invalid report")
	ErrInvalidDuration = errors.New("invalid suspension duration")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInsufficientNP  = errors.New("balance is already zero")
	ErrInvalidLevel    = errors.New("invalid artist level")
	ErrNotArtist       = errors.New("user is not an artist")

	ErrForbidden    = errors.New("admin role required")
	ErrSelfDemotion = errors.New("admins cannot remove their own admin role")
)
