package repo

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrNoEmail         = errors.New("no email on profile")
	ErrAlreadyVerified = errors.New("email already verified")
	ErrTokenMismatch   = errors.New("verification token mismatch")
	ErrNoOwnerForRoom  = errors.New("no owner for room")
	ErrInvalidRole     = errors.New("invalid role")
	ErrBadTransition   = errors.New("invalid status transition")
)
