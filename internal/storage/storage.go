package storage

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already taken")
	ErrEventNotFound     = errors.New("event not found")
	ErrCapacityExceeded  = errors.New("event is at capacity")
	ErrAlreadyRegistered = errors.New("user already registered for this event")
)
