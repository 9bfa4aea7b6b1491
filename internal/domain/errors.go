package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidOdds  = errors.New("invalid american odds")
	ErrInvalidPrice = errors.New("invalid decimal price")
	ErrLockHeld     = errors.New("lock already held")
)
