package countdown

import "errors"

var (
	ErrEmptyField         = errors.New("empty field")
	ErrInvalidDate        = errors.New("invalid date")
	ErrNotFound           = errors.New("timer not found")
	ErrAlreadyScheduled   = errors.New("timer already scheduled")
	ErrUnavailableStorage = errors.New("storage unavailable")
)
