package usecase

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInternal      = errors.New("internal error")
	ErrNotFound      = errors.New("not found")
	ErrRunInProgress = errors.New("matching run already in progress")
)
