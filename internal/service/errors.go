package service

import "errors"

// ErrInvalidPayload marks a save request the job store cannot apply.
var ErrInvalidPayload = errors.New("invalid payload")
