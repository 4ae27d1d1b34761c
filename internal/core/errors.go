package core

import "errors"

// Errors returned while turning inbound frames into commands. None of them
// reach the client; the gateway logs and drops the frame.
var (
	ErrEmptyRoom      = errors.New("room is required")
	ErrUnknownEvent   = errors.New("unknown event")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrRateLimited    = errors.New("rate limited")
)
