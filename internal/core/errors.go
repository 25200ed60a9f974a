package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeNotInRoom      = "not_in_room"
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeRateLimited    = "rate_limited"
	ErrCodeInternal       = "internal"
)

var (
	ErrHubStopped = errors.New("hub stopped")

	ErrUserEmpty     = errors.New("user id cannot be empty")
	ErrRoomEmpty     = errors.New("room id cannot be empty")
	ErrRoomTooLong   = errors.New("room id exceeds maximum length")
	ErrMessageEmpty  = errors.New("message content cannot be empty")
	ErrMessageLong   = errors.New("message exceeds maximum length")
	ErrInvalidString = errors.New("value is not valid utf-8")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
