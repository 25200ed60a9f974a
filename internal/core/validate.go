package core

import "unicode/utf8"

// Input limits for client-supplied values.
const (
	MaxRoomIDLength  = 100
	MaxUserIDLength  = 128
	MaxMessageLength = 5000
)

// ValidateRoomID checks a client-supplied room key.
func ValidateRoomID(id string) error {
	if id == "" {
		return ErrRoomEmpty
	}
	if len(id) > MaxRoomIDLength {
		return ErrRoomTooLong
	}
	if !utf8.ValidString(id) {
		return ErrInvalidString
	}
	return nil
}

// ValidateUserID checks an identify payload.
func ValidateUserID(id string) error {
	if id == "" {
		return ErrUserEmpty
	}
	if len(id) > MaxUserIDLength || !utf8.ValidString(id) {
		return ErrInvalidString
	}
	return nil
}

// ValidateMessage checks chat message content.
func ValidateMessage(content string) error {
	if content == "" {
		return ErrMessageEmpty
	}
	if len(content) > MaxMessageLength {
		return ErrMessageLong
	}
	if !utf8.ValidString(content) {
		return ErrInvalidString
	}
	return nil
}
