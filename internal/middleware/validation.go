package middleware

import (
	"errors"
	"unicode/utf8"
)

// ValidateMessage validates an inbound chat message.
func ValidateMessage(content string) error {
	if len(content) == 0 {
		return errors.New("message cannot be empty")
	}
	if len(content) > 100000 { // ~100KB limit
		return errors.New("message exceeds maximum length")
	}
	if !utf8.ValidString(content) {
		return errors.New("message must be valid UTF-8")
	}
	return nil
}

// ValidateSessionID validates a caller-supplied session identifier. Session
// ids are opaque, only their size is bounded.
func ValidateSessionID(id string) error {
	if len(id) > 128 {
		return errors.New("session ID exceeds maximum length")
	}
	if !utf8.ValidString(id) {
		return errors.New("session ID must be valid UTF-8")
	}
	return nil
}

// ValidatePrompt validates a raw completion prompt.
func ValidatePrompt(prompt string) error {
	if len(prompt) == 0 {
		return errors.New("prompt cannot be empty")
	}
	if len(prompt) > 100000 {
		return errors.New("prompt exceeds maximum length")
	}
	return nil
}
