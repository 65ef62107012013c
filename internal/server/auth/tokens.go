package auth

import "github.com/google/uuid"

// NewSessionID returns a fresh session identifier: a random (v4) UUID,
// carrying 122 bits of randomness.
func NewSessionID() string {
	return uuid.NewString()
}

// NewResetToken returns a fresh single-use password reset token.
func NewResetToken() string {
	return uuid.NewString()
}
