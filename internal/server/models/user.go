// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is one registered account.
//
// SessionID and ResetToken are nil when the user has no active session or
// no outstanding reset token respectively.
type User struct {
	ID             int64
	Email          string
	HashedPassword string
	SessionID      *string
	ResetToken     *string
	CreatedAt      time.Time
}

// HasSession reports whether the user is currently logged in.
func (u *User) HasSession() bool {
	return u.SessionID != nil
}
