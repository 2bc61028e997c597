package core

import "time"

// User represents an identity record in the system.
//
// A user carries at most one active session id and at most one active
// reset token at a time; both are nullable and overwritten on reissue.
type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	HashedPassword []byte     `json:"-"` // Never expose in JSON
	SessionID      *string    `json:"-"` // Never expose in JSON
	ResetToken     *string    `json:"-"` // Never expose in JSON
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// UserUpdate describes a partial update to a user record. A nil pointer
// field is left untouched; the Clear flags set the corresponding column
// to null. Setting a field and clearing it in the same update is a
// caller bug; stores apply the Clear flag last.
type UserUpdate struct {
	HashedPassword []byte

	SessionID      *string
	ClearSessionID bool

	ResetToken      *string
	ClearResetToken bool
}

// IsZero reports whether the update would change nothing.
func (u UserUpdate) IsZero() bool {
	return u.HashedPassword == nil &&
		u.SessionID == nil && !u.ClearSessionID &&
		u.ResetToken == nil && !u.ClearResetToken
}
