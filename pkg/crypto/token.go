package crypto

import "github.com/google/uuid"

// NewToken returns a fresh opaque identifier suitable for session ids
// and password-reset tokens. Tokens are random version-4 UUIDs: globally
// unique with overwhelming probability, carrying no embedded meaning.
func NewToken() string {
	return uuid.NewString()
}
