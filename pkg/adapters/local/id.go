package local

import "github.com/google/uuid"

// NewID returns a time-ordered identifier: a UUIDv7 carries a millisecond
// timestamp followed by random bits.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
