package domain

import "github.com/google/uuid"

// maxIDAttempts bounds how often a custom generator may collide before
// UniqueID switches to random UUIDs.
const maxIDAttempts = 16

// IDGenerator produces identifiers for new fragments and tags
type IDGenerator func() string

// NewID returns a time-ordered UUIDv7 string. Two calls within the same
// millisecond still differ in their random bits.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does
		return uuid.NewString()
	}
	return id.String()
}

// UniqueID calls gen until it returns a non-empty ID not rejected by taken.
func UniqueID(gen IDGenerator, taken func(string) bool) string {
	if gen == nil {
		gen = NewID
	}
	for attempt := 0; ; attempt++ {
		var id string
		if attempt < maxIDAttempts {
			id = gen()
		} else {
			id = uuid.NewString()
		}
		if id != "" && !taken(id) {
			return id
		}
	}
}
