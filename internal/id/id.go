package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator produces identifiers for persisted records.
type Generator interface {
	NewID() string
}

// UUID generates random version 4 UUIDs.
type UUID struct{}

// NewID returns a new random UUID string.
func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence generates predictable ids like "acc-000001". Not safe for
// concurrent use.
type Sequence struct {
	Prefix string
	n      int
}

// NewID returns the next id in the sequence.
func (s *Sequence) NewID() string {
	s.n++
	return FormatSeq(s.Prefix, s.n)
}

// FormatSeq returns an id like "acc-000042".
func FormatSeq(prefix string, n int) string {
	return fmt.Sprintf("%s%06d", prefix, n)
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
