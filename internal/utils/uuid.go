package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for decryption requests and similar
// server-assigned records. It prefers time-ordered V7 UUIDs so that id order
// follows creation order in listings and logs.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a V7 UUID string, falling back to a random V4 when the
// system clock refuses to cooperate.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
