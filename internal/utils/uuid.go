// Package utils provides small helpers shared across the client: idempotency
// key generation and local JWT expiry inspection.
package utils

import "github.com/google/uuid"

// UUIDGenerator produces the client-side idempotency keys attached to queued
// modifiers. Keys are UUIDv7 so they sort roughly by creation time, which
// keeps log output readable; uniqueness is the only property callers rely on.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
