package app

import "github.com/google/uuid"

// IDGenerator produces a globally-unique opaque id on demand.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
