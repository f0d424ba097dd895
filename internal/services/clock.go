package services

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies timestamps and ids; tests replace it for deterministic output
type Clock struct {
	Now   func() time.Time
	NewID func() string
}

// SystemClock uses wall time and random UUIDs
func SystemClock() Clock {
	return Clock{Now: time.Now, NewID: uuid.NewString}
}
