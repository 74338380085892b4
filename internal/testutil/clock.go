package testutil

import (
	"time"

	"github.com/light-bringer/saleprice-service/internal/pkg/clock"
)

// NewFixedClock creates a mock clock fixed at the given time.
func NewFixedClock(t time.Time) *clock.MockClock {
	return clock.NewMockClock(t)
}

// NewMockClock creates a mock clock starting at the current time, truncated to
// microseconds so values survive a Spanner round trip unchanged.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(time.Now().UTC().Truncate(time.Microsecond))
}
