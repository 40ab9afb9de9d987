package station

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ID GENERATION - One injectable capability shared by all constructors
// =============================================================================

// IDSource produces identifiers for new records. All entity creation shares
// this single capability so tests can substitute a deterministic source.
type IDSource interface {
	NewID() string
}

// UUIDSource is the production source.
type UUIDSource struct{}

func (UUIDSource) NewID() string { return uuid.NewString() }

// SequenceSource hands out prefix-1, prefix-2, ... Deterministic, for tests.
type SequenceSource struct {
	Prefix string
	n      int
}

func (s *SequenceSource) NewID() string {
	s.n++
	return fmt.Sprintf("%s-%d", s.Prefix, s.n)
}

// =============================================================================
// CLOCK - Injectable time for deterministic tests
// =============================================================================

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns T. Advance it manually between steps.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time          { return c.T }
func (c *FixedClock) Advance(d time.Duration) { c.T = c.T.Add(d) }
