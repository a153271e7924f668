package scheduling

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimeFormat is returned when a start time is not "HH:MM" or "HH:MM:SS".
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrInvalidDuration is returned for zero or negative durations.
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")

	// ErrDurationCrossesDayBoundary is returned when start + duration passes
	// midnight. A show spanning midnight must be stored as two adjacent blocks.
	ErrDurationCrossesDayBoundary = errors.New("block may not cross midnight")

	// ErrRecurrenceTypeMismatch is returned when a weekly schedule receives a
	// dated block, or a one-off schedule receives a weekday block.
	ErrRecurrenceTypeMismatch = errors.New("block recurrence does not match schedule type")

	// ErrUnknownTimezone is returned for an unrecognized IANA zone name.
	ErrUnknownTimezone = errors.New("unknown timezone")
)

// OverlapError reports that a candidate block collides with an existing block
// in the same schedule and recurrence context.
type OverlapError struct {
	ConflictingBlockID int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("time range overlaps existing block %d", e.ConflictingBlockID)
}
