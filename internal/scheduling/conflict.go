package scheduling

import (
	"fmt"

	"github.com/Aircast-Systems/aircast/internal/model"
)

// BlockSpan converts a block's start time and duration into a half-open
// [start, end) minute range, enforcing the duration rules: positive length
// and no crossing of midnight in the block's own day coordinate.
func BlockSpan(b model.ScheduleBlock) (start, end int, err error) {
	if b.DurationMinutes <= 0 {
		return 0, 0, ErrInvalidDuration
	}
	start, err = ToMinutes(b.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end = start + b.DurationMinutes
	if end > MinutesPerDay {
		return 0, 0, ErrDurationCrossesDayBoundary
	}
	return start, end, nil
}

// sameContext reports whether two blocks share a recurrence context:
// identical weekday for weekly blocks, identical date for one-off blocks.
// Blocks under different days or dates never conflict with each other.
func sameContext(a, b model.ScheduleBlock) bool {
	if a.DayOfWeek != nil && b.DayOfWeek != nil {
		return *a.DayOfWeek == *b.DayOfWeek
	}
	if a.SpecificDate != nil && b.SpecificDate != nil {
		return *a.SpecificDate == *b.SpecificDate
	}
	return false
}

// HasOverlap reports whether the candidate's time range intersects any
// existing block in the same recurrence context. Ranges are half-open, so
// touching endpoints do not count. excludeID skips the block being edited;
// pass 0 on create.
func HasOverlap(candidate model.ScheduleBlock, existing []model.ScheduleBlock, excludeID int) bool {
	_, ok := findOverlap(candidate, existing, excludeID)
	return ok
}

func findOverlap(candidate model.ScheduleBlock, existing []model.ScheduleBlock, excludeID int) (int, bool) {
	s, e, err := BlockSpan(candidate)
	if err != nil {
		return 0, false
	}
	for _, b := range existing {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if !sameContext(candidate, b) {
			continue
		}
		bs, be, err := BlockSpan(b)
		if err != nil {
			continue
		}
		if s < be && e > bs {
			return b.ID, true
		}
	}
	return 0, false
}

// CheckBlock is the commit-boundary validation for a create or update of a
// single block: recurrence fields must match the schedule type, the time
// range must be well formed, and it must not overlap a sibling block in the
// same context. On conflict the returned *OverlapError carries the sibling's
// id. Conflicts are only ever checked within one schedule; overlaps across
// schedules are resolved by assignment precedence, not rejected.
func CheckBlock(scheduleType string, candidate model.ScheduleBlock, existing []model.ScheduleBlock, excludeID int) error {
	switch scheduleType {
	case model.ScheduleTypeWeekly:
		if candidate.DayOfWeek == nil || candidate.SpecificDate != nil {
			return ErrRecurrenceTypeMismatch
		}
		if d := *candidate.DayOfWeek; d < 0 || d > 6 {
			return fmt.Errorf("%w: day_of_week %d out of range", ErrRecurrenceTypeMismatch, d)
		}
	case model.ScheduleTypeOneOff:
		if candidate.SpecificDate == nil || candidate.DayOfWeek != nil {
			return ErrRecurrenceTypeMismatch
		}
	default:
		return fmt.Errorf("%w: unknown schedule type %q", ErrRecurrenceTypeMismatch, scheduleType)
	}

	if _, _, err := BlockSpan(candidate); err != nil {
		return err
	}

	if id, ok := findOverlap(candidate, existing, excludeID); ok {
		return &OverlapError{ConflictingBlockID: id}
	}
	return nil
}
