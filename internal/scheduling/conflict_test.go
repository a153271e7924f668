package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aircast-Systems/aircast/internal/model"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func weeklyBlock(id, day int, start string, duration int) model.ScheduleBlock {
	return model.ScheduleBlock{
		ID:              id,
		ScheduleID:      1,
		DayOfWeek:       intPtr(day),
		StartTime:       start,
		DurationMinutes: duration,
	}
}

func oneOffBlock(id int, date, start string, duration int) model.ScheduleBlock {
	return model.ScheduleBlock{
		ID:              id,
		ScheduleID:      1,
		SpecificDate:    strPtr(date),
		StartTime:       start,
		DurationMinutes: duration,
	}
}

func TestBlockSpan(t *testing.T) {
	s, e, err := BlockSpan(weeklyBlock(1, 0, "10:00", 30))
	assert.NoError(t, err)
	assert.Equal(t, 600, s)
	assert.Equal(t, 630, e)

	_, _, err = BlockSpan(weeklyBlock(1, 0, "10:00", 0))
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, _, err = BlockSpan(weeklyBlock(1, 0, "10:00", -15))
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, _, err = BlockSpan(weeklyBlock(1, 0, "23:30", 31))
	assert.ErrorIs(t, err, ErrDurationCrossesDayBoundary)

	// Ending exactly at midnight stays within the day.
	_, e, err = BlockSpan(weeklyBlock(1, 0, "23:30", 30))
	assert.NoError(t, err)
	assert.Equal(t, MinutesPerDay, e)

	_, _, err = BlockSpan(weeklyBlock(1, 0, "25:00", 30))
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestHasOverlapDetectsCollision(t *testing.T) {
	existing := []model.ScheduleBlock{weeklyBlock(2, 0, "10:15", 15)}

	// 10:00 for 30 minutes runs into the 10:15 block.
	assert.True(t, HasOverlap(weeklyBlock(1, 0, "10:00", 30), existing, 0))

	// 10:00 for exactly 15 minutes touches but does not overlap.
	assert.False(t, HasOverlap(weeklyBlock(1, 0, "10:00", 15), existing, 0))
}

func TestHasOverlapIsSymmetric(t *testing.T) {
	x := weeklyBlock(1, 3, "08:00", 90)
	y := weeklyBlock(2, 3, "09:00", 60)
	assert.Equal(t,
		HasOverlap(x, []model.ScheduleBlock{y}, 0),
		HasOverlap(y, []model.ScheduleBlock{x}, 0))

	x = weeklyBlock(1, 3, "08:00", 60)
	y = weeklyBlock(2, 3, "09:00", 60)
	assert.Equal(t,
		HasOverlap(x, []model.ScheduleBlock{y}, 0),
		HasOverlap(y, []model.ScheduleBlock{x}, 0))
}

func TestHasOverlapIgnoresOtherContexts(t *testing.T) {
	// Same clock times on different weekdays never conflict.
	existing := []model.ScheduleBlock{weeklyBlock(2, 1, "10:00", 60)}
	assert.False(t, HasOverlap(weeklyBlock(1, 0, "10:00", 60), existing, 0))

	// Same clock times on different dates never conflict.
	dated := []model.ScheduleBlock{oneOffBlock(2, "2025-06-03", "10:00", 60)}
	assert.False(t, HasOverlap(oneOffBlock(1, "2025-06-02", "10:00", 60), dated, 0))

	// A weekly and a one-off block share no context.
	assert.False(t, HasOverlap(weeklyBlock(1, 0, "10:00", 60), dated, 0))

	// Same date does conflict.
	assert.True(t, HasOverlap(oneOffBlock(1, "2025-06-03", "10:30", 60), dated, 0))
}

func TestHasOverlapExcludesBlockBeingEdited(t *testing.T) {
	existing := []model.ScheduleBlock{weeklyBlock(7, 0, "10:00", 60)}

	// Updating block 7 in place collides only with others.
	assert.False(t, HasOverlap(weeklyBlock(7, 0, "10:30", 30), existing, 7))
	assert.True(t, HasOverlap(weeklyBlock(8, 0, "10:30", 30), existing, 0))
}

func TestCheckBlockRecurrenceTypeMismatch(t *testing.T) {
	err := CheckBlock(model.ScheduleTypeWeekly, oneOffBlock(1, "2025-06-02", "10:00", 30), nil, 0)
	assert.ErrorIs(t, err, ErrRecurrenceTypeMismatch)

	err = CheckBlock(model.ScheduleTypeOneOff, weeklyBlock(1, 0, "10:00", 30), nil, 0)
	assert.ErrorIs(t, err, ErrRecurrenceTypeMismatch)

	// A block carrying both recurrence fields is rejected either way.
	both := weeklyBlock(1, 0, "10:00", 30)
	both.SpecificDate = strPtr("2025-06-02")
	err = CheckBlock(model.ScheduleTypeWeekly, both, nil, 0)
	assert.ErrorIs(t, err, ErrRecurrenceTypeMismatch)

	err = CheckBlock(model.ScheduleTypeWeekly, weeklyBlock(1, 7, "10:00", 30), nil, 0)
	assert.ErrorIs(t, err, ErrRecurrenceTypeMismatch)
}

func TestCheckBlockValidatesDurationBeforeOverlap(t *testing.T) {
	// The duration error wins even when the range would also overlap.
	existing := []model.ScheduleBlock{weeklyBlock(2, 0, "10:00", 60)}
	err := CheckBlock(model.ScheduleTypeWeekly, weeklyBlock(1, 0, "10:00", -5), existing, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestCheckBlockReportsConflictingID(t *testing.T) {
	existing := []model.ScheduleBlock{
		weeklyBlock(4, 0, "08:00", 60),
		weeklyBlock(9, 0, "10:15", 15),
	}
	err := CheckBlock(model.ScheduleTypeWeekly, weeklyBlock(0, 0, "10:00", 30), existing, 0)
	var overlap *OverlapError
	assert.ErrorAs(t, err, &overlap)
	assert.Equal(t, 9, overlap.ConflictingBlockID)

	assert.NoError(t, CheckBlock(model.ScheduleTypeWeekly, weeklyBlock(0, 0, "10:00", 15), existing, 0))
}

func TestAcceptedBlocksNeverOverlap(t *testing.T) {
	// Property: any candidate accepted against the committed set keeps the
	// set pairwise non-overlapping.
	committed := []model.ScheduleBlock{}
	candidates := []model.ScheduleBlock{
		weeklyBlock(1, 0, "09:00", 30),
		weeklyBlock(2, 0, "09:15", 30), // rejected
		weeklyBlock(3, 0, "09:30", 30),
		weeklyBlock(4, 0, "08:00", 90), // rejected
		weeklyBlock(5, 0, "10:00", 60),
	}
	for _, c := range candidates {
		if CheckBlock(model.ScheduleTypeWeekly, c, committed, 0) == nil {
			committed = append(committed, c)
		}
	}
	assert.Len(t, committed, 3)
	for i := range committed {
		for j := range committed {
			if i == j {
				continue
			}
			others := []model.ScheduleBlock{committed[j]}
			assert.False(t, HasOverlap(committed[i], others, 0))
		}
	}
}
