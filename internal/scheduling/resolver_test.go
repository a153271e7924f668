package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Aircast-Systems/aircast/internal/model"
)

func weeklySchedule(id int, name string) model.Schedule {
	return model.Schedule{ID: id, Name: name, ScheduleType: model.ScheduleTypeWeekly, IsActive: true}
}

func oneOffSchedule(id int, name string) model.Schedule {
	return model.Schedule{ID: id, Name: name, ScheduleType: model.ScheduleTypeOneOff, IsActive: true}
}

// assertTiles checks the core resolver guarantee: entries exactly cover
// [start, end) in order with no gaps and no overlaps.
func assertTiles(t *testing.T, entries []model.TimelineEntry, start, end time.Time) {
	t.Helper()
	assert.NotEmpty(t, entries)
	assert.True(t, entries[0].Start.Equal(start), "first entry starts at window start")
	assert.True(t, entries[len(entries)-1].End.Equal(end), "last entry ends at window end")
	for i := 0; i < len(entries)-1; i++ {
		assert.True(t, entries[i].End.Equal(entries[i+1].Start),
			"entry %d end %v != entry %d start %v", i, entries[i].End, i+1, entries[i+1].Start)
	}
	for _, e := range entries {
		assert.True(t, e.End.After(e.Start))
	}
}

func TestResolveEmptyAssignmentIsAllFallback(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	entries := ResolveTimeline(nil, start, end, time.UTC)
	assert.Len(t, entries, 1)
	assert.True(t, entries[0].Fallback())
	assertTiles(t, entries, start, end)
}

func TestResolveSingleWeeklyBlock(t *testing.T) {
	// 2025-06-02 is a Monday.
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	layer := Layer{
		Schedule: weeklySchedule(1, "Base Grid"),
		Blocks:   []model.ScheduleBlock{{ID: 10, ScheduleID: 1, DayOfWeek: intPtr(0), StartTime: "09:00", DurationMinutes: 30, ContentID: intPtr(5)}},
	}

	entries := ResolveTimeline([]Layer{layer}, start, end, time.UTC)
	assertTiles(t, entries, start, end)
	assert.Len(t, entries, 3)

	assert.True(t, entries[0].Fallback())
	assert.Equal(t, intPtr(5), entries[1].ContentID)
	assert.Equal(t, "Base Grid", entries[1].SourceScheduleName)
	assert.True(t, entries[1].Start.Equal(start.Add(9*time.Hour)))
	assert.True(t, entries[1].End.Equal(start.Add(9*time.Hour+30*time.Minute)))
	assert.True(t, entries[2].Fallback())
}

func TestResolveOneOffOverridesWeekly(t *testing.T) {
	// Weekly Monday 09:00-09:30 content 5, one-off block
	// the same Monday 09:15-09:45 content 9 at higher precedence. The
	// 09:00-10:00 window resolves to three entries.
	windowStart := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	windowEnd := windowStart.Add(time.Hour)

	weekly := Layer{
		Schedule: weeklySchedule(1, "W"),
		Blocks:   []model.ScheduleBlock{{ID: 10, ScheduleID: 1, DayOfWeek: intPtr(0), StartTime: "09:00", DurationMinutes: 30, ContentID: intPtr(5)}},
	}
	oneOff := Layer{
		Schedule: oneOffSchedule(2, "O"),
		Blocks:   []model.ScheduleBlock{{ID: 20, ScheduleID: 2, SpecificDate: strPtr("2025-06-02"), StartTime: "09:15", DurationMinutes: 30, ContentID: intPtr(9)}},
	}

	// Index 0 is highest precedence.
	entries := ResolveTimeline([]Layer{oneOff, weekly}, windowStart, windowEnd, time.UTC)
	assertTiles(t, entries, windowStart, windowEnd)
	assert.Len(t, entries, 3)

	assert.Equal(t, intPtr(5), entries[0].ContentID)
	assert.Equal(t, "W", entries[0].SourceScheduleName)
	assert.True(t, entries[0].End.Equal(windowStart.Add(15*time.Minute)))

	assert.Equal(t, intPtr(9), entries[1].ContentID)
	assert.Equal(t, "O", entries[1].SourceScheduleName)
	assert.True(t, entries[1].End.Equal(windowStart.Add(45*time.Minute)))

	assert.True(t, entries[2].Fallback())
	assert.True(t, entries[2].Start.Equal(windowStart.Add(45*time.Minute)))
}

func TestResolvePrecedenceByListOrder(t *testing.T) {
	// Both schedules fully cover the instant; the earlier list entry wins
	// regardless of the stored priority hint.
	windowStart := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	windowEnd := windowStart.Add(time.Hour)

	p := Layer{
		Schedule: model.Schedule{ID: 1, Name: "P", ScheduleType: model.ScheduleTypeWeekly, Priority: 0, IsActive: true},
		Blocks:   []model.ScheduleBlock{{ID: 1, ScheduleID: 1, DayOfWeek: intPtr(0), StartTime: "12:00", DurationMinutes: 60, ContentID: intPtr(1)}},
	}
	q := Layer{
		Schedule: model.Schedule{ID: 2, Name: "Q", ScheduleType: model.ScheduleTypeWeekly, Priority: 99, IsActive: true},
		Blocks:   []model.ScheduleBlock{{ID: 2, ScheduleID: 2, DayOfWeek: intPtr(0), StartTime: "12:00", DurationMinutes: 60, ContentID: intPtr(2)}},
	}

	entries := ResolveTimeline([]Layer{p, q}, windowStart, windowEnd, time.UTC)
	assert.Len(t, entries, 1)
	assert.Equal(t, "P", entries[0].SourceScheduleName)
}

func TestResolveSkipsInactiveSchedules(t *testing.T) {
	windowStart := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	windowEnd := windowStart.Add(time.Hour)

	inactive := Layer{
		Schedule: model.Schedule{ID: 1, Name: "Off", ScheduleType: model.ScheduleTypeWeekly, IsActive: false},
		Blocks:   []model.ScheduleBlock{{ID: 1, ScheduleID: 1, DayOfWeek: intPtr(0), StartTime: "12:00", DurationMinutes: 60, ContentID: intPtr(1)}},
	}

	entries := ResolveTimeline([]Layer{inactive}, windowStart, windowEnd, time.UTC)
	assert.Len(t, entries, 1)
	assert.True(t, entries[0].Fallback())
}

func TestResolveSkipsMalformedBlocks(t *testing.T) {
	// One corrupt row must not blank out the rest of the schedule.
	windowStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 1)

	layer := Layer{
		Schedule: weeklySchedule(1, "Grid"),
		Blocks: []model.ScheduleBlock{
			{ID: 1, ScheduleID: 1, DayOfWeek: intPtr(0), StartTime: "not-a-time", DurationMinutes: 30},
			{ID: 2, ScheduleID: 1, DayOfWeek: intPtr(0), StartTime: "23:30", DurationMinutes: 45}, // crosses midnight
			{ID: 3, ScheduleID: 1, DayOfWeek: intPtr(0), StartTime: "10:00", DurationMinutes: 0},
			{ID: 4, ScheduleID: 1, DayOfWeek: intPtr(0), StartTime: "08:00", DurationMinutes: 60, ContentID: intPtr(7)},
		},
	}

	entries := ResolveTimeline([]Layer{layer}, windowStart, windowEnd, time.UTC)
	assertTiles(t, entries, windowStart, windowEnd)
	assert.Len(t, entries, 3)
	assert.Equal(t, intPtr(7), entries[1].ContentID)
}

func TestResolveWeeklyRepeatsAcrossWindow(t *testing.T) {
	// A seven day window picks up every instance of a weekday block.
	windowStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 14)

	layer := Layer{
		Schedule: weeklySchedule(1, "Grid"),
		Blocks:   []model.ScheduleBlock{{ID: 1, ScheduleID: 1, DayOfWeek: intPtr(2), StartTime: "06:00", DurationMinutes: 120, ContentID: intPtr(3)}},
	}

	entries := ResolveTimeline([]Layer{layer}, windowStart, windowEnd, time.UTC)
	assertTiles(t, entries, windowStart, windowEnd)

	var scheduled int
	for _, e := range entries {
		if !e.Fallback() {
			scheduled++
			assert.Equal(t, 2, ISOWeekday(e.Start))
			assert.Equal(t, 2*time.Hour, e.End.Sub(e.Start))
		}
	}
	assert.Equal(t, 2, scheduled)
}

func TestResolveClipsBlocksAtWindowEdges(t *testing.T) {
	// Window starts mid-block; the entry is truncated, not dropped.
	windowStart := time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC)
	windowEnd := windowStart.Add(30 * time.Minute)

	layer := Layer{
		Schedule: weeklySchedule(1, "Grid"),
		Blocks:   []model.ScheduleBlock{{ID: 1, ScheduleID: 1, DayOfWeek: intPtr(0), StartTime: "09:00", DurationMinutes: 60, ContentID: intPtr(4)}},
	}

	entries := ResolveTimeline([]Layer{layer}, windowStart, windowEnd, time.UTC)
	assert.Len(t, entries, 1)
	assert.True(t, entries[0].Start.Equal(windowStart))
	assert.True(t, entries[0].End.Equal(windowEnd))
	assert.Equal(t, intPtr(4), entries[0].ContentID)
}

func TestResolveIsIdempotent(t *testing.T) {
	windowStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 1)

	layers := []Layer{
		{
			Schedule: oneOffSchedule(2, "Special"),
			Blocks:   []model.ScheduleBlock{{ID: 20, ScheduleID: 2, SpecificDate: strPtr("2025-06-02"), StartTime: "09:15", DurationMinutes: 30, ContentID: intPtr(9)}},
		},
		{
			Schedule: weeklySchedule(1, "Grid"),
			Blocks: []model.ScheduleBlock{
				{ID: 10, ScheduleID: 1, DayOfWeek: intPtr(0), StartTime: "09:00", DurationMinutes: 30, ContentID: intPtr(5)},
				{ID: 11, ScheduleID: 1, DayOfWeek: intPtr(0), StartTime: "18:00", DurationMinutes: 60, DjID: intPtr(2)},
			},
		},
	}

	first := ResolveTimeline(layers, windowStart, windowEnd, time.UTC)
	second := ResolveTimeline(layers, windowStart, windowEnd, time.UTC)
	assert.Equal(t, first, second)
	assertTiles(t, first, windowStart, windowEnd)
}

func TestResolveStationTimezoneAnchorsWallClock(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	// A 09:00 station-local block on Monday 2025-06-02 starts at 13:00 UTC.
	windowStart := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)
	windowEnd := windowStart.AddDate(0, 0, 1)

	layer := Layer{
		Schedule: weeklySchedule(1, "Grid"),
		Blocks:   []model.ScheduleBlock{{ID: 1, ScheduleID: 1, DayOfWeek: intPtr(0), StartTime: "09:00", DurationMinutes: 30, ContentID: intPtr(5)}},
	}

	entries := ResolveTimeline([]Layer{layer}, windowStart, windowEnd, loc)
	assertTiles(t, entries, windowStart, windowEnd)
	assert.Len(t, entries, 3)
	assert.True(t, entries[1].Start.Equal(time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)))
}

func TestResolveEmptyWindow(t *testing.T) {
	at := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, ResolveTimeline(nil, at, at, time.UTC))
	assert.Empty(t, ResolveTimeline(nil, at, at.Add(-time.Hour), time.UTC))
}
