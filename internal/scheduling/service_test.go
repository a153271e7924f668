package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aircast-Systems/aircast/internal/model"
)

type fakeTimelineStore struct {
	schedules map[int][]model.Schedule
	blocks    map[int][]model.ScheduleBlock
	settings  map[string]string
}

func (f *fakeTimelineStore) ListAssignedSchedules(nodeID int) ([]model.Schedule, error) {
	return f.schedules[nodeID], nil
}

func (f *fakeTimelineStore) ListScheduleBlocks(scheduleID int) ([]model.ScheduleBlock, error) {
	return f.blocks[scheduleID], nil
}

func (f *fakeTimelineStore) GetSettingValue(key string) (string, error) {
	return f.settings[key], nil
}

func TestServiceStationZoneDefaultsToUTC(t *testing.T) {
	svc := NewService(&fakeTimelineStore{settings: map[string]string{}})
	assert.Equal(t, time.UTC, svc.StationZone())

	svc = NewService(&fakeTimelineStore{settings: map[string]string{
		model.SettingStationTimezone: "Not/AZone",
	}})
	assert.Equal(t, time.UTC, svc.StationZone())
}

func TestServiceStationZoneFromSetting(t *testing.T) {
	svc := NewService(&fakeTimelineStore{settings: map[string]string{
		model.SettingStationTimezone: "America/New_York",
	}})
	assert.Equal(t, "America/New_York", svc.StationZone().String())
}

func TestServiceNodeTimelineUsesAssignmentOrder(t *testing.T) {
	store := &fakeTimelineStore{
		settings: map[string]string{},
		schedules: map[int][]model.Schedule{
			7: {
				{ID: 2, Name: "Specials", ScheduleType: model.ScheduleTypeOneOff, IsActive: true},
				{ID: 1, Name: "Weekday", ScheduleType: model.ScheduleTypeWeekly, IsActive: true},
			},
		},
		blocks: map[int][]model.ScheduleBlock{
			1: {{ID: 10, ScheduleID: 1, ContentID: intPtr(5), DayOfWeek: intPtr(0), StartTime: "09:00", DurationMinutes: 60}},
			2: {{ID: 20, ScheduleID: 2, ContentID: intPtr(9), SpecificDate: strPtr("2025-06-02"), StartTime: "09:30", DurationMinutes: 30}},
		},
	}
	svc := NewService(store)

	// 2025-06-02 is a Monday.
	from := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	entries, err := svc.NodeTimeline(7, from, to)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// The one-off sits first in the assignment list, so it wins the overlap.
	assert.Equal(t, from, entries[0].Start)
	assert.Equal(t, intPtr(5), entries[0].ContentID)
	assert.Equal(t, "Weekday", entries[0].SourceScheduleName)

	assert.Equal(t, from.Add(30*time.Minute), entries[1].Start)
	assert.Equal(t, intPtr(9), entries[1].ContentID)
	assert.Equal(t, "Specials", entries[1].SourceScheduleName)
}

func TestServiceDayWindow(t *testing.T) {
	svc := NewService(&fakeTimelineStore{settings: map[string]string{
		model.SettingStationTimezone: "America/Chicago",
	}})

	now := time.Date(2025, 6, 2, 3, 30, 0, 0, time.UTC) // still June 1st in Chicago
	from, to := svc.DayWindow(now)

	assert.Equal(t, "America/Chicago", from.Location().String())
	assert.Equal(t, 2025, from.Year())
	assert.Equal(t, time.June, from.Month())
	assert.Equal(t, 1, from.Day())
	assert.Equal(t, 0, from.Hour())
	assert.Equal(t, from.AddDate(0, 0, 1), to)
}
