package model

import "time"

// ScheduleType discriminates how a schedule's blocks recur.
const (
	ScheduleTypeWeekly = "weekly"
	ScheduleTypeOneOff = "one_off"
)

type Schedule struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description"`
	ScheduleType string    `db:"schedule_type" json:"schedule_type"`
	Priority     int       `db:"priority" json:"priority"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	DjID         *int      `db:"dj_id" json:"dj_id"`
	CreatedBy    int       `db:"created_by" json:"created_by"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleBlock is one time range inside a schedule. Exactly one of
// DayOfWeek (weekly, 0 = Monday) or SpecificDate (one-off, "2006-01-02")
// is set, matching the owning schedule's type. StartTime is station
// wall-clock "HH:MM[:SS]" with no zone attached; it is interpreted
// against the station timezone at resolution time.
type ScheduleBlock struct {
	ID              int       `db:"id" json:"id"`
	ScheduleID      int       `db:"schedule_id" json:"schedule_id"`
	ContentID       *int      `db:"content_id" json:"content_id"`
	DjID            *int      `db:"dj_id" json:"dj_id"`
	ScriptID        *int      `db:"script_id" json:"script_id"`
	DayOfWeek       *int      `db:"day_of_week" json:"day_of_week"`
	SpecificDate    *string   `db:"specific_date" json:"specific_date"`
	StartTime       string    `db:"start_time" json:"start_time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// NodeScheduleEntry binds one schedule to a node. Position is the
// precedence order: 0 is consulted first when resolving an instant.
type NodeScheduleEntry struct {
	NodeID     int `db:"node_id" json:"node_id"`
	ScheduleID int `db:"schedule_id" json:"schedule_id"`
	Position   int `db:"position" json:"position"`
}

// TimelineEntry is one resolved span of the effective schedule for a
// node. Entries tile the requested window with no gaps or overlaps;
// a nil SourceScheduleID marks a fallback span (idle/default playback).
// Produced fresh on every resolution, never persisted.
type TimelineEntry struct {
	Start              time.Time `json:"start"`
	End                time.Time `json:"end"`
	ContentID          *int      `json:"content_id"`
	DjID               *int      `json:"dj_id"`
	ScriptID           *int      `json:"script_id"`
	SourceScheduleID   *int      `json:"source_schedule_id"`
	SourceScheduleName string    `json:"source_schedule_name"`
}

// Fallback reports whether the entry covers a gap no schedule claimed.
func (e TimelineEntry) Fallback() bool {
	return e.SourceScheduleID == nil
}
