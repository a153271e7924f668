package scheduling

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/model"
)

// TimelineStore is the slice of persistence the resolver service needs.
type TimelineStore interface {
	ListAssignedSchedules(nodeID int) ([]model.Schedule, error)
	ListScheduleBlocks(scheduleID int) ([]model.ScheduleBlock, error)
	GetSettingValue(key string) (string, error)
}

// Service computes effective timelines for playback nodes.
type Service struct {
	store TimelineStore
}

func NewService(store TimelineStore) *Service {
	return &Service{store: store}
}

// StationZone loads the station's configured timezone, falling back to UTC
// when the setting is missing or names a zone the host doesn't know.
func (s *Service) StationZone() *time.Location {
	name, err := s.store.GetSettingValue(model.SettingStationTimezone)
	if err != nil {
		log.Error().Err(err).Msg("reading station timezone setting")
		return time.UTC
	}
	loc, err := LoadZone(name)
	if err != nil {
		log.Warn().Str("timezone", name).Msg("unknown station timezone, using UTC")
		return time.UTC
	}
	return loc
}

// NodeTimeline resolves the node's effective schedule over [from, to).
// Layers are taken from the node's assignment list, position 0 winning ties.
func (s *Service) NodeTimeline(nodeID int, from, to time.Time) ([]model.TimelineEntry, error) {
	schedules, err := s.store.ListAssignedSchedules(nodeID)
	if err != nil {
		return nil, fmt.Errorf("loading assignment for node %d: %w", nodeID, err)
	}

	layers := make([]Layer, 0, len(schedules))
	for _, sched := range schedules {
		blocks, err := s.store.ListScheduleBlocks(sched.ID)
		if err != nil {
			return nil, fmt.Errorf("loading blocks for schedule %d: %w", sched.ID, err)
		}
		layers = append(layers, Layer{Schedule: sched, Blocks: blocks})
	}

	return ResolveTimeline(layers, from, to, s.StationZone()), nil
}

// DayWindow returns the [start, end) bounds of the station-local day
// containing now, in the station zone. Nodes pull their schedule one day at
// a time.
func (s *Service) DayWindow(now time.Time) (time.Time, time.Time) {
	loc := s.StationZone()
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
