package scheduling

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/model"
)

// Layer pairs a schedule with its stored blocks for resolution. Layers are
// supplied in assignment order: index 0 carries the highest precedence.
type Layer struct {
	Schedule model.Schedule
	Blocks   []model.ScheduleBlock
}

// span is a painted absolute-time interval. blockID 0 marks a fallback span
// covering a gap no schedule claimed.
type span struct {
	start, end   time.Time
	blockID      int
	contentID    *int
	djID         *int
	scriptID     *int
	scheduleID   int
	scheduleName string
}

// ResolveTimeline merges the layers into a single timeline that exactly
// tiles [windowStart, windowEnd) with no gaps and no overlaps. Layers are
// painted lowest precedence first so that each higher layer overwrites the
// sub-ranges it covers; sub-ranges no layer covers become fallback entries.
// Inactive schedules are skipped, as are individual blocks with malformed
// times or durations (logged, never fatal). The result is deterministic for
// identical inputs.
func ResolveTimeline(layers []Layer, windowStart, windowEnd time.Time, loc *time.Location) []model.TimelineEntry {
	if loc == nil {
		loc = time.UTC
	}
	if !windowEnd.After(windowStart) {
		return []model.TimelineEntry{}
	}

	var painted []span
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		if !layer.Schedule.IsActive {
			continue
		}
		for _, sp := range projectLayer(layer, windowStart, windowEnd, loc) {
			painted = paint(painted, sp)
		}
	}

	sort.Slice(painted, func(i, j int) bool { return painted[i].start.Before(painted[j].start) })

	// Fill uncovered sub-ranges with fallback spans so the window tiles
	// completely. A neighboring block is never stretched to cover a gap.
	tiled := make([]span, 0, 2*len(painted)+1)
	cursor := windowStart
	for _, sp := range painted {
		if sp.start.After(cursor) {
			tiled = append(tiled, span{start: cursor, end: sp.start})
		}
		tiled = append(tiled, sp)
		cursor = sp.end
	}
	if cursor.Before(windowEnd) {
		tiled = append(tiled, span{start: cursor, end: windowEnd})
	}

	return toEntries(coalesce(tiled))
}

// projectLayer anchors a schedule's blocks onto the absolute window,
// clipping each instance to [windowStart, windowEnd). Weekly blocks yield
// one instance per qualifying weekday in the window; one-off blocks yield
// at most one.
func projectLayer(layer Layer, windowStart, windowEnd time.Time, loc *time.Location) []span {
	var out []span
	for _, b := range layer.Blocks {
		startMin, _, err := BlockSpan(b)
		if err != nil {
			log.Warn().Err(err).
				Int("block_id", b.ID).
				Int("schedule_id", b.ScheduleID).
				Msg("skipping invalid schedule block")
			continue
		}
		dur := time.Duration(b.DurationMinutes) * time.Minute

		switch {
		case b.DayOfWeek != nil:
			first := AnchorWeekly(*b.DayOfWeek, startMin, windowStart, loc)
			for t := first; t.Before(windowEnd); t = AnchorWeekly(*b.DayOfWeek, startMin, t.AddDate(0, 0, 1), loc) {
				if sp, ok := clip(b, layer.Schedule, t, t.Add(dur), windowStart, windowEnd); ok {
					out = append(out, sp)
				}
			}
		case b.SpecificDate != nil:
			d, err := time.ParseInLocation("2006-01-02", *b.SpecificDate, loc)
			if err != nil {
				log.Warn().Err(err).
					Int("block_id", b.ID).
					Int("schedule_id", b.ScheduleID).
					Msg("skipping invalid schedule block")
				continue
			}
			t := time.Date(d.Year(), d.Month(), d.Day(), startMin/60, startMin%60, 0, 0, loc)
			if sp, ok := clip(b, layer.Schedule, t, t.Add(dur), windowStart, windowEnd); ok {
				out = append(out, sp)
			}
		default:
			log.Warn().
				Int("block_id", b.ID).
				Int("schedule_id", b.ScheduleID).
				Msg("skipping schedule block with no recurrence context")
		}
	}

	// Stable ordering keeps resolution deterministic even if stored
	// sibling blocks overlap (corrupt data the painter tolerates).
	sort.Slice(out, func(i, j int) bool {
		if !out[i].start.Equal(out[j].start) {
			return out[i].start.Before(out[j].start)
		}
		return out[i].blockID < out[j].blockID
	})
	return out
}

func clip(b model.ScheduleBlock, s model.Schedule, start, end, windowStart, windowEnd time.Time) (span, bool) {
	if !end.After(windowStart) || !start.Before(windowEnd) {
		return span{}, false
	}
	if start.Before(windowStart) {
		start = windowStart
	}
	if end.After(windowEnd) {
		end = windowEnd
	}
	return span{
		start:        start,
		end:          end,
		blockID:      b.ID,
		contentID:    b.ContentID,
		djID:         b.DjID,
		scriptID:     b.ScriptID,
		scheduleID:   s.ID,
		scheduleName: s.Name,
	}, true
}

// paint inserts sp into the covered set, truncating or splitting any
// previously painted interval it overlaps. Because layers are applied from
// lowest to highest precedence, the incoming span always wins.
func paint(existing []span, sp span) []span {
	out := make([]span, 0, len(existing)+2)
	for _, old := range existing {
		if !old.end.After(sp.start) || !sp.end.After(old.start) {
			out = append(out, old)
			continue
		}
		if old.start.Before(sp.start) {
			left := old
			left.end = sp.start
			out = append(out, left)
		}
		if old.end.After(sp.end) {
			right := old
			right.start = sp.end
			out = append(out, right)
		}
	}
	return append(out, sp)
}

// coalesce merges contiguous spans originating from the same block, and
// contiguous fallback spans. Compaction only; correctness never depends on it.
func coalesce(spans []span) []span {
	out := spans[:0]
	for _, sp := range spans {
		if n := len(out); n > 0 {
			prev := &out[n-1]
			if prev.blockID == sp.blockID && prev.end.Equal(sp.start) {
				prev.end = sp.end
				continue
			}
		}
		out = append(out, sp)
	}
	return out
}

func toEntries(spans []span) []model.TimelineEntry {
	entries := make([]model.TimelineEntry, 0, len(spans))
	for _, sp := range spans {
		entry := model.TimelineEntry{Start: sp.start, End: sp.end}
		if sp.blockID != 0 {
			scheduleID := sp.scheduleID
			entry.ContentID = sp.contentID
			entry.DjID = sp.djID
			entry.ScriptID = sp.scriptID
			entry.SourceScheduleID = &scheduleID
			entry.SourceScheduleName = sp.scheduleName
		}
		entries = append(entries, entry)
	}
	return entries
}
