package packets

// ScheduleBlockResponse is one span of the node's effective day. Blocks tile
// the station-local day in order; Fallback spans carry no content and the
// node plays its default programming.
type ScheduleBlockResponse struct {
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	ContentID       *int   `json:"content_id"`
	DjID            *int   `json:"dj_id"`
	ScriptID        *int   `json:"script_id"`
	ScheduleName    string `json:"schedule_name"`
	Fallback        bool   `json:"fallback"`
}

type ScheduleResponse struct {
	Date     string                  `json:"date"`
	Timezone string                  `json:"timezone"`
	Blocks   []ScheduleBlockResponse `json:"blocks"`
}
