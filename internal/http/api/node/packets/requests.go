package packets

type HeartbeatRequest struct {
	IPAddress            *string  `json:"ip_address"`
	CurrentContentID     *int     `json:"current_content_id"`
	PlaybackPositionSecs *float64 `json:"playback_position_secs"`
	PlaybackDurationSecs *float64 `json:"playback_duration_secs"`
}
