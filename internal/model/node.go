package model

import "time"

// Node represents a playback device in the system.
type Node struct {
	ID                   int        `db:"id" json:"id"`
	Name                 string     `db:"name" json:"name"`
	SecretKey            string     `db:"secret_key" json:"-"`
	IPAddress            *string    `db:"ip_address" json:"ip_address"`
	Status               string     `db:"status" json:"status"`
	LastHeartbeat        *time.Time `db:"last_heartbeat" json:"last_heartbeat"`
	CurrentContentID     *int       `db:"current_content_id" json:"current_content_id"`
	PlaybackPositionSecs *float64   `db:"playback_position_secs" json:"playback_position_secs"`
	PlaybackDurationSecs *float64   `db:"playback_duration_secs" json:"playback_duration_secs"`
	CreatedBy            int        `db:"created_by" json:"created_by"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}
