package model

import "time"

// SettingStationTimezone holds the IANA zone name used to interpret
// stored wall-clock times for this station.
const SettingStationTimezone = "station_timezone"

type GlobalSetting struct {
	Key         string    `db:"key" json:"key"`
	Value       string    `db:"value" json:"value"`
	Description *string   `db:"description" json:"description"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
