package model

import "time"

// DjProfile configures an auto-selection DJ persona. Opaque to the
// scheduling core: a block referencing a DJ instead of fixed content
// means "let the DJ pick at playback time".
type DjProfile struct {
	ID                int       `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	PersonalityPrompt string    `db:"personality_prompt" json:"personality_prompt"`
	VoiceConfigJSON   string    `db:"voice_config_json" json:"voice_config_json"`
	Talkativeness     float64   `db:"talkativeness" json:"talkativeness"`
	CreatedBy         int       `db:"created_by" json:"created_by"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
