package model

import "time"

// Script is a transform applied at playback. The server only stores and
// serves it; execution happens on the node.
type Script struct {
	ID            int       `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Description   *string   `db:"description" json:"description"`
	ScriptType    string    `db:"script_type" json:"script_type"`
	ScriptContent string    `db:"script_content" json:"script_content"`
	CreatedBy     int       `db:"created_by" json:"created_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
