package model

import "time"

type ContentItem struct {
	ID              int       `db:"id"               json:"id"`
	Title           string    `db:"title"            json:"title"`
	Description     *string   `db:"description"      json:"description"`
	ContentType     string    `db:"content_type"     json:"content_type"`
	ContentPath     string    `db:"content_path"     json:"content_path"`
	DurationMinutes *int      `db:"duration_minutes" json:"duration_minutes"`
	Tags            *string   `db:"tags"             json:"tags"`
	CreatedBy       int       `db:"created_by"       json:"created_by"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"       json:"updated_at"`
}
