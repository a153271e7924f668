package db

import (
	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/model"
)

func CreateContentItem(title string, description *string, contentType, contentPath string, durationMinutes *int, tags *string, createdBy int) (model.ContentItem, error) {
	var c model.ContentItem
	const q = `
	INSERT INTO content_items
	  (title, description, content_type, content_path, duration_minutes, tags, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
	RETURNING *;`
	if err := DB.Get(&c, q, title, description, contentType, contentPath, durationMinutes, tags, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateContentItem failed")
		return model.ContentItem{}, err
	}
	return c, nil
}

func ListContentItems() ([]model.ContentItem, error) {
	var out []model.ContentItem
	if err := DB.Select(&out, `SELECT * FROM content_items ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListContentItems failed")
		return nil, err
	}
	return out, nil
}

func GetContentItemByID(contentID int) (model.ContentItem, error) {
	var c model.ContentItem
	err := DB.Get(&c, `SELECT * FROM content_items WHERE id = $1;`, contentID)
	if err != nil {
		log.Error().Err(err).Int("content_id", contentID).Msg("GetContentItemByID failed")
	}
	return c, err
}

func UpdateContentItem(contentID int, title *string, description *string, contentType, contentPath *string, durationMinutes *int, tags *string) error {
	_, err := DB.Exec(`
	UPDATE content_items
	   SET title            = COALESCE($2, title),
	       description      = COALESCE($3, description),
	       content_type     = COALESCE($4, content_type),
	       content_path     = COALESCE($5, content_path),
	       duration_minutes = COALESCE($6, duration_minutes),
	       tags             = COALESCE($7, tags),
	       updated_at       = now()
	 WHERE id = $1;`,
		contentID, title, description, contentType, contentPath, durationMinutes, tags)
	if err != nil {
		log.Error().Err(err).Int("content_id", contentID).Msg("UpdateContentItem failed")
	}
	return err
}

func DeleteContentItem(contentID int) error {
	_, err := DB.Exec(`DELETE FROM content_items WHERE id = $1;`, contentID)
	if err != nil {
		log.Error().Err(err).Int("content_id", contentID).Msg("DeleteContentItem failed")
	}
	return err
}

// ContentExists is the existence check used by validation layers above the
// scheduling core; the core itself treats content ids as opaque.
func ContentExists(contentID int) (bool, error) {
	var exists bool
	err := DB.Get(&exists, `SELECT EXISTS (SELECT 1 FROM content_items WHERE id = $1);`, contentID)
	return exists, err
}
