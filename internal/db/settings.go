package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/model"
)

func ListSettings() ([]model.GlobalSetting, error) {
	var out []model.GlobalSetting
	if err := DB.Select(&out, `SELECT * FROM global_settings ORDER BY key;`); err != nil {
		log.Error().Err(err).Msg("ListSettings failed")
		return nil, err
	}
	return out, nil
}

// GetSettingValue returns the stored value, or "" when the key was never
// set. Missing settings are not an error; callers pick their own default.
func GetSettingValue(key string) (string, error) {
	var value string
	err := DB.Get(&value, `SELECT value FROM global_settings WHERE key = $1;`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("GetSettingValue failed")
		return "", err
	}
	return value, nil
}

func UpsertSetting(key, value string, description *string) (model.GlobalSetting, error) {
	var s model.GlobalSetting
	const q = `
	INSERT INTO global_settings (key, value, description, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (key) DO UPDATE
	   SET value = EXCLUDED.value,
	       description = COALESCE(EXCLUDED.description, global_settings.description),
	       updated_at = now()
	RETURNING *;`
	if err := DB.Get(&s, q, key, value, description); err != nil {
		log.Error().Err(err).Str("key", key).Msg("UpsertSetting failed")
		return model.GlobalSetting{}, err
	}
	return s, nil
}
