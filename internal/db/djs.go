package db

import (
	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/model"
)

func CreateDjProfile(name, personalityPrompt, voiceConfigJSON string, talkativeness float64, createdBy int) (model.DjProfile, error) {
	var d model.DjProfile
	const q = `
	INSERT INTO dj_profiles
	  (name, personality_prompt, voice_config_json, talkativeness, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now())
	RETURNING *;`
	if err := DB.Get(&d, q, name, personalityPrompt, voiceConfigJSON, talkativeness, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateDjProfile failed")
		return model.DjProfile{}, err
	}
	return d, nil
}

func ListDjProfiles() ([]model.DjProfile, error) {
	var out []model.DjProfile
	if err := DB.Select(&out, `SELECT * FROM dj_profiles ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListDjProfiles failed")
		return nil, err
	}
	return out, nil
}

func GetDjProfileByID(djID int) (model.DjProfile, error) {
	var d model.DjProfile
	err := DB.Get(&d, `SELECT * FROM dj_profiles WHERE id = $1;`, djID)
	if err != nil {
		log.Error().Err(err).Int("dj_id", djID).Msg("GetDjProfileByID failed")
	}
	return d, err
}

func UpdateDjProfile(djID int, name, personalityPrompt, voiceConfigJSON *string, talkativeness *float64) error {
	_, err := DB.Exec(`
	UPDATE dj_profiles
	   SET name               = COALESCE($2, name),
	       personality_prompt = COALESCE($3, personality_prompt),
	       voice_config_json  = COALESCE($4, voice_config_json),
	       talkativeness      = COALESCE($5, talkativeness),
	       updated_at         = now()
	 WHERE id = $1;`,
		djID, name, personalityPrompt, voiceConfigJSON, talkativeness)
	if err != nil {
		log.Error().Err(err).Int("dj_id", djID).Msg("UpdateDjProfile failed")
	}
	return err
}

func DeleteDjProfile(djID int) error {
	_, err := DB.Exec(`DELETE FROM dj_profiles WHERE id = $1;`, djID)
	if err != nil {
		log.Error().Err(err).Int("dj_id", djID).Msg("DeleteDjProfile failed")
	}
	return err
}
