package db

import (
	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/model"
)

func CreateScript(name string, description *string, scriptType, scriptContent string, createdBy int) (model.Script, error) {
	var s model.Script
	const q = `
	INSERT INTO scripts
	  (name, description, script_type, script_content, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now())
	RETURNING *;`
	if err := DB.Get(&s, q, name, description, scriptType, scriptContent, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateScript failed")
		return model.Script{}, err
	}
	return s, nil
}

func ListScripts() ([]model.Script, error) {
	var out []model.Script
	if err := DB.Select(&out, `SELECT * FROM scripts ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListScripts failed")
		return nil, err
	}
	return out, nil
}

func GetScriptByID(scriptID int) (model.Script, error) {
	var s model.Script
	err := DB.Get(&s, `SELECT * FROM scripts WHERE id = $1;`, scriptID)
	if err != nil {
		log.Error().Err(err).Int("script_id", scriptID).Msg("GetScriptByID failed")
	}
	return s, err
}

func UpdateScript(scriptID int, name, description, scriptType, scriptContent *string) error {
	_, err := DB.Exec(`
	UPDATE scripts
	   SET name           = COALESCE($2, name),
	       description    = COALESCE($3, description),
	       script_type    = COALESCE($4, script_type),
	       script_content = COALESCE($5, script_content),
	       updated_at     = now()
	 WHERE id = $1;`,
		scriptID, name, description, scriptType, scriptContent)
	if err != nil {
		log.Error().Err(err).Int("script_id", scriptID).Msg("UpdateScript failed")
	}
	return err
}

func DeleteScript(scriptID int) error {
	_, err := DB.Exec(`DELETE FROM scripts WHERE id = $1;`, scriptID)
	if err != nil {
		log.Error().Err(err).Int("script_id", scriptID).Msg("DeleteScript failed")
	}
	return err
}
