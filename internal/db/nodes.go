package db

import (
	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/model"
)

func CreateNode(name, secretKey string, createdBy int) (model.Node, error) {
	var n model.Node
	const q = `
	INSERT INTO nodes (name, secret_key, status, created_by, created_at, updated_at)
	VALUES ($1, $2, 'offline', $3, now(), now())
	RETURNING *;`
	if err := DB.Get(&n, q, name, secretKey, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateNode failed")
		return model.Node{}, err
	}
	return n, nil
}

func ListNodes() ([]model.Node, error) {
	var out []model.Node
	if err := DB.Select(&out, `SELECT * FROM nodes ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListNodes failed")
		return nil, err
	}
	return out, nil
}

func GetNodeByID(nodeID int) (model.Node, error) {
	var n model.Node
	err := DB.Get(&n, `SELECT * FROM nodes WHERE id = $1;`, nodeID)
	if err != nil {
		log.Error().Err(err).Int("node_id", nodeID).Msg("GetNodeByID failed")
	}
	return n, err
}

func GetNodeBySecretKey(secretKey string) (model.Node, error) {
	var n model.Node
	err := DB.Get(&n, `SELECT * FROM nodes WHERE secret_key = $1;`, secretKey)
	return n, err
}

func DeleteNode(nodeID int) error {
	_, err := DB.Exec(`DELETE FROM nodes WHERE id = $1;`, nodeID)
	if err != nil {
		log.Error().Err(err).Int("node_id", nodeID).Msg("DeleteNode failed")
	}
	return err
}

// RecordNodeHeartbeat updates liveness and playback telemetry reported by
// the node itself.
func RecordNodeHeartbeat(nodeID int, ipAddress *string, currentContentID *int, positionSecs, durationSecs *float64) error {
	_, err := DB.Exec(`
	UPDATE nodes
	   SET status = 'online',
	       last_heartbeat = now(),
	       ip_address = COALESCE($2, ip_address),
	       current_content_id = $3,
	       playback_position_secs = $4,
	       playback_duration_secs = $5,
	       updated_at = now()
	 WHERE id = $1;`,
		nodeID, ipAddress, currentContentID, positionSecs, durationSecs)
	if err != nil {
		log.Error().Err(err).Int("node_id", nodeID).Msg("RecordNodeHeartbeat failed")
	}
	return err
}
