package db

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/model"
)

// SetNodeAssignment replaces the node's precedence list wholesale in one
// transaction; position 0 is the highest precedence. Every referenced
// schedule must exist at write time. There is no incremental add/remove.
func SetNodeAssignment(nodeID int, orderedScheduleIDs []int) error {
	tx, err := DB.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, scheduleID := range orderedScheduleIDs {
		var exists bool
		if err := tx.Get(&exists, `SELECT EXISTS (SELECT 1 FROM schedules WHERE id = $1);`, scheduleID); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w %d", ErrUnknownScheduleID, scheduleID)
		}
	}

	if _, err := tx.Exec(`DELETE FROM node_schedules WHERE node_id = $1;`, nodeID); err != nil {
		log.Error().Err(err).Int("node_id", nodeID).Msg("SetNodeAssignment clear failed")
		return err
	}
	for position, scheduleID := range orderedScheduleIDs {
		if _, err := tx.Exec(`
		INSERT INTO node_schedules (node_id, schedule_id, position)
		VALUES ($1, $2, $3);`, nodeID, scheduleID, position); err != nil {
			log.Error().Err(err).Int("node_id", nodeID).Int("schedule_id", scheduleID).Msg("SetNodeAssignment insert failed")
			return err
		}
	}
	return tx.Commit()
}

// GetNodeAssignment returns the node's schedule ids in precedence order.
func GetNodeAssignment(nodeID int) ([]int, error) {
	out := []int{}
	const q = `
	SELECT schedule_id FROM node_schedules
	 WHERE node_id = $1
	 ORDER BY position;`
	if err := DB.Select(&out, q, nodeID); err != nil {
		log.Error().Err(err).Int("node_id", nodeID).Msg("GetNodeAssignment failed")
		return nil, err
	}
	return out, nil
}

// ListAssignedSchedules returns the node's schedules in precedence order.
// Schedules deleted since assignment simply drop out of the join; inactive
// ones are returned and left for the resolver to skip.
func ListAssignedSchedules(nodeID int) ([]model.Schedule, error) {
	var out []model.Schedule
	const q = `
	SELECT s.* FROM node_schedules ns
	  JOIN schedules s ON s.id = ns.schedule_id
	 WHERE ns.node_id = $1
	 ORDER BY ns.position;`
	if err := DB.Select(&out, q, nodeID); err != nil {
		log.Error().Err(err).Int("node_id", nodeID).Msg("ListAssignedSchedules failed")
		return nil, err
	}
	return out, nil
}

// NodesAssignedToSchedule returns the ids of nodes whose assignment lists
// reference the schedule; used to target cache invalidation and update
// notifications after a write.
func NodesAssignedToSchedule(scheduleID int) ([]int, error) {
	out := []int{}
	if err := DB.Select(&out, `SELECT node_id FROM node_schedules WHERE schedule_id = $1 ORDER BY node_id;`, scheduleID); err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("NodesAssignedToSchedule failed")
		return nil, err
	}
	return out, nil
}
