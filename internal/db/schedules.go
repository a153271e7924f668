package db

import (
	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/model"
)

func CreateSchedule(name string, description *string, scheduleType string, priority int, isActive bool, djID *int, createdBy int) (model.Schedule, error) {
	var s model.Schedule
	const q = `
	INSERT INTO schedules
	  (name, description, schedule_type, priority, is_active, dj_id, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
	RETURNING *;`
	if err := DB.Get(&s, q, name, description, scheduleType, priority, isActive, djID, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateSchedule failed")
		return model.Schedule{}, err
	}
	return s, nil
}

func ListSchedules() ([]model.Schedule, error) {
	var out []model.Schedule
	if err := DB.Select(&out, `SELECT * FROM schedules ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListSchedules failed")
		return nil, err
	}
	return out, nil
}

func GetSchedule(scheduleID int) (model.Schedule, error) {
	var s model.Schedule
	err := DB.Get(&s, `SELECT * FROM schedules WHERE id = $1;`, scheduleID)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("GetSchedule failed")
	}
	return s, err
}

// UpdateSchedule edits metadata only; schedule_type is fixed at creation
// because the recurrence shape of existing blocks depends on it.
func UpdateSchedule(scheduleID int, name *string, description *string, priority *int, isActive *bool, djID *int) (model.Schedule, error) {
	var s model.Schedule
	const q = `
	UPDATE schedules
	   SET name        = COALESCE($2, name),
	       description = COALESCE($3, description),
	       priority    = COALESCE($4, priority),
	       is_active   = COALESCE($5, is_active),
	       dj_id       = COALESCE($6, dj_id),
	       updated_at  = now()
	 WHERE id = $1
	 RETURNING *;`
	if err := DB.Get(&s, q, scheduleID, name, description, priority, isActive, djID); err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("UpdateSchedule failed")
		return model.Schedule{}, err
	}
	return s, nil
}

// DeleteSchedule removes the schedule; its blocks and node assignments go
// with it via ON DELETE CASCADE.
func DeleteSchedule(scheduleID int) error {
	_, err := DB.Exec(`DELETE FROM schedules WHERE id = $1;`, scheduleID)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("DeleteSchedule failed")
	}
	return err
}
