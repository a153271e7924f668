package db

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/model"
	"github.com/Aircast-Systems/aircast/internal/scheduling"
)

// lockSchedule serializes check-then-write sequences per schedule: the row
// lock is held until the surrounding transaction commits, so two concurrent
// block edits on the same schedule cannot both validate against a stale
// view. Returns sql.ErrNoRows for an unknown schedule.
func lockSchedule(tx *sqlx.Tx, scheduleID int) (model.Schedule, error) {
	var s model.Schedule
	err := tx.Get(&s, `SELECT * FROM schedules WHERE id = $1 FOR UPDATE;`, scheduleID)
	return s, err
}

func listBlocksTx(tx *sqlx.Tx, scheduleID int) ([]model.ScheduleBlock, error) {
	var out []model.ScheduleBlock
	err := tx.Select(&out, `SELECT * FROM schedule_blocks WHERE schedule_id = $1 ORDER BY id;`, scheduleID)
	return out, err
}

func ListScheduleBlocks(scheduleID int) ([]model.ScheduleBlock, error) {
	var out []model.ScheduleBlock
	if err := DB.Select(&out, `SELECT * FROM schedule_blocks WHERE schedule_id = $1 ORDER BY id;`, scheduleID); err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("ListScheduleBlocks failed")
		return nil, err
	}
	return out, nil
}

// CreateScheduleBlock validates the candidate against its siblings under
// the schedule row lock and inserts it. Validation failures come back as
// scheduling errors (overlap, duration, recurrence mismatch) and leave the
// schedule untouched.
func CreateScheduleBlock(scheduleID int, candidate model.ScheduleBlock) (model.ScheduleBlock, error) {
	tx, err := DB.Beginx()
	if err != nil {
		return model.ScheduleBlock{}, err
	}
	defer tx.Rollback()

	sched, err := lockSchedule(tx, scheduleID)
	if err != nil {
		return model.ScheduleBlock{}, err
	}
	existing, err := listBlocksTx(tx, scheduleID)
	if err != nil {
		return model.ScheduleBlock{}, err
	}
	if err := scheduling.CheckBlock(sched.ScheduleType, candidate, existing, 0); err != nil {
		return model.ScheduleBlock{}, err
	}

	var b model.ScheduleBlock
	const q = `
	INSERT INTO schedule_blocks
	  (schedule_id, content_id, dj_id, script_id, day_of_week, specific_date,
	   start_time, duration_minutes, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	RETURNING *;`
	if err := tx.Get(&b, q,
		scheduleID, candidate.ContentID, candidate.DjID, candidate.ScriptID,
		candidate.DayOfWeek, candidate.SpecificDate,
		candidate.StartTime, candidate.DurationMinutes); err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("CreateScheduleBlock failed")
		return model.ScheduleBlock{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.ScheduleBlock{}, err
	}
	return b, nil
}

// UpdateScheduleBlock revalidates the edited block against every sibling
// except itself, under the same per-schedule lock as create.
func UpdateScheduleBlock(scheduleID, blockID int, candidate model.ScheduleBlock) (model.ScheduleBlock, error) {
	tx, err := DB.Beginx()
	if err != nil {
		return model.ScheduleBlock{}, err
	}
	defer tx.Rollback()

	sched, err := lockSchedule(tx, scheduleID)
	if err != nil {
		return model.ScheduleBlock{}, err
	}
	existing, err := listBlocksTx(tx, scheduleID)
	if err != nil {
		return model.ScheduleBlock{}, err
	}
	if err := scheduling.CheckBlock(sched.ScheduleType, candidate, existing, blockID); err != nil {
		return model.ScheduleBlock{}, err
	}

	var b model.ScheduleBlock
	const q = `
	UPDATE schedule_blocks
	   SET content_id = $3, dj_id = $4, script_id = $5, day_of_week = $6,
	       specific_date = $7, start_time = $8, duration_minutes = $9,
	       updated_at = now()
	 WHERE id = $2 AND schedule_id = $1
	 RETURNING *;`
	if err := tx.Get(&b, q,
		scheduleID, blockID,
		candidate.ContentID, candidate.DjID, candidate.ScriptID,
		candidate.DayOfWeek, candidate.SpecificDate,
		candidate.StartTime, candidate.DurationMinutes); err != nil {
		log.Error().Err(err).Int("block_id", blockID).Msg("UpdateScheduleBlock failed")
		return model.ScheduleBlock{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.ScheduleBlock{}, err
	}
	return b, nil
}

func DeleteScheduleBlock(scheduleID, blockID int) (bool, error) {
	res, err := DB.Exec(`DELETE FROM schedule_blocks WHERE id = $1 AND schedule_id = $2;`, blockID, scheduleID)
	if err != nil {
		log.Error().Err(err).Int("block_id", blockID).Msg("DeleteScheduleBlock failed")
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
