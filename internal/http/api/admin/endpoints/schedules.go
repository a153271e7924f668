package endpoints

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/db"
	"github.com/Aircast-Systems/aircast/internal/http/api"
	"github.com/Aircast-Systems/aircast/internal/http/api/admin/packets"
	"github.com/Aircast-Systems/aircast/internal/http/middleware"
	"github.com/Aircast-Systems/aircast/internal/model"
	"github.com/Aircast-Systems/aircast/internal/redis"
	"github.com/Aircast-Systems/aircast/internal/scheduling"
)

// SchedulesModule mounts schedule and schedule block management.
func SchedulesModule(store db.Store) api.Module {
	ctl := &scheduleManager{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/schedules", ctl.createSchedule)
		c.GET("/schedules", ctl.listSchedules)
		c.GET("/schedules/:id", ctl.getSchedule)
		c.PUT("/schedules/:id", ctl.updateSchedule)
		c.DELETE("/schedules/:id", ctl.deleteSchedule)
		c.GET("/schedules/:id/blocks", ctl.listBlocks)
		c.POST("/schedules/:id/blocks", ctl.createBlock)
		c.PUT("/schedules/:id/blocks/:blockID", ctl.updateBlock)
		c.DELETE("/schedules/:id/blocks/:blockID", ctl.deleteBlock)
	})
}

type scheduleManager struct {
	store db.Store
}

// invalidateSchedule drops cached timelines and pings every node whose
// assignment references the schedule.
func (s *scheduleManager) invalidateSchedule(ctx *gin.Context, scheduleID int) {
	nodeIDs, err := s.store.NodesAssignedToSchedule(scheduleID)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("could not list nodes for invalidation")
		return
	}
	for _, nodeID := range nodeIDs {
		redis.InvalidateNode(ctx.Request.Context(), nodeID)
	}
	middleware.NotifyScheduleUpdated(nodeIDs)
}

// blockError maps validation failures onto HTTP statuses. Overlaps are
// conflicts and carry the colliding block's id; everything else from the
// validator is a bad request.
func blockError(err error) *api.Error {
	var overlap *scheduling.OverlapError
	switch {
	case errors.As(err, &overlap):
		return &api.Error{Code: http.StatusConflict, Message: overlap.Error()}
	case errors.Is(err, scheduling.ErrInvalidTimeFormat),
		errors.Is(err, scheduling.ErrInvalidDuration),
		errors.Is(err, scheduling.ErrDurationCrossesDayBoundary),
		errors.Is(err, scheduling.ErrRecurrenceTypeMismatch):
		return &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, sql.ErrNoRows):
		return &api.Error{Code: http.StatusNotFound, Message: "not found"}
	default:
		return &api.Error{Code: http.StatusInternalServerError, Message: "could not save block"}
	}
}

// POST /api/admin/schedules
func (s *scheduleManager) createSchedule(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var request packets.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	isActive := true
	if request.IsActive != nil {
		isActive = *request.IsActive
	}

	sched, err := s.store.CreateSchedule(request.Name, request.Description, request.ScheduleType,
		request.Priority, isActive, request.DjID, user.ID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not create schedule"}
	}
	return sched, nil
}

// GET /api/admin/schedules
func (s *scheduleManager) listSchedules(ctx *gin.Context, user *model.User) (any, *api.Error) {
	schedules, err := s.store.ListSchedules()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list schedules"}
	}
	return schedules, nil
}

// GET /api/admin/schedules/:id
func (s *scheduleManager) getSchedule(ctx *gin.Context, user *model.User) (any, *api.Error) {
	scheduleID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	sched, err := s.store.GetSchedule(scheduleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "schedule not found"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not fetch schedule"}
	}
	return sched, nil
}

// PUT /api/admin/schedules/:id
//
// schedule_type is fixed at creation; there is no way to change it here.
func (s *scheduleManager) updateSchedule(ctx *gin.Context, user *model.User) (any, *api.Error) {
	scheduleID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	sched, err := s.store.UpdateSchedule(scheduleID, request.Name, request.Description,
		request.Priority, request.IsActive, request.DjID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "schedule not found"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update schedule"}
	}

	s.invalidateSchedule(ctx, scheduleID)
	return sched, nil
}

// DELETE /api/admin/schedules/:id
//
// Blocks and node assignments referencing the schedule cascade away.
func (s *scheduleManager) deleteSchedule(ctx *gin.Context, user *model.User) (any, *api.Error) {
	scheduleID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	// Snapshot affected nodes before the cascade removes the assignment rows.
	s.invalidateSchedule(ctx, scheduleID)

	if err := s.store.DeleteSchedule(scheduleID); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete schedule"}
	}
	return gin.H{"deleted": scheduleID}, nil
}

// GET /api/admin/schedules/:id/blocks
func (s *scheduleManager) listBlocks(ctx *gin.Context, user *model.User) (any, *api.Error) {
	scheduleID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	blocks, err := s.store.ListScheduleBlocks(scheduleID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list blocks"}
	}
	return blocks, nil
}

// POST /api/admin/schedules/:id/blocks
func (s *scheduleManager) createBlock(ctx *gin.Context, user *model.User) (any, *api.Error) {
	scheduleID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.ScheduleBlockRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if apiErr := s.checkContentRef(request.ContentID); apiErr != nil {
		return nil, apiErr
	}

	block, err := s.store.CreateScheduleBlock(scheduleID, blockFromRequest(request))
	if err != nil {
		return nil, blockError(err)
	}

	s.invalidateSchedule(ctx, scheduleID)
	return block, nil
}

// PUT /api/admin/schedules/:id/blocks/:blockID
func (s *scheduleManager) updateBlock(ctx *gin.Context, user *model.User) (any, *api.Error) {
	scheduleID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	blockID, apiErr := pathID(ctx, "blockID")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.ScheduleBlockRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if apiErr := s.checkContentRef(request.ContentID); apiErr != nil {
		return nil, apiErr
	}

	block, err := s.store.UpdateScheduleBlock(scheduleID, blockID, blockFromRequest(request))
	if err != nil {
		return nil, blockError(err)
	}

	s.invalidateSchedule(ctx, scheduleID)
	return block, nil
}

// DELETE /api/admin/schedules/:id/blocks/:blockID
func (s *scheduleManager) deleteBlock(ctx *gin.Context, user *model.User) (any, *api.Error) {
	scheduleID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	blockID, apiErr := pathID(ctx, "blockID")
	if apiErr != nil {
		return nil, apiErr
	}

	deleted, err := s.store.DeleteScheduleBlock(scheduleID, blockID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete block"}
	}
	if !deleted {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "block not found"}
	}

	s.invalidateSchedule(ctx, scheduleID)
	return gin.H{"deleted": blockID}, nil
}

func (s *scheduleManager) checkContentRef(contentID *int) *api.Error {
	if contentID == nil {
		return nil
	}
	exists, err := s.store.ContentExists(*contentID)
	if err != nil {
		return &api.Error{Code: http.StatusInternalServerError, Message: "could not verify content"}
	}
	if !exists {
		return &api.Error{Code: http.StatusBadRequest, Message: "content item does not exist"}
	}
	return nil
}

func blockFromRequest(r packets.ScheduleBlockRequest) model.ScheduleBlock {
	return model.ScheduleBlock{
		ContentID:       r.ContentID,
		DjID:            r.DjID,
		ScriptID:        r.ScriptID,
		DayOfWeek:       r.DayOfWeek,
		SpecificDate:    r.SpecificDate,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
	}
}
