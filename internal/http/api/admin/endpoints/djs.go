package endpoints

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aircast-Systems/aircast/internal/db"
	"github.com/Aircast-Systems/aircast/internal/http/api"
	"github.com/Aircast-Systems/aircast/internal/http/api/admin/packets"
	"github.com/Aircast-Systems/aircast/internal/model"
)

// DjsModule mounts DJ persona management.
func DjsModule(store db.Store) api.Module {
	ctl := &djManager{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/djs", ctl.createDj)
		c.GET("/djs", ctl.listDjs)
		c.GET("/djs/:id", ctl.getDj)
		c.PUT("/djs/:id", ctl.updateDj)
		c.DELETE("/djs/:id", ctl.deleteDj)
	})
}

type djManager struct {
	store db.Store
}

// POST /api/admin/djs
func (m *djManager) createDj(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var request packets.CreateDjProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	voiceConfig := request.VoiceConfigJSON
	if voiceConfig == "" {
		voiceConfig = "{}"
	}

	dj, err := m.store.CreateDjProfile(request.Name, request.PersonalityPrompt, voiceConfig,
		request.Talkativeness, user.ID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not create dj profile"}
	}
	return dj, nil
}

// GET /api/admin/djs
func (m *djManager) listDjs(ctx *gin.Context, user *model.User) (any, *api.Error) {
	djs, err := m.store.ListDjProfiles()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list dj profiles"}
	}
	return djs, nil
}

// GET /api/admin/djs/:id
func (m *djManager) getDj(ctx *gin.Context, user *model.User) (any, *api.Error) {
	djID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	dj, err := m.store.GetDjProfileByID(djID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "dj profile not found"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not fetch dj profile"}
	}
	return dj, nil
}

// PUT /api/admin/djs/:id
func (m *djManager) updateDj(ctx *gin.Context, user *model.User) (any, *api.Error) {
	djID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateDjProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := m.store.UpdateDjProfile(djID, request.Name, request.PersonalityPrompt,
		request.VoiceConfigJSON, request.Talkativeness); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update dj profile"}
	}

	dj, err := m.store.GetDjProfileByID(djID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not fetch dj profile"}
	}
	return dj, nil
}

// DELETE /api/admin/djs/:id
func (m *djManager) deleteDj(ctx *gin.Context, user *model.User) (any, *api.Error) {
	djID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	if err := m.store.DeleteDjProfile(djID); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete dj profile"}
	}
	return gin.H{"deleted": djID}, nil
}
