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

// ScriptsModule mounts playback script management.
func ScriptsModule(store db.Store) api.Module {
	ctl := &scriptManager{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/scripts", ctl.createScript)
		c.GET("/scripts", ctl.listScripts)
		c.GET("/scripts/:id", ctl.getScript)
		c.PUT("/scripts/:id", ctl.updateScript)
		c.DELETE("/scripts/:id", ctl.deleteScript)
	})
}

type scriptManager struct {
	store db.Store
}

// POST /api/admin/scripts
func (m *scriptManager) createScript(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var request packets.CreateScriptRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	script, err := m.store.CreateScript(request.Name, request.Description, request.ScriptType,
		request.ScriptContent, user.ID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not create script"}
	}
	return script, nil
}

// GET /api/admin/scripts
func (m *scriptManager) listScripts(ctx *gin.Context, user *model.User) (any, *api.Error) {
	scripts, err := m.store.ListScripts()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list scripts"}
	}
	return scripts, nil
}

// GET /api/admin/scripts/:id
func (m *scriptManager) getScript(ctx *gin.Context, user *model.User) (any, *api.Error) {
	scriptID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	script, err := m.store.GetScriptByID(scriptID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "script not found"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not fetch script"}
	}
	return script, nil
}

// PUT /api/admin/scripts/:id
func (m *scriptManager) updateScript(ctx *gin.Context, user *model.User) (any, *api.Error) {
	scriptID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateScriptRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := m.store.UpdateScript(scriptID, request.Name, request.Description,
		request.ScriptType, request.ScriptContent); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update script"}
	}

	script, err := m.store.GetScriptByID(scriptID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not fetch script"}
	}
	return script, nil
}

// DELETE /api/admin/scripts/:id
func (m *scriptManager) deleteScript(ctx *gin.Context, user *model.User) (any, *api.Error) {
	scriptID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	if err := m.store.DeleteScript(scriptID); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete script"}
	}
	return gin.H{"deleted": scriptID}, nil
}
