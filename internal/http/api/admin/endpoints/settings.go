package endpoints

import (
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

// SettingsModule mounts station-wide settings.
func SettingsModule(store db.Store) api.Module {
	ctl := &settingsManager{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/settings", ctl.listSettings)
		c.PUT("/settings/:key", ctl.upsertSetting)
	})
}

type settingsManager struct {
	store db.Store
}

// GET /api/admin/settings
func (m *settingsManager) listSettings(ctx *gin.Context, user *model.User) (any, *api.Error) {
	settings, err := m.store.ListSettings()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list settings"}
	}
	return settings, nil
}

// PUT /api/admin/settings/:key
func (m *settingsManager) upsertSetting(ctx *gin.Context, user *model.User) (any, *api.Error) {
	key := ctx.Param("key")

	var request packets.UpsertSettingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if key == model.SettingStationTimezone {
		if _, err := scheduling.LoadZone(request.Value); err != nil {
			return nil, &api.Error{Code: http.StatusBadRequest, Message: "unknown timezone"}
		}
	}

	setting, err := m.store.UpsertSetting(key, request.Value, request.Description)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not save setting"}
	}

	// A timezone change shifts every node's resolved timeline.
	if key == model.SettingStationTimezone {
		nodes, err := m.store.ListNodes()
		if err != nil {
			log.Error().Err(err).Msg("could not list nodes for timezone invalidation")
		} else {
			nodeIDs := make([]int, 0, len(nodes))
			for _, node := range nodes {
				redis.InvalidateNode(ctx.Request.Context(), node.ID)
				nodeIDs = append(nodeIDs, node.ID)
			}
			middleware.NotifyScheduleUpdated(nodeIDs)
		}
	}

	return setting, nil
}
