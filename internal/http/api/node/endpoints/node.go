package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/db"
	"github.com/Aircast-Systems/aircast/internal/http/api"
	"github.com/Aircast-Systems/aircast/internal/http/api/node/packets"
	"github.com/Aircast-Systems/aircast/internal/model"
	"github.com/Aircast-Systems/aircast/internal/redis"
	"github.com/Aircast-Systems/aircast/internal/scheduling"
)

// NodeModule mounts the device-facing endpoints. Nodes authenticate with
// their secret key in the X-Node-Key header, not a JWT.
func NodeModule(store db.Store, svc *scheduling.Service) api.Module {
	ctl := &nodeAgent{store: store, svc: svc}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PublicPOST("/heartbeat", ctl.heartbeat)
		c.PublicGET("/schedule", ctl.getSchedule)
	})
}

type nodeAgent struct {
	store db.Store
	svc   *scheduling.Service
}

func (n *nodeAgent) authenticate(ctx *gin.Context) (model.Node, *api.Error) {
	key := ctx.GetHeader("X-Node-Key")
	if key == "" {
		return model.Node{}, &api.Error{Code: http.StatusUnauthorized, Message: "missing node key"}
	}
	node, err := n.store.GetNodeBySecretKey(key)
	if err != nil {
		return model.Node{}, &api.Error{Code: http.StatusUnauthorized, Message: "unknown node key"}
	}
	return node, nil
}

// POST /api/node/heartbeat
func (n *nodeAgent) heartbeat(ctx *gin.Context) (any, *api.Error) {
	node, apiErr := n.authenticate(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.HeartbeatRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	ip := request.IPAddress
	if ip == nil {
		clientIP := ctx.ClientIP()
		ip = &clientIP
	}

	if err := n.store.RecordNodeHeartbeat(node.ID, ip, request.CurrentContentID,
		request.PlaybackPositionSecs, request.PlaybackDurationSecs); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not record heartbeat"}
	}

	return gin.H{"ok": true}, nil
}

// GET /api/node/schedule?date=2006-01-02
//
// Returns the node's effective programming for one station-local day as an
// ordered list of blocks tiling that day. Without a date parameter the
// current day is served; with one, nodes can pre-fetch upcoming days.
func (n *nodeAgent) getSchedule(ctx *gin.Context) (any, *api.Error) {
	node, apiErr := n.authenticate(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	loc := n.svc.StationZone()
	from, to := n.svc.DayWindow(time.Now())
	if dateStr := ctx.Query("date"); dateStr != "" {
		day, err := time.ParseInLocation("2006-01-02", dateStr, loc)
		if err != nil {
			return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid date, want YYYY-MM-DD"}
		}
		from, to = day, day.AddDate(0, 0, 1)
	}

	entries, ok := redis.GetTimeline(ctx.Request.Context(), node.ID, from, to)
	if !ok {
		var err error
		entries, err = n.svc.NodeTimeline(node.ID, from, to)
		if err != nil {
			log.Error().Err(err).Int("node_id", node.ID).Msg("schedule resolution failed")
			return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not resolve schedule"}
		}
		redis.SetTimeline(ctx.Request.Context(), node.ID, from, to, entries)
	}

	blocks := make([]packets.ScheduleBlockResponse, 0, len(entries))
	for _, entry := range entries {
		local := entry.Start.In(loc)
		blocks = append(blocks, packets.ScheduleBlockResponse{
			StartTime:       local.Format("15:04:05"),
			DurationMinutes: int(entry.End.Sub(entry.Start) / time.Minute),
			ContentID:       entry.ContentID,
			DjID:            entry.DjID,
			ScriptID:        entry.ScriptID,
			ScheduleName:    entry.SourceScheduleName,
			Fallback:        entry.Fallback(),
		})
	}

	return packets.ScheduleResponse{
		Date:     from.Format("2006-01-02"),
		Timezone: loc.String(),
		Blocks:   blocks,
	}, nil
}
