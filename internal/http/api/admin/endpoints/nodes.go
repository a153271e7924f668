package endpoints

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"time"

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

// NodesModule mounts playback node management and the effective timeline view.
func NodesModule(store db.Store, svc *scheduling.Service) api.Module {
	ctl := &nodeManager{store: store, svc: svc}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/nodes", ctl.createNode)
		c.GET("/nodes", ctl.listNodes)
		c.GET("/nodes/:id", ctl.getNode)
		c.DELETE("/nodes/:id", ctl.deleteNode)
		c.PUT("/nodes/:id/schedules", ctl.setAssignment)
		c.GET("/nodes/:id/schedules", ctl.getAssignment)
		c.GET("/nodes/:id/timeline", ctl.getTimeline)
	})
}

type nodeManager struct {
	store db.Store
	svc   *scheduling.Service
}

func pathID(ctx *gin.Context, name string) (int, *api.Error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, &api.Error{Code: http.StatusBadRequest, Message: "invalid " + name}
	}
	return id, nil
}

func newNodeSecretKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// POST /api/admin/nodes
func (n *nodeManager) createNode(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var request packets.CreateNodeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	secretKey, err := newNodeSecretKey()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not generate secret key"}
	}

	node, err := n.store.CreateNode(request.Name, secretKey, user.ID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not create node"}
	}

	return packets.CreatedNodeResponse{Node: node, SecretKey: secretKey}, nil
}

// GET /api/admin/nodes
func (n *nodeManager) listNodes(ctx *gin.Context, user *model.User) (any, *api.Error) {
	nodes, err := n.store.ListNodes()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not list nodes"}
	}
	return nodes, nil
}

// GET /api/admin/nodes/:id
func (n *nodeManager) getNode(ctx *gin.Context, user *model.User) (any, *api.Error) {
	nodeID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	node, err := n.store.GetNodeByID(nodeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "node not found"}
	}
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not fetch node"}
	}
	return node, nil
}

// DELETE /api/admin/nodes/:id
func (n *nodeManager) deleteNode(ctx *gin.Context, user *model.User) (any, *api.Error) {
	nodeID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	if err := n.store.DeleteNode(nodeID); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not delete node"}
	}
	redis.InvalidateNode(ctx.Request.Context(), nodeID)
	return gin.H{"deleted": nodeID}, nil
}

// PUT /api/admin/nodes/:id/schedules
//
// Replaces the node's precedence list wholesale. Index 0 wins conflicts.
func (n *nodeManager) setAssignment(ctx *gin.Context, user *model.User) (any, *api.Error) {
	nodeID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.AssignSchedulesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := n.store.GetNodeByID(nodeID); errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "node not found"}
	} else if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not fetch node"}
	}

	if err := n.store.SetNodeAssignment(nodeID, request.ScheduleIDs); err != nil {
		if errors.Is(err, db.ErrUnknownScheduleID) {
			return nil, &api.Error{Code: http.StatusNotFound, Message: err.Error()}
		}
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not update assignment"}
	}

	redis.InvalidateNode(ctx.Request.Context(), nodeID)
	middleware.NotifyScheduleUpdated([]int{nodeID})

	return packets.AssignmentResponse{NodeID: nodeID, ScheduleIDs: request.ScheduleIDs}, nil
}

// GET /api/admin/nodes/:id/schedules
func (n *nodeManager) getAssignment(ctx *gin.Context, user *model.User) (any, *api.Error) {
	nodeID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	if _, err := n.store.GetNodeByID(nodeID); errors.Is(err, sql.ErrNoRows) {
		return nil, &api.Error{Code: http.StatusNotFound, Message: "node not found"}
	} else if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not fetch node"}
	}
	ids, err := n.store.GetNodeAssignment(nodeID)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not fetch assignment"}
	}
	return packets.AssignmentResponse{NodeID: nodeID, ScheduleIDs: ids}, nil
}

// GET /api/admin/nodes/:id/timeline?from=...&to=...
//
// from/to are RFC 3339; when omitted, the window defaults to the current
// station-local day.
func (n *nodeManager) getTimeline(ctx *gin.Context, user *model.User) (any, *api.Error) {
	nodeID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	from, to, apiErr := timelineWindow(ctx, n.svc)
	if apiErr != nil {
		return nil, apiErr
	}

	entries, ok := redis.GetTimeline(ctx.Request.Context(), nodeID, from, to)
	if !ok {
		var err error
		entries, err = n.svc.NodeTimeline(nodeID, from, to)
		if err != nil {
			log.Error().Err(err).Int("node_id", nodeID).Msg("timeline resolution failed")
			return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not resolve timeline"}
		}
		redis.SetTimeline(ctx.Request.Context(), nodeID, from, to, entries)
	}

	return packets.TimelineResponse{
		NodeID:   nodeID,
		From:     from.Format(time.RFC3339),
		To:       to.Format(time.RFC3339),
		Timezone: n.svc.StationZone().String(),
		Entries:  entries,
	}, nil
}

func timelineWindow(ctx *gin.Context, svc *scheduling.Service) (time.Time, time.Time, *api.Error) {
	fromStr, toStr := ctx.Query("from"), ctx.Query("to")
	if fromStr == "" && toStr == "" {
		from, to := svc.DayWindow(time.Now())
		return from, to, nil
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, &api.Error{Code: http.StatusBadRequest, Message: "invalid from timestamp"}
	}
	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, &api.Error{Code: http.StatusBadRequest, Message: "invalid to timestamp"}
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, &api.Error{Code: http.StatusBadRequest, Message: "to must be after from"}
	}
	return from, to, nil
}
