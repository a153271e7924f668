package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aircast-Systems/aircast/internal/db"
	"github.com/Aircast-Systems/aircast/internal/http/api"
	adminapi "github.com/Aircast-Systems/aircast/internal/http/api/admin/endpoints"
	nodeapi "github.com/Aircast-Systems/aircast/internal/http/api/node/endpoints"
	"github.com/Aircast-Systems/aircast/internal/http/middleware"
	"github.com/Aircast-Systems/aircast/internal/scheduling"
)

const testJWTSecret = "test-secret"

// setup connects to the test database (skipping when TEST_DATABASE_URL is
// unset), resets state, and returns a router plus a valid admin token.
func setup(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db.InitTestDB(t)
	resetTables(t)

	store := db.NewStore(db.DB)
	svc := scheduling.NewService(store)

	router := gin.New()
	api.MountGroup(router, api.GroupConfig{Prefix: "/api/admin"},
		adminapi.AuthPublicModule(testJWTSecret, store),
	)
	api.MountGroup(router, api.GroupConfig{Prefix: "/api/admin", Auth: true, SecretKey: testJWTSecret},
		adminapi.AuthSessionModule(testJWTSecret, store),
		adminapi.NodesModule(store, svc),
		adminapi.SchedulesModule(store),
		adminapi.ContentModule(store, nil),
		adminapi.DjsModule(store),
		adminapi.ScriptsModule(store),
		adminapi.SettingsModule(store),
	)
	api.MountGroup(router, api.GroupConfig{Prefix: "/api/node"},
		nodeapi.NodeModule(store, svc),
	)

	hashed, err := middleware.HashPassword("testpassword")
	require.NoError(t, err)
	userID, err := store.CreateUser("admin@example.com", hashed, nil)
	require.NoError(t, err)
	token, err := middleware.GenerateJWT(userID, testJWTSecret)
	require.NoError(t, err)

	return router, token
}

func resetTables(t *testing.T) {
	t.Helper()
	_, err := db.DB.Exec(`
		TRUNCATE node_schedules, schedule_blocks, schedules, nodes,
		         content_items, dj_profiles, scripts, global_settings, users
		RESTART IDENTITY CASCADE;`)
	require.NoError(t, err)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestLoginIssuesToken(t *testing.T) {
	router, _ := setup(t)

	w := doJSON(t, router, http.MethodPost, "/api/admin/auth/login", "",
		map[string]string{"email": "admin@example.com", "password": "testpassword"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]string
	decode(t, w, &resp)
	assert.NotEmpty(t, resp["token"])

	w = doJSON(t, router, http.MethodPost, "/api/admin/auth/login", "",
		map[string]string{"email": "admin@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestScheduleBlockConflicts(t *testing.T) {
	router, token := setup(t)

	w := doJSON(t, router, http.MethodPost, "/api/admin/schedules", token,
		map[string]any{"name": "Weekday Mornings", "schedule_type": "weekly"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sched struct {
		ID int `json:"id"`
	}
	decode(t, w, &sched)

	blocksPath := fmt.Sprintf("/api/admin/schedules/%d/blocks", sched.ID)

	w = doJSON(t, router, http.MethodPost, blocksPath, token,
		map[string]any{"day_of_week": 0, "start_time": "10:00", "duration_minutes": 30})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// overlapping the 10:00-10:30 block is a conflict
	w = doJSON(t, router, http.MethodPost, blocksPath, token,
		map[string]any{"day_of_week": 0, "start_time": "10:15", "duration_minutes": 15})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// a touching block is not
	w = doJSON(t, router, http.MethodPost, blocksPath, token,
		map[string]any{"day_of_week": 0, "start_time": "10:30", "duration_minutes": 30})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// same wall-clock range on another weekday is not
	w = doJSON(t, router, http.MethodPost, blocksPath, token,
		map[string]any{"day_of_week": 1, "start_time": "10:00", "duration_minutes": 30})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// a dated block on a weekly schedule is a bad request
	w = doJSON(t, router, http.MethodPost, blocksPath, token,
		map[string]any{"specific_date": "2025-06-02", "start_time": "12:00", "duration_minutes": 30})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// crossing midnight is rejected before any overlap check
	w = doJSON(t, router, http.MethodPost, blocksPath, token,
		map[string]any{"day_of_week": 0, "start_time": "23:30", "duration_minutes": 60})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestAssignmentRejectsUnknownSchedule(t *testing.T) {
	router, token := setup(t)

	w := doJSON(t, router, http.MethodPost, "/api/admin/nodes", token,
		map[string]any{"name": "booth-1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		Node struct {
			ID int `json:"id"`
		} `json:"node"`
	}
	decode(t, w, &created)

	w = doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/admin/nodes/%d/schedules", created.Node.ID), token,
		map[string]any{"schedule_ids": []int{9999}})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	// reading the assignment of a nonexistent node is also a 404
	w = doJSON(t, router, http.MethodGet, "/api/admin/nodes/9999/schedules", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	// and the assignment stays empty
	w = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/admin/nodes/%d/schedules", created.Node.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var assignment struct {
		ScheduleIDs []int `json:"schedule_ids"`
	}
	decode(t, w, &assignment)
	assert.Empty(t, assignment.ScheduleIDs)
}

func TestNodeSchedulePull(t *testing.T) {
	router, token := setup(t)

	w := doJSON(t, router, http.MethodPost, "/api/admin/nodes", token,
		map[string]any{"name": "booth-2"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		Node struct {
			ID int `json:"id"`
		} `json:"node"`
		SecretKey string `json:"secret_key"`
	}
	decode(t, w, &created)
	require.NotEmpty(t, created.SecretKey)

	// unauthenticated pull fails
	req := httptest.NewRequest(http.MethodGet, "/api/node/schedule", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// with the key, an unassigned node gets a single fallback block covering the day
	req = httptest.NewRequest(http.MethodGet, "/api/node/schedule", nil)
	req.Header.Set("X-Node-Key", created.SecretKey)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Blocks []struct {
			StartTime       string `json:"start_time"`
			DurationMinutes int    `json:"duration_minutes"`
			Fallback        bool   `json:"fallback"`
		} `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Blocks, 1)
	assert.True(t, resp.Blocks[0].Fallback)
	assert.Equal(t, "00:00:00", resp.Blocks[0].StartTime)
	assert.Equal(t, 1440, resp.Blocks[0].DurationMinutes)
}

func TestNodeSchedulePullForDate(t *testing.T) {
	router, token := setup(t)

	w := doJSON(t, router, http.MethodPost, "/api/admin/nodes", token,
		map[string]any{"name": "booth-4"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		Node struct {
			ID int `json:"id"`
		} `json:"node"`
		SecretKey string `json:"secret_key"`
	}
	decode(t, w, &created)

	w = doJSON(t, router, http.MethodPost, "/api/admin/schedules", token,
		map[string]any{"name": "Monday Drive", "schedule_type": "weekly"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sched struct {
		ID int `json:"id"`
	}
	decode(t, w, &sched)

	w = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/admin/schedules/%d/blocks", sched.ID), token,
		map[string]any{"day_of_week": 0, "start_time": "09:00", "duration_minutes": 30})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/admin/nodes/%d/schedules", created.Node.ID), token,
		map[string]any{"schedule_ids": []int{sched.ID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// pre-fetch a specific Monday instead of the current day
	req := httptest.NewRequest(http.MethodGet, "/api/node/schedule?date=2025-06-02", nil)
	req.Header.Set("X-Node-Key", created.SecretKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Date   string `json:"date"`
		Blocks []struct {
			StartTime       string `json:"start_time"`
			DurationMinutes int    `json:"duration_minutes"`
			ScheduleName    string `json:"schedule_name"`
			Fallback        bool   `json:"fallback"`
		} `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-02", resp.Date)

	total := 0
	var scheduled []string
	for _, b := range resp.Blocks {
		total += b.DurationMinutes
		if !b.Fallback {
			scheduled = append(scheduled, b.StartTime)
			assert.Equal(t, 30, b.DurationMinutes)
			assert.Equal(t, "Monday Drive", b.ScheduleName)
		}
	}
	assert.Equal(t, 1440, total)
	assert.Equal(t, []string{"09:00:00"}, scheduled)

	// a Tuesday pull sees no occurrence of the Monday block
	req = httptest.NewRequest(http.MethodGet, "/api/node/schedule?date=2025-06-03", nil)
	req.Header.Set("X-Node-Key", created.SecretKey)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Blocks, 1)
	assert.True(t, resp.Blocks[0].Fallback)

	// malformed dates are rejected
	req = httptest.NewRequest(http.MethodGet, "/api/node/schedule?date=06-02-2025", nil)
	req.Header.Set("X-Node-Key", created.SecretKey)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestHeartbeatUpdatesNode(t *testing.T) {
	router, token := setup(t)

	w := doJSON(t, router, http.MethodPost, "/api/admin/nodes", token,
		map[string]any{"name": "booth-3"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		Node struct {
			ID int `json:"id"`
		} `json:"node"`
		SecretKey string `json:"secret_key"`
	}
	decode(t, w, &created)

	body, err := json.Marshal(map[string]any{"current_content_id": nil, "playback_position_secs": 12.5})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/node/heartbeat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Node-Key", created.SecretKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	w = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/admin/nodes/%d", created.Node.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var node struct {
		Status        string   `json:"status"`
		LastHeartbeat *string  `json:"last_heartbeat"`
		PositionSecs  *float64 `json:"playback_position_secs"`
	}
	decode(t, w, &node)
	assert.Equal(t, "online", node.Status)
	assert.NotNil(t, node.LastHeartbeat)
	require.NotNil(t, node.PositionSecs)
	assert.Equal(t, 12.5, *node.PositionSecs)
}
