package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Aircast-Systems/aircast/internal/db"
	"github.com/Aircast-Systems/aircast/internal/http/api"
	adminapi "github.com/Aircast-Systems/aircast/internal/http/api/admin/endpoints"
	nodeapi "github.com/Aircast-Systems/aircast/internal/http/api/node/endpoints"
	"github.com/Aircast-Systems/aircast/internal/scheduling"
	"github.com/Aircast-Systems/aircast/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, storageSystem storage.Storage, svc *scheduling.Service) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			"X-Node-Key",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		adminapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		adminapi.AuthSessionModule(env.SecretKey, store),
		adminapi.NodesModule(store, svc),
		adminapi.SchedulesModule(store),
		adminapi.ContentModule(store, storageSystem),
		adminapi.DjsModule(store),
		adminapi.ScriptsModule(store),
		adminapi.SettingsModule(store),
	)

	// Device endpoints authenticate with the node secret key, not JWT.
	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/node",
	},
		nodeapi.NodeModule(store, svc),
	)

	// Static content
	if !env.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}
