package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Aircast-Systems/aircast/internal/db"
	"github.com/Aircast-Systems/aircast/internal/http/middleware"
	"github.com/Aircast-Systems/aircast/internal/redis"
	"github.com/Aircast-Systems/aircast/internal/scheduling"
)

func main() {
	env := LoadEnvironment()

	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	if env.MQTTBrokerURL != "" {
		middleware.SetBrokerURL(env.MQTTBrokerURL)
		if err := middleware.InitMQTT("aircast-server"); err != nil {
			log.Error().Err(err).Msg("MQTT init failed, continuing without push notifications")
		}
		defer middleware.CleanupMQTT()
	}

	store := db.NewStore(db.DB)
	storageSystem := InitStorage(env)
	svc := scheduling.NewService(store)

	r := gin.Default()
	RegisterRoutes(r, env, store, storageSystem, svc)

	log.Info().Str("address", env.ServerAddress).Msg("server listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
