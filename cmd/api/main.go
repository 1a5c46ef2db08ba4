package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harmoniahq/practice-api/internal/config"
	"github.com/harmoniahq/practice-api/internal/db"
	"github.com/harmoniahq/practice-api/internal/logger"
	"github.com/harmoniahq/practice-api/internal/middleware"
	"github.com/harmoniahq/practice-api/internal/routes"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	database := db.NewDB(cfg)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORSMiddleware())
	r.Use(gin.Recovery())

	routes.Register(r, cfg, database)

	log.Info("starting server", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
