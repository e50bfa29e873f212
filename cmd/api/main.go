package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/autoline-kr/dealer-backoffice/internal/cache"
	"github.com/autoline-kr/dealer-backoffice/internal/config"
	dbpkg "github.com/autoline-kr/dealer-backoffice/internal/db"
	"github.com/autoline-kr/dealer-backoffice/internal/logger"
	"github.com/autoline-kr/dealer-backoffice/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.Environment)

	db := dbpkg.NewDB(cfg, log)
	redisClient := cache.NewRedis(cfg, log)

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, redisClient, log)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
