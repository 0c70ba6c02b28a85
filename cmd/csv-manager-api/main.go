package main

import (
	"csv-manager/internal/api"
	"csv-manager/internal/api/handler"
	"csv-manager/internal/config"
	"csv-manager/internal/store"
	"csv-manager/pkg/logger"
	"csv-manager/pkg/router"
)

// @title CSV Manager API
// @version 1.0
// @description Upload, browse, edit and visualize CSV datasets with team-based sharing.
// @BasePath /api/v1
func main() {
	log := logger.New()
	cfg := config.Get(log)

	if err := store.InitDB(cfg.DBPath); err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer store.CloseDB()

	r := router.New(log)
	api.RegisterRoutes(r, handler.New(cfg, log))
	r.Start(cfg.ListenAddr)
}
