// @title Shikkha Platform API
// @version 1.0
// @description Backend server for the Shikkha exam preparation platform.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"
	"path/filepath"
	"shikkha_backend/internal/app"
	"shikkha_backend/internal/config"
	"shikkha_backend/pkg/configwatcher"
	"shikkha_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	configPath := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig(filepath.Join(*configPath, "config.yaml"), cfg, func(updated interface{}) {
		if newCfg, ok := updated.(*config.Config); ok {
			application.ReloadConfig(newCfg)
		}
	})

	application.Run()
}
