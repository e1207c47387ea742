package main

import (
	"log"

	"phoneticwalk/history"
	"phoneticwalk/internal/api"
	"phoneticwalk/internal/config"
	"phoneticwalk/internal/service"
)

func main() {
	cfg := config.Load()

	store := history.NewStore(cfg.HistorySize)
	alignSvc := service.NewAlignService(store)

	server := api.NewServer(cfg, alignSvc)

	log.Println("Starting phoneticwalk alignment server...")
	server.Start()
}
