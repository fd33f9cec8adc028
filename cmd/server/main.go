package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/vilkasoft/carehome-backend/internal/config"
	"github.com/vilkasoft/carehome-backend/internal/handler"
	"github.com/vilkasoft/carehome-backend/internal/queue"
	"github.com/vilkasoft/carehome-backend/internal/repository"
	"github.com/vilkasoft/carehome-backend/internal/router"
	"github.com/vilkasoft/carehome-backend/internal/service"
	"github.com/vilkasoft/carehome-backend/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := store.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	docs := store.NewMySQLStore(db)
	if err := docs.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("database schema: %v", err)
	}

	inventory := repository.NewInventoryRepo(docs)
	contracts := repository.NewContractRepo(docs)
	residents := repository.NewResidentRepo(docs)

	if cfg.SeedInventory {
		if err := inventory.InitializeRoomData(context.Background()); err != nil {
			log.Fatalf("seed inventory: %v", err)
		}
	}

	catalog := service.NewStaticCatalog()
	lifecycle := service.NewLifecycleService(catalog)
	occupancy := service.NewOccupancyService(inventory)
	workflow := service.NewActivationWorkflow(contracts, inventory, lifecycle, residents, queue.PublishContractActivated)

	// Background consumer writing the contract activation log.  It
	// reconnects forever and never stops the server.
	go func() {
		if err := queue.StartContractConsumer(); err != nil {
			log.Printf("contract consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}
	router.RegisterRoutes(e, router.Handlers{
		Auth:     handler.NewAuthHandler(cfg),
		Room:     handler.NewRoomHandler(inventory, occupancy),
		Bed:      handler.NewBedHandler(inventory),
		Contract: handler.NewContractHandler(contracts, lifecycle, workflow, residents),
	}, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
