package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/propdesk/property-api/internal/auth"
	"github.com/propdesk/property-api/internal/config"
	"github.com/propdesk/property-api/internal/database"
	"github.com/propdesk/property-api/internal/handler"
	"github.com/propdesk/property-api/internal/queue"
	"github.com/propdesk/property-api/internal/repository"
	"github.com/propdesk/property-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// May be nil when Redis is unreachable; rate limiting and caching
	// degrade to pass-through in that case.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	properties := repository.NewPropertyRepo(db)
	leases := repository.NewLeaseRepo(db)
	contacts := repository.NewContactRepo(db)

	sessions := auth.NewManager(auth.Config{
		AccessSecret:   cfg.JWTSecret,
		RefreshSecret:  cfg.RefreshSecret,
		AccessTTLMin:   cfg.AccessTTLMin,
		RefreshTTLDays: cfg.RefreshTTLDays,
		BcryptCost:     cfg.BcryptCost,
	}, users)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(sessions), cfg.JWTSecret, rdb)
	router.RegisterUsers(e, handler.NewUserHandler(users), cfg.JWTSecret)
	router.RegisterProperties(e, handler.NewPropertyHandler(properties, leases), cfg.JWTSecret, rdb)
	router.RegisterContact(e, handler.NewContactHandler(contacts), rdb)

	go func() {
		if err := queue.StartContactConsumer(); err != nil {
			log.Printf("contact consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
