// Command server is the entry point of the fitness tracking API.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/fittrack/fittrack/internal/config"
	"github.com/fittrack/fittrack/internal/database"
	"github.com/fittrack/fittrack/internal/handler"
	"github.com/fittrack/fittrack/internal/queue"
	"github.com/fittrack/fittrack/internal/repository"
	"github.com/fittrack/fittrack/internal/router"
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	records := repository.NewExerciseRecordRepo(db)
	challenges := repository.NewChallengeRepo(db)
	shares := repository.NewChallengeShareRepo(db)
	routines := repository.NewRoutineRepo(db)
	checks := repository.NewRoutineCheckRepo(db)

	if cfg.SeedUsers {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := repository.SeedDemoUsers(ctx, users, cfg.BcryptCost); err != nil {
			log.Printf("seed users: %v", err)
		}
		cancel()
	}

	// Consumes share lifecycle events and appends them to logs/share.log.
	// Runs its own reconnect loop so a broker outage never takes the API down.
	go func() {
		if err := queue.StartShareConsumer(); err != nil {
			log.Printf("share consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users))
	router.RegisterAPI(e, cfg, rdb, router.APIHandlers{
		Records:    handler.NewRecordHandler(records),
		Uploads:    handler.NewUploadHandler(cfg.UploadDir),
		Challenges: handler.NewChallengeHandler(challenges, records),
		Shares:     handler.NewShareHandler(shares, challenges, users, records, routines, checks),
		Routines:   handler.NewRoutineHandler(routines, checks),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
