package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/notes-api/internal/cache"
	"github.com/iliyamo/notes-api/internal/config"
	"github.com/iliyamo/notes-api/internal/database"
	"github.com/iliyamo/notes-api/internal/handler"
	"github.com/iliyamo/notes-api/internal/middleware"
	"github.com/iliyamo/notes-api/internal/queue"
	"github.com/iliyamo/notes-api/internal/repository"
	"github.com/iliyamo/notes-api/internal/router"
	"github.com/iliyamo/notes-api/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis backs the list cache and the rate limiter. When it is
	// unreachable the API stays up: lists fall back to an in-process
	// cache and the limiter disables itself.
	rdb := config.NewRedisClient()
	var store cache.Store
	if rdb != nil && cacheCfg.Enabled {
		store = cache.NewRedisStore(rdb)
	} else {
		log.Printf("cache: redis unavailable or disabled, using in-memory store")
		store = cache.NewMemoryStore()
	}

	users := repository.NewUserRepo(db)
	notes := repository.NewNoteRepo(db)

	authSvc := service.NewAuthService(users, cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost)
	notesSvc := service.NewNotesService(notes, store, cacheCfg.Prefix, cacheCfg.TTL, queue.PublishNoteActivity)

	// Background consumer appending note activity to logs/activity.log.
	go queue.StartActivityConsumer()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Metrics())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	}))

	router.RegisterRoutes(e, db, store)
	router.RegisterAuth(e, handler.NewAuthHandler(authSvc), cfg.JWTSecret, middleware.NewRateLimiter(rlCfg, rdb))
	router.RegisterNotes(e, handler.NewNotesHandler(notesSvc), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
