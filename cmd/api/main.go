package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/barberflow/barberflow-server/internal/config"
	dbpkg "github.com/barberflow/barberflow-server/internal/db"
	"github.com/barberflow/barberflow-server/internal/infra/localstore"
	"github.com/barberflow/barberflow-server/internal/infra/repository"
	"github.com/barberflow/barberflow-server/internal/insight"
	"github.com/barberflow/barberflow-server/internal/middleware"
	"github.com/barberflow/barberflow-server/internal/routes"
	"github.com/barberflow/barberflow-server/internal/store"
	"github.com/barberflow/barberflow-server/internal/timezone"
	"gorm.io/gorm"
)

func main() {

	cfg := config.Load()
	loc := timezone.Location(cfg.Timezone)

	// ------------------------------
	// Backend primário (opcional)
	// ------------------------------
	var db *gorm.DB
	var remote store.RemoteRepository

	if cfg.DBUrl == "" {
		log.Println("DATABASE_URL not set, running on local cache only; bookings will be provisional")
	} else {
		var err error
		db, err = dbpkg.NewDB(cfg)
		if err != nil {
			log.Printf("database unavailable, running on local cache only: %v", err)
		} else {
			remote = repository.NewAppointmentGormRepository(db)
		}
	}

	// ------------------------------
	// Store + refresher
	// ------------------------------
	local := localstore.New(cfg.LocalStorePath)
	st := store.New(remote, local, loc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refresher := store.NewRefresher(st, cfg.RefreshInterval)
	go refresher.Run(ctx)

	// ------------------------------
	// Cache de insight (opcional)
	// ------------------------------
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("invalid REDIS_URL, insight cache disabled: %v", err)
		} else {
			redisClient = redis.NewClient(opts)
		}
	}

	insightProvider := insight.NewProvider(
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
		redisClient,
		loc,
	)

	// ------------------------------
	// HTTP
	// ------------------------------
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, cfg, db, st, insightProvider, loc)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
