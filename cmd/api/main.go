package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/petgroom-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/petgroom-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/lock"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/middleware"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/notify"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/reminder"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/routes"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/stream"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	// --------------------------------------------------
	// Redis (lock de agenda); sem Redis a criação segue
	// protegida só pela transação
	// --------------------------------------------------
	var locker lock.Locker = lock.NoopLocker{}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("redis indisponível (%v), lock distribuído desativado", err)
	} else {
		locker = lock.NewRedisLocker(rdb)
	}
	cancel()

	// --------------------------------------------------
	// Notificações
	// --------------------------------------------------
	var sender notify.Sender = notify.LogSender{}
	if cfg.EmailJSConfigured() {
		sender = notify.NewEmailJSSender(
			cfg.EmailJSServiceID,
			cfg.EmailJSPublicKey,
			cfg.EmailJSBookingTpl,
			cfg.EmailJSStatusTpl,
			cfg.EmailJSReminderTpl,
		)
	}
	notifier := notify.NewDispatcher(sender)

	// --------------------------------------------------
	// Feed em tempo real + lembretes
	// --------------------------------------------------
	hub := stream.NewHub()

	reminderJob := reminder.NewScheduler(
		infraRepo.NewBookingGormRepository(db),
		notifier,
	)
	if err := reminderJob.Start(); err != nil {
		log.Fatalf("failed to start reminder scheduler: %v", err)
	}
	defer reminderJob.Stop()

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, locker, notifier, hub)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
