package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/event-marketplace/internal/audit"
	"github.com/BruksfildServices01/event-marketplace/internal/config"
	dbpkg "github.com/BruksfildServices01/event-marketplace/internal/db"
	"github.com/BruksfildServices01/event-marketplace/internal/domain/store"
	"github.com/BruksfildServices01/event-marketplace/internal/infra/cache"
	"github.com/BruksfildServices01/event-marketplace/internal/infra/memory"
	"github.com/BruksfildServices01/event-marketplace/internal/infra/mq"
	"github.com/BruksfildServices01/event-marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/event-marketplace/internal/infra/tracing"
	"github.com/BruksfildServices01/event-marketplace/internal/logger"
	"github.com/BruksfildServices01/event-marketplace/internal/routes"
	"github.com/BruksfildServices01/event-marketplace/internal/timezone"
	ucBooking "github.com/BruksfildServices01/event-marketplace/internal/usecase/booking"
	ucNotification "github.com/BruksfildServices01/event-marketplace/internal/usecase/notification"
)

const serviceName = "event-marketplace"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Env)
	defer log.Sync()
	logger.SetGlobal(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, serviceName, cfg.Env, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal("tracing init failed", zap.Error(err))
	}

	// ======================================================
	// STORE
	// ======================================================
	var (
		repo store.Repository
		gdb  *gorm.DB
		sink audit.Sink
	)

	switch cfg.Store {
	case config.StoreMemory:
		mem := memory.New()
		demo := memory.SeedDemo(mem)
		logDemoTokens(log, cfg.JWTSecret, demo)
		repo = mem
		sink = audit.NewZapSink(log)
	default:
		gdb, err = dbpkg.NewDB(cfg, log)
		if err != nil {
			log.Fatal("database init failed", zap.Error(err))
		}
		repo = repository.NewGormRepository(gdb)
		sink = audit.New(gdb)
	}

	auditDispatcher := audit.NewDispatcher(sink, log)
	defer auditDispatcher.Close()

	// ======================================================
	// OPTIONAL COLLABORATORS
	// ======================================================
	var unread ucNotification.UnreadCache = ucNotification.NoCache{}
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, unread counts uncached", zap.Error(err))
		} else {
			defer rdb.Close()
			unread = cache.NewUnreadCounts(rdb, 0)
		}
	}

	var pub ucBooking.Publisher = mq.Nop{}
	if cfg.AMQPURL != "" {
		p, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Warn("rabbitmq unavailable, domain events disabled", zap.Error(err))
		} else {
			defer p.Close()
			pub = p
		}
	}

	// ======================================================
	// HTTP
	// ======================================================
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:    cfg,
		Repo:      repo,
		DB:        gdb,
		Cache:     unread,
		Publisher: pub,
		Audit:     auditDispatcher,
		Clock:     timezone.System(cfg.Timezone),
		Log:       log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("tracing shutdown failed", zap.Error(err))
	}
}
