package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coin_panel/internal/afk"
	"coin_panel/internal/config"
	httpServer "coin_panel/internal/http"
	"coin_panel/internal/http/handlers"
	"coin_panel/internal/http/middleware"
	"coin_panel/internal/logger"
	"coin_panel/internal/ptero"
	"coin_panel/internal/renewal"
	"coin_panel/internal/service"
	"coin_panel/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := openStore(ctx, cfg)
	defer st.Close(context.Background())

	// limiter and shared presence ride on the store's redis connection;
	// with another backend both degrade to their single-process behavior
	var rdb *redis.Client
	if rs, ok := st.(*store.Redis); ok {
		rdb = rs.Client()
	}
	middleware.InitRedisRateLimiter(rdb)

	var tracker afk.Tracker
	if rdb != nil {
		tracker = afk.NewRedisTracker(rdb, 0)
	} else {
		tracker = afk.NewMemoryTracker()
	}

	panel := ptero.NewClient(cfg.Panel.Domain, cfg.Panel.Key)
	window := renewal.NewWindow(cfg.Renewals.DelayDays)
	renewals := renewal.NewService(st, panel, window, cfg.Renewals.Cost)

	if cfg.Renewals.Enabled {
		renewal.NewScheduler(st, panel, window, cfg.Renewals.Logs).Start(ctx)
		logger.Info("renewal scheduler started", "delay_days", cfg.Renewals.DelayDays, "cost", cfg.Renewals.Cost)
	}

	r := gin.Default()
	r.Use(middleware.PoweredBy("coinpanel " + version))

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handlers.NewHandler(st, panel, cfg, renewals, tracker)
	httpServer.RegisterRoutes(r, h, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	cancel() // stops the renewal scheduler

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

func openStore(ctx context.Context, cfg *config.Config) store.Store {
	switch cfg.Store.Backend {
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		return store.NewMemory()
	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			logger.Fatal("DATABASE_URL is not set")
		}
		st, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to postgres", "error", err)
		}
		logger.Info("store connected", "backend", "postgres")
		return st
	case "mongo":
		if cfg.Store.MongoURI == "" {
			logger.Fatal("MONGO_URI is not set")
		}
		st, err := store.NewMongo(ctx, cfg.Store.MongoURI, cfg.Store.MongoDB)
		if err != nil {
			logger.Fatal("failed to connect to mongodb", "error", err)
		}
		logger.Info("store connected", "backend", "mongo")
		return st
	default:
		st, err := store.NewRedis(ctx, cfg.Store.RedisAddr, cfg.Store.RedisPassword, cfg.Store.RedisDB)
		if err != nil {
			logger.Fatal("failed to connect to redis", "error", err)
		}
		logger.Info("store connected", "backend", "redis")
		return st
	}
}
