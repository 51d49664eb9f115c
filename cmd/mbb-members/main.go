package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Laye1997/malika-bi-nu-begg-d/common/logger"
	"github.com/Laye1997/malika-bi-nu-begg-d/common/mqtt"
	commonredis "github.com/Laye1997/malika-bi-nu-begg-d/common/redis"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/config"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"
	httpapi "github.com/Laye1997/malika-bi-nu-begg-d/internal/http"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/notify"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/repository"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/service"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "mbb-members")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cache + sessions: redis when configured, process memory otherwise.
	var kv store.KV = store.NewMemoryKV()
	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient = commonredis.NewRedisClient(&cfg.Redis)
		if err := commonredis.Ping(ctx, redisClient); err != nil {
			log.Warn("redis unreachable, using in-memory cache", zap.Error(err))
			_ = commonredis.Close(redisClient)
			redisClient = nil
		} else {
			kv = store.NewRedisKV(redisClient)
		}
	}

	var notifier notify.Notifier = notify.NopNotifier{}
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		if c, err := mqtt.NewClient(&cfg.MQTT.MQTTConfig); err == nil {
			mqttClient = c
			notifier = notify.NewMQTTNotifier(c, cfg.MQTT.Topic, log)
		} else {
			log.Warn("mqtt enabled but connection failed, events disabled", zap.Error(err))
		}
	}

	repo, closeRepo, err := repository.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("open member backend failed", zap.String("backend", cfg.Members.Backend), zap.Error(err))
	}
	log.Info("member backend ready", zap.String("backend", repo.Name()))

	members := service.NewMemberService(repo, service.MemberServiceOptions{
		Cache:               kv,
		CacheTTL:            cfg.Members.CacheTTL,
		RequireNeighborhood: cfg.Members.RequireNeighborhood,
		Notifier:            notifier,
	}, log)

	metrics := httpapi.NewMetrics()
	auth := httpapi.NewAuthHandler(
		httpapi.NewAuthStore(cfg.Admin.Users),
		httpapi.NewSessionStore(kv, cfg.Admin.SessionTTL),
		log,
	)

	router := httpapi.NewRouter(log)
	router.RegisterAuthRoutes(auth)
	router.RegisterMemberRoutes(httpapi.NewMemberHandler(members, metrics, log), auth)
	router.RegisterPollingCenterRoutes(httpapi.NewPollingCenterHandler(domain.DefaultPollingCenters))
	router.RegisterOpsRoutes(metrics)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case err := <-errCh:
		log.Error("http server stopped", zap.Error(err))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if err := closeRepo(); err != nil {
		log.Warn("close member backend failed", zap.Error(err))
	}
	if mqttClient != nil {
		mqttClient.Disconnect()
	}
	if redisClient != nil {
		_ = commonredis.Close(redisClient)
	}
}
