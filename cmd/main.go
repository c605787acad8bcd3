package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leganyst/booking-core/internal/cache"
	"github.com/Leganyst/booking-core/internal/config"
	"github.com/Leganyst/booking-core/internal/db"
	"github.com/Leganyst/booking-core/internal/handler"
	"github.com/Leganyst/booking-core/internal/logger"
	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/repository"
	"github.com/Leganyst/booking-core/internal/service"
)

func main() {
	// 1. Конфиг из config.yaml и env.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		zlog.Fatal("init db", zap.Error(err))
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		zlog.Fatal("auto migrate", zap.Error(err))
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		zlog.Fatal("sql DB", zap.Error(err))
	}
	defer sqlDB.Close()

	// 4. Кэш индикаторов занятости: Redis при заданном адресе,
	// иначе внутрипроцессный.
	var availabilityCache cache.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, zlog)
		if err != nil {
			zlog.Fatal("init redis", zap.Error(err))
		}
		defer redisCache.Close()
		availabilityCache = redisCache
	} else {
		availabilityCache = cache.NewMemoryCache()
	}

	// 5. Репозитории (реализации на GORM).
	workPeriodRepo := repository.NewGormWorkPeriodRepository(gormDB)
	bookingRepo := repository.NewGormBookingRepository(gormDB)
	serviceRepo := repository.NewGormServiceRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)
	providerRepo := repository.NewGormProviderRepository(gormDB)

	// 6. Сервисы.
	availabilitySvc := service.NewAvailabilityService(workPeriodRepo, bookingRepo, time.Now, zlog).
		WithLeadMinutes(cfg.LeadMinutes).
		WithCache(availabilityCache, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	scheduleSvc := service.NewScheduleService(workPeriodRepo, eventRepo, zlog)
	bookingSvc := service.NewBookingService(gormDB, zlog)

	// 7. HTTP-сервер.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	h := handler.New(availabilitySvc, scheduleSvc, bookingSvc, serviceRepo, eventRepo, zlog)
	h.Register(router)
	handler.NewDirectoryHandler(userRepo, providerRepo, serviceRepo).Register(router)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		zlog.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http serve", zap.Error(err))
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zlog.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}
}
