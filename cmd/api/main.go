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

	"gig-marketplace/backend/internal/cache"
	"gig-marketplace/backend/internal/config"
	"gig-marketplace/backend/internal/database"
	"gig-marketplace/backend/internal/mailer"
	"gig-marketplace/backend/internal/monitoring"
	"gig-marketplace/backend/internal/router"
	"gig-marketplace/backend/internal/services"
	"gig-marketplace/backend/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisCache := cache.NewRedisCache(&cache.CacheConfig{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	defer redisCache.Close()

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	mailQueue := worker.NewMailQueue(redisCache.Client(), cfg.Worker.MailQueue)
	mailWorker := worker.NewMailWorker(redisCache.Client(), mailer.NewSMTPMailer(cfg.Mail), cfg.Worker.MailQueue)
	mailWorker.Start(cfg.Worker.Concurrency)
	defer mailWorker.Stop()

	notificationService := services.NewNotificationService()
	taskService := services.NewCachedTaskService(services.NewTaskService(notificationService), redisCache)

	monitor := monitoring.NewMonitor()
	monitor.RegisterProbe("database", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	monitor.RegisterProbe("redis", func(ctx context.Context) error {
		return redisCache.Client().Ping(ctx).Err()
	})

	engine := router.Setup(router.Dependencies{
		DB:                  db,
		Config:              cfg,
		Monitor:             monitor,
		RegisterService:     services.NewRegisterService(mailQueue, cfg.Auth.OTPTTL, cfg.Auth.BCryptCost),
		AuthService:         services.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		OTPService:          services.NewOTPService(mailQueue, cfg.Auth.OTPTTL, cfg.Auth.BCryptCost),
		UserService:         services.NewUserService(mailQueue, cfg.Auth.OTPTTL, cfg.Auth.BCryptCost),
		TaskService:         taskService,
		OfferService:        services.NewOfferService(taskService, notificationService),
		QuestionService:     services.NewQuestionService(),
		NotificationService: notificationService,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case sig := <-stop:
		log.Printf("Signal %s received, shutting down", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Server error: %v", err)
	}
}
