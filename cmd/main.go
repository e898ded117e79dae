package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/api"
	"github.com/m04kA/SMC-CourtBookingService/internal/config"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage"
	bookingsService "github.com/m04kA/SMC-CourtBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	usersService "github.com/m04kA/SMC-CourtBookingService/internal/service/users"
	cancelBookingUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/cancel_booking"
	checkBookingUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/check_booking"
	createBookingUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
	getBlockUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_block"
	getDayScheduleUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_day_schedule"
	moveBookingUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/move_booking"
	updateBookingUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
	"github.com/m04kA/SMC-CourtBookingService/pkg/metrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/token"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-CourtBookingService...")

	// Метрики (если включены); nil-коллектор безопасен для всех вызовов
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	ctx := context.Background()

	// Хранилище: драйвер выбирается конфигурацией, миграции применяются при открытии
	st, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("Failed to close storage: %v", err)
		}
	}()

	if st.DB != nil {
		metricsCollector.RegisterDB(st.DB, cfg.Metrics.ServiceName)
	}

	location, err := cfg.Club.Location()
	if err != nil {
		log.Fatal("Invalid club timezone %q: %v", cfg.Club.Timezone, err)
	}

	courts := cfg.CourtCatalog()
	log.Info("Courts: %d, timezone: %s", len(courts.All()), location)

	// Правила бронирования
	engine := rules.NewEngine(courts, location, metricsCollector)

	// Инициализируем сервисы
	tokens := token.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	userSvc := usersService.NewService(st.Users, st.Bookings, st.TxManager, tokens, engine, log)
	bookingSvc := bookingsService.NewService(st.Bookings, engine, log)

	// Первый администратор
	if cfg.Auth.AdminEmail != "" {
		created, err := userSvc.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword,
			cfg.Auth.AdminFirstName, cfg.Auth.AdminLastName)
		if err != nil {
			log.Fatal("Failed to ensure admin account: %v", err)
		}
		if created {
			log.Info("Admin account %s created", cfg.Auth.AdminEmail)
		}
	} else {
		log.Warn("No admin email configured, skipping admin bootstrap")
	}

	// Инициализируем use cases и роутер
	router := api.NewRouter(api.Dependencies{
		Users:          userSvc,
		Bookings:       bookingSvc,
		Courts:         courts,
		CheckBooking:   checkBookingUC.NewUseCase(st.Bookings, engine, log),
		CreateBooking:  createBookingUC.NewUseCase(st.Bookings, engine, st.TxManager, metricsCollector, log),
		UpdateBooking:  updateBookingUC.NewUseCase(st.Bookings, engine, st.TxManager, log),
		CancelBooking:  cancelBookingUC.NewUseCase(st.Bookings, st.TxManager, metricsCollector, log),
		MoveBooking:    moveBookingUC.NewUseCase(st.Bookings, engine, st.TxManager, metricsCollector, log),
		GetDaySchedule: getDayScheduleUC.NewUseCase(st.Bookings, courts, engine, st.TxManager, log),
		GetBlock:       getBlockUC.NewUseCase(st.Bookings, engine, st.TxManager, log),
		Metrics:        metricsCollector,
		MetricsPath:    cfg.Metrics.Path,
		Logger:         log,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
