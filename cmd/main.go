package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addRangeHandler "github.com/m04kA/Blane-SchedulingService/internal/api/handlers/add_range"
	cancelBookingHandler "github.com/m04kA/Blane-SchedulingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/Blane-SchedulingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/Blane-SchedulingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/Blane-SchedulingService/internal/api/handlers/get_booking"
	getScheduleHandler "github.com/m04kA/Blane-SchedulingService/internal/api/handlers/get_schedule"
	getUserBookingsHandler "github.com/m04kA/Blane-SchedulingService/internal/api/handlers/get_user_bookings"
	removeRangeHandler "github.com/m04kA/Blane-SchedulingService/internal/api/handlers/remove_range"
	updateScheduleHandler "github.com/m04kA/Blane-SchedulingService/internal/api/handlers/update_schedule"
	"github.com/m04kA/Blane-SchedulingService/internal/api/middleware"
	"github.com/m04kA/Blane-SchedulingService/internal/config"
	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/Blane-SchedulingService/internal/infra/storage/booking"
	ledgerRepo "github.com/m04kA/Blane-SchedulingService/internal/infra/storage/ledger"
	offerRepo "github.com/m04kA/Blane-SchedulingService/internal/infra/storage/offer"
	bookingsService "github.com/m04kA/Blane-SchedulingService/internal/service/bookings"
	scheduleService "github.com/m04kA/Blane-SchedulingService/internal/service/schedule"
	createBookingUC "github.com/m04kA/Blane-SchedulingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/Blane-SchedulingService/internal/usecase/get_availability"
	"github.com/m04kA/Blane-SchedulingService/pkg/logger"
	"github.com/m04kA/Blane-SchedulingService/pkg/metrics"
	"github.com/m04kA/Blane-SchedulingService/pkg/txmanager"
	"github.com/m04kA/Blane-SchedulingService/pkg/types"
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

	log.Info("Starting Blane-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Собираем дефолтное недельное расписание для editing session
	scheduleDefaults, err := buildScheduleDefaults(cfg.Schedule)
	if err != nil {
		log.Fatal("Invalid [schedule] config section: %v", err)
	}

	// Инициализируем репозитории
	offerRepository := offerRepo.NewRepository(db)
	bookingRepository := bookingRepo.NewRepository(db)
	ledgerRepository := ledgerRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		offerRepository,
		ledgerRepository,
		txMgr,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		offerRepository,
		scheduleDefaults,
		log,
	)

	// Инициализируем use cases
	var decisionObserver createBookingUC.DecisionObserver
	if cfg.Metrics.Enabled {
		decisionObserver = metricsCollector
	}

	createBookingUseCase := createBookingUC.NewUseCase(
		offerRepository,
		bookingRepository,
		ledgerRepository,
		txMgr,
		decisionObserver,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		offerRepository,
		ledgerRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	addRange := addRangeHandler.NewHandler(scheduleSvc, log)
	removeRange := removeRangeHandler.NewHandler(scheduleSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность оффера на дату: слоты или календарный день с остатком квоты
	api.HandleFunc("/offers/{offerId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Текущее расписание и политика ёмкости оффера
	api.HandleFunc("/offers/{offerId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Редактирование расписания ---
	// Пакетное обновление расписания и потолков через editing session
	protected.HandleFunc("/offers/{offerId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Добавление диапазона дат (range-режим)
	protected.HandleFunc("/offers/{offerId}/availability/ranges", addRange.Handle).Methods(http.MethodPost)

	// Удаление диапазона дат по позиции (range-режим)
	protected.HandleFunc("/offers/{offerId}/availability/ranges/{index}", removeRange.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	// Создание бронирования (машина допуска)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования с освобождением ёмкости
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

// buildScheduleDefaults конвертирует секцию [schedule] конфига в дефолты
// недельного расписания для editing session
func buildScheduleDefaults(cfg config.ScheduleConfig) (scheduleService.Defaults, error) {
	weekdays, err := domain.ParseWeekdaySet(cfg.DefaultWeekdays)
	if err != nil {
		return scheduleService.Defaults{}, fmt.Errorf("default_weekdays: %w", err)
	}

	dailyStart, err := types.NewTimeStringFromString(cfg.DefaultDailyStart)
	if err != nil {
		return scheduleService.Defaults{}, fmt.Errorf("default_daily_start: %w", err)
	}

	dailyEnd, err := types.NewTimeStringFromString(cfg.DefaultDailyEnd)
	if err != nil {
		return scheduleService.Defaults{}, fmt.Errorf("default_daily_end: %w", err)
	}

	interval := cfg.DefaultSlotIntervalMinutes
	if interval == 0 {
		interval = domain.DefaultSlotIntervalMinutes
	}

	return scheduleService.Defaults{
		Weekdays:            weekdays,
		DailyStart:          dailyStart,
		DailyEnd:            dailyEnd,
		SlotIntervalMinutes: interval,
	}, nil
}
