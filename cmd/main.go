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

	"github.com/go-redis/redis/v8"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	cancelReservationHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/cancel_reservation"
	confirmReservationHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/confirm_reservation"
	getCalendarHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/get_calendar"
	getReservationHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/get_reservation"
	listServiceReservationsHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/list_service_reservations"
	reserveDatesHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/reserve_dates"
	selectDateHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/select_date"
	validateSelectionHandler "github.com/m04kA/SMC-ReservationEngine/internal/api/handlers/validate_selection"
	"github.com/m04kA/SMC-ReservationEngine/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationEngine/internal/config"
	availabilityCache "github.com/m04kA/SMC-ReservationEngine/internal/infra/cache/availability"
	journalRepo "github.com/m04kA/SMC-ReservationEngine/internal/infra/storage/reservation"
	catalogClient "github.com/m04kA/SMC-ReservationEngine/internal/integrations/catalog"
	availabilityService "github.com/m04kA/SMC-ReservationEngine/internal/service/availability"
	sessionsService "github.com/m04kA/SMC-ReservationEngine/internal/service/sessions"
	confirmReservationUC "github.com/m04kA/SMC-ReservationEngine/internal/usecase/confirm_reservation"
	getCalendarUC "github.com/m04kA/SMC-ReservationEngine/internal/usecase/get_calendar"
	reserveDatesUC "github.com/m04kA/SMC-ReservationEngine/internal/usecase/reserve_dates"
	selectDateUC "github.com/m04kA/SMC-ReservationEngine/internal/usecase/select_date"
	validateSelectionUC "github.com/m04kA/SMC-ReservationEngine/internal/usecase/validate_selection"
	"github.com/m04kA/SMC-ReservationEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationEngine/pkg/logger"
	"github.com/m04kA/SMC-ReservationEngine/pkg/metrics"
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

	log.Info("Starting SMC-ReservationEngine...")

	location, err := cfg.Calendar.Location()
	if err != nil {
		log.Fatal("Failed to load calendar timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Журнал сессий (с метриками или без)
	var journal *journalRepo.Repository
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		journal = journalRepo.NewRepository(wrappedDB, cfg.Reservation.InstanceID)
		log.Info("Database metrics collection started")
	} else {
		journal = journalRepo.NewRepository(db, cfg.Reservation.InstanceID)
	}

	// Кэш занятых дат (интерфейс остаётся nil, если Redis выключен)
	var cache availabilityService.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("Redis unavailable at %s, availability cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			cache = availabilityCache.NewCache(redisClient, time.Duration(cfg.Redis.TTL)*time.Second)
			log.Info("Availability cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
		}
	}

	// Клиент каталога услуг
	catalog := catalogClient.NewClient(
		cfg.Catalog.URL,
		time.Duration(cfg.Catalog.Timeout)*time.Second,
		cfg.Catalog.RPS,
		cfg.Catalog.Burst,
		log,
	)
	if cfg.Metrics.Enabled {
		catalog.WithMetrics(metricsCollector)
	}
	log.Info("Catalog client initialized (url=%s, timeout=%ds, rps=%.1f, burst=%d)",
		cfg.Catalog.URL, cfg.Catalog.Timeout, cfg.Catalog.RPS, cfg.Catalog.Burst)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(catalog, cache, location, log)
	sessionsSvc := sessionsService.NewService(
		journal,
		catalog,
		cfg.Reservation.TTLSeconds,
		time.Duration(cfg.Reservation.RetentionSeconds)*time.Second,
		log,
	)
	if cfg.Metrics.Enabled {
		availabilitySvc.WithMetrics(metricsCollector)
		sessionsSvc.WithMetrics(metricsCollector)
	}

	// Сессии прошлого процесса этого экземпляра уже не тикают - помечаем их истёкшими
	recoverCtx, cancelRecover := context.WithTimeout(context.Background(), 10*time.Second)
	log.Info("Recovering session journal for instance=%s", cfg.Reservation.InstanceID)
	if _, err := sessionsSvc.RecoverJournal(recoverCtx); err != nil {
		log.Warn("Failed to recover session journal: %v", err)
	}
	cancelRecover()

	// Периодическая очистка реестра завершённых сессий
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Reservation.SweepSchedule, func() {
		if removed := sessionsSvc.Sweep(); removed > 0 {
			log.Info("Sweep: removed %d finished sessions, %d left", removed, sessionsSvc.Active())
		}
	}); err != nil {
		log.Fatal("Failed to schedule session sweep: %v", err)
	}
	scheduler.Start()
	log.Info("Session sweep scheduled (%s)", cfg.Reservation.SweepSchedule)

	// Инициализируем use cases
	getCalendarUseCase := getCalendarUC.NewUseCase(availabilitySvc, log)
	selectDateUseCase := selectDateUC.NewUseCase(availabilitySvc, log)
	validateSelectionUseCase := validateSelectionUC.NewUseCase(availabilitySvc, log)
	reserveDatesUseCase := reserveDatesUC.NewUseCase(availabilitySvc, catalog, sessionsSvc, log)
	confirmReservationUseCase := confirmReservationUC.NewUseCase(sessionsSvc, catalog, log)

	// Инициализируем handlers
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	selectDate := selectDateHandler.NewHandler(selectDateUseCase, log)
	validateSelection := validateSelectionHandler.NewHandler(validateSelectionUseCase, log)
	reserveDates := reserveDatesHandler.NewHandler(reserveDatesUseCase, log)
	confirmReservation := confirmReservationHandler.NewHandler(confirmReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(sessionsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(sessionsSvc, log)
	listServiceReservations := listServiceReservationsHandler.NewHandler(sessionsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Календарь и выбор дат ---
	api.HandleFunc("/services/{serviceId}/calendar", getCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/selection", selectDate.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services/{serviceId}/selection/validate", validateSelection.Handle).Methods(http.MethodPost)

	// --- Резервы ---
	api.HandleFunc("/services/{serviceId}/reservations", reserveDates.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services/{serviceId}/reservations", listServiceReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// CORS для фронтенда календаря и восстановление после паники
	var handler http.Handler = r
	handler = gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", middleware.RequestIDHeader}),
		gorillaHandlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)(handler)
	handler = gorillaHandlers.RecoveryHandler()(handler)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем планировщик и ждём текущую очистку
	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Тикеры останавливаются после HTTP: новых сессий уже не будет
	sessionsSvc.Shutdown()

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
