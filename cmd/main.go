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

	calendarsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/calendars"
	cancelBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_booking"
	eventTypesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/event_types"
	generateSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_bookings"
	schedulesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/schedules"
	slotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/slots"
	updateBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	slotRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/slot"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	calendarsService "github.com/m04kA/SMC-SchedulingService/internal/service/calendars"
	eventTypesService "github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes"
	schedulesService "github.com/m04kA/SMC-SchedulingService/internal/service/schedules"
	slotsService "github.com/m04kA/SMC-SchedulingService/internal/service/slots"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	generateSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/generate_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию (путь можно переопределить через CONFIG_PATH)
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

	log.Info("Starting SMC-SchedulingService...")

	// Инициализируем метрики (если включены). nil метрики ничего не пишут.
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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обертка над соединением нужна всегда: через нее работают транзакции в контексте
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Репозитории
	calendarRepository := calendarRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	eventTypeRepository := eventTypeRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Сервисы. Сервис календарей также проверяет владельца для остальных сервисов.
	calendarSvc := calendarsService.NewService(calendarRepository, eventTypeRepository, log)
	scheduleSvc := schedulesService.NewService(scheduleRepository, calendarSvc, log)
	eventTypeSvc := eventTypesService.NewService(
		eventTypeRepository,
		scheduleRepository,
		calendarRepository,
		calendarSvc,
		log,
	)
	slotSvc := slotsService.NewService(
		slotRepository,
		calendarRepository,
		eventTypeRepository,
		calendarSvc,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		calendarRepository,
		calendarSvc,
		txMgr,
		metricsCollector,
		log,
	)

	// Use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		calendarSvc,
		eventTypeRepository,
		scheduleRepository,
		slotRepository,
		txMgr,
		metricsCollector,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		eventTypeRepository,
		bookingRepository,
		txMgr,
		metricsCollector,
		log,
	)

	// Handlers
	calendars := calendarsHandler.NewHandler(calendarSvc, log)
	schedules := schedulesHandler.NewHandler(scheduleSvc, log)
	eventTypes := eventTypesHandler.NewHandler(eventTypeSvc, log)
	slots := slotsHandler.NewHandler(slotSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(slotSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	bookingLimiter := middleware.NewRateLimiter(
		cfg.Booking.RateInterval(),
		cfg.Booking.RateLimitBurst,
		log,
	)
	if err := bookingLimiter.TrustProxies(cfg.Booking.TrustedProxies...); err != nil {
		log.Fatal("Failed to configure rate limiter: %v", err)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Публичная страница календаря и его типы событий
	api.HandleFunc("/public/calendars/{slug}", calendars.GetPublic).Methods(http.MethodGet)
	api.HandleFunc("/public/calendars/{slug}/event-types/{eventTypeSlug}", eventTypes.GetPublic).Methods(http.MethodGet)

	// Свободные слоты типа события
	api.HandleFunc("/calendars/{calendarId}/event-types/{eventTypeId}/availability",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Бронирование слота (с ограничением частоты по IP)
	api.Handle("/bookings", bookingLimiter.Middleware(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)

	// Отмена бронирования участником
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Календари ---
	protected.HandleFunc("/calendars", calendars.Create).Methods(http.MethodPost)
	protected.HandleFunc("/calendars", calendars.List).Methods(http.MethodGet)
	protected.HandleFunc("/calendars/{calendarId}", calendars.Get).Methods(http.MethodGet)

	// --- Расписания ---
	protected.HandleFunc("/calendars/{calendarId}/schedules", schedules.Create).Methods(http.MethodPost)
	protected.HandleFunc("/calendars/{calendarId}/schedules", schedules.List).Methods(http.MethodGet)
	protected.HandleFunc("/schedules/{scheduleId}", schedules.Get).Methods(http.MethodGet)
	protected.HandleFunc("/schedules/{scheduleId}", schedules.Update).Methods(http.MethodPut)
	protected.HandleFunc("/schedules/{scheduleId}", schedules.Delete).Methods(http.MethodDelete)

	// --- Типы событий ---
	protected.HandleFunc("/calendars/{calendarId}/event-types", eventTypes.Create).Methods(http.MethodPost)
	protected.HandleFunc("/calendars/{calendarId}/event-types", eventTypes.List).Methods(http.MethodGet)
	protected.HandleFunc("/event-types/{eventTypeId}", eventTypes.Get).Methods(http.MethodGet)
	protected.HandleFunc("/event-types/{eventTypeId}", eventTypes.Update).Methods(http.MethodPut)
	protected.HandleFunc("/event-types/{eventTypeId}", eventTypes.Delete).Methods(http.MethodDelete)

	// --- Слоты ---
	protected.HandleFunc("/calendars/{calendarId}/slots/generate", generateSlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/calendars/{calendarId}/slots", slots.List).Methods(http.MethodGet)
	protected.HandleFunc("/slots/{slotId}", slots.Get).Methods(http.MethodGet)
	protected.HandleFunc("/slots/{slotId}", slots.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/slots/{slotId}", slots.Delete).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
