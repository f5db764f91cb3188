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
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	addSelectionUnitHandler "github.com/m04kA/EMS-ReservationService/internal/api/handlers/add_selection_unit"
	cancelReservationHandler "github.com/m04kA/EMS-ReservationService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/m04kA/EMS-ReservationService/internal/api/handlers/check_availability"
	createReservationHandler "github.com/m04kA/EMS-ReservationService/internal/api/handlers/create_reservation"
	createSelectionHandler "github.com/m04kA/EMS-ReservationService/internal/api/handlers/create_selection"
	deleteSelectionHandler "github.com/m04kA/EMS-ReservationService/internal/api/handlers/delete_selection"
	getCandidatesHandler "github.com/m04kA/EMS-ReservationService/internal/api/handlers/get_candidates"
	getReservationHandler "github.com/m04kA/EMS-ReservationService/internal/api/handlers/get_reservation"
	getSelectionHandler "github.com/m04kA/EMS-ReservationService/internal/api/handlers/get_selection"
	getUnitPoolHandler "github.com/m04kA/EMS-ReservationService/internal/api/handlers/get_unit_pool"
	getUserReservationsHandler "github.com/m04kA/EMS-ReservationService/internal/api/handlers/get_user_reservations"
	removeSelectionUnitHandler "github.com/m04kA/EMS-ReservationService/internal/api/handlers/remove_selection_unit"
	updateSelectionFiltersHandler "github.com/m04kA/EMS-ReservationService/internal/api/handlers/update_selection_filters"
	"github.com/m04kA/EMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/EMS-ReservationService/internal/config"
	"github.com/m04kA/EMS-ReservationService/internal/infra/cache/poolcache"
	"github.com/m04kA/EMS-ReservationService/internal/infra/sessions"
	equipmentRepo "github.com/m04kA/EMS-ReservationService/internal/infra/storage/equipment"
	reservationRepo "github.com/m04kA/EMS-ReservationService/internal/infra/storage/reservation"
	availabilityClient "github.com/m04kA/EMS-ReservationService/internal/integrations/availability"
	catalogClient "github.com/m04kA/EMS-ReservationService/internal/integrations/catalog"
	reservationsService "github.com/m04kA/EMS-ReservationService/internal/service/reservations"
	selectionsService "github.com/m04kA/EMS-ReservationService/internal/service/selections"
	buildCandidatesUC "github.com/m04kA/EMS-ReservationService/internal/usecase/build_candidates"
	checkAvailabilityUC "github.com/m04kA/EMS-ReservationService/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/EMS-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/EMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/EMS-ReservationService/pkg/logger"
	"github.com/m04kA/EMS-ReservationService/pkg/metrics"
	"github.com/m04kA/EMS-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/EMS-ReservationService/pkg/txmanager"
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

	log.Info("Starting EMS-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		equipmentRepository   *equipmentRepo.Repository
		reservationRepository *reservationRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		equipmentRepository = equipmentRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		equipmentRepository = equipmentRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Хранилище сессий подбора
	sessionStore := sessions.NewStore(time.Duration(cfg.Selections.SessionTTLMinutes) * time.Minute)
	log.Info("Selection session store initialized (ttl=%dm)", cfg.Selections.SessionTTLMinutes)

	// Redis-кэш состава пулов (если включен)
	var poolCache buildCandidatesUC.PoolCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		poolCache = poolcache.New(redisClient, time.Duration(cfg.Redis.PoolCacheTTLSec)*time.Second)
		log.Info("Unit pool cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.PoolCacheTTLSec)
	}

	// Use case проверки доступности работает поверх собственного хранилища
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		equipmentRepository,
		reservationRepository,
		log,
	)

	// Источник пула единиц: собственный каталог или внешний сервис
	var unitPool selectionsService.UnitPoolProvider
	var categoryChecker getUnitPoolHandler.CategoryChecker
	if cfg.Catalog.IsRemote() {
		unitPool = catalogClient.NewClient(
			cfg.Catalog.URL,
			time.Duration(cfg.Catalog.Timeout)*time.Second,
			log,
		)
		log.Info("Catalog mode: remote (%s, timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)
	} else {
		unitPool = equipmentRepository
		categoryChecker = equipmentRepository
		log.Info("Catalog mode: local")
	}

	// Проверка доступности: локальный use case или внешний сервис
	var checker selectionsService.AvailabilityChecker
	if cfg.Availability.IsRemote() {
		checker = availabilityClient.NewClient(
			cfg.Availability.URL,
			time.Duration(cfg.Availability.Timeout)*time.Second,
			log,
		)
		log.Info("Availability mode: remote (%s, timeout=%ds)", cfg.Availability.URL, cfg.Availability.Timeout)
	} else {
		checker = checkAvailabilityUseCase
		log.Info("Availability mode: local")
	}

	// Инициализируем сервисы
	selectionSvc := selectionsService.NewService(
		sessionStore,
		unitPool,
		checker,
		reservationRepository,
		log,
	)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		log,
	)

	// Инициализируем use cases
	buildCandidatesUseCase := buildCandidatesUC.NewUseCase(
		unitPool,
		checker,
		sessionStore,
		poolCache,
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		equipmentRepository,
		sessionStore,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createSelection := createSelectionHandler.NewHandler(selectionSvc, log)
	getSelection := getSelectionHandler.NewHandler(selectionSvc, log)
	deleteSelection := deleteSelectionHandler.NewHandler(selectionSvc, log)
	updateSelectionFilters := updateSelectionFiltersHandler.NewHandler(selectionSvc, log)
	addSelectionUnit := addSelectionUnitHandler.NewHandler(selectionSvc, log)
	removeSelectionUnit := removeSelectionUnitHandler.NewHandler(selectionSvc, log)
	getCandidates := getCandidatesHandler.NewHandler(buildCandidatesUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getUnitPool := getUnitPoolHandler.NewHandler(unitPool, categoryChecker, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)

	// Фоновая очистка истекших сессий подбора
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.Selections.SweepSpec, func() {
		selectionSvc.PurgeExpired(time.Now())
	}); err != nil {
		log.Fatal("Failed to schedule session sweeper: %v", err)
	}
	sweeper.Start()
	log.Info("Session sweeper scheduled (spec=%q)", cfg.Selections.SweepSpec)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Пул единиц оборудования по типу
	api.HandleFunc("/equipment-categories/{categoryId}/units",
		getUnitPool.Handle).Methods(http.MethodGet)

	// Проверка доступности единицы в окне
	api.HandleFunc("/equipment-units/{unitId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сессии подбора ---
	// Создание сессии (опционально - для редактирования бронирования)
	protected.HandleFunc("/selections", createSelection.Handle).Methods(http.MethodPost)

	// Текущее состояние сессии
	protected.HandleFunc("/selections/{sessionId}", getSelection.Handle).Methods(http.MethodGet)

	// Удаление сессии
	protected.HandleFunc("/selections/{sessionId}", deleteSelection.Handle).Methods(http.MethodDelete)

	// Изменение фильтров (тип, дата, окно времени)
	protected.HandleFunc("/selections/{sessionId}/filters", updateSelectionFilters.Handle).Methods(http.MethodPatch)

	// Набор кандидатов для текущих фильтров
	protected.HandleFunc("/selections/{sessionId}/candidates", getCandidates.Handle).Methods(http.MethodGet)

	// Добавление единицы в выбор
	protected.HandleFunc("/selections/{sessionId}/units", addSelectionUnit.Handle).Methods(http.MethodPost)

	// Удаление единицы из выбора
	protected.HandleFunc("/selections/{sessionId}/units/{unitId}", removeSelectionUnit.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	// Фиксация сессии подбора в бронирование
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновую очистку сессий
	sweeperCtx := sweeper.Stop()
	<-sweeperCtx.Done()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited gracefully")
}
