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

	cancelBookingHandler "github.com/m04kA/SMC-WaitlistService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-WaitlistService/internal/api/handlers/check_availability"
	findAvailableSlotHandler "github.com/m04kA/SMC-WaitlistService/internal/api/handlers/find_available_slot"
	getBookingHandler "github.com/m04kA/SMC-WaitlistService/internal/api/handlers/get_booking"
	getCourseBookingsHandler "github.com/m04kA/SMC-WaitlistService/internal/api/handlers/get_course_bookings"
	getWaitlistHandler "github.com/m04kA/SMC-WaitlistService/internal/api/handlers/get_waitlist"
	joinWaitlistHandler "github.com/m04kA/SMC-WaitlistService/internal/api/handlers/join_waitlist"
	sendConfirmationHandler "github.com/m04kA/SMC-WaitlistService/internal/api/handlers/send_confirmation"
	sendNotificationHandler "github.com/m04kA/SMC-WaitlistService/internal/api/handlers/send_notification"
	withdrawWaitlistHandler "github.com/m04kA/SMC-WaitlistService/internal/api/handlers/withdraw_waitlist"
	"github.com/m04kA/SMC-WaitlistService/internal/api/middleware"
	"github.com/m04kA/SMC-WaitlistService/internal/config"
	"github.com/m04kA/SMC-WaitlistService/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-WaitlistService/internal/infra/storage/booking"
	courseRepo "github.com/m04kA/SMC-WaitlistService/internal/infra/storage/course"
	waitlistRepo "github.com/m04kA/SMC-WaitlistService/internal/infra/storage/waitlist"
	mailServiceClient "github.com/m04kA/SMC-WaitlistService/internal/integrations/mailservice"
	bookingsService "github.com/m04kA/SMC-WaitlistService/internal/service/bookings"
	waitlistService "github.com/m04kA/SMC-WaitlistService/internal/service/waitlist"
	findSlotUC "github.com/m04kA/SMC-WaitlistService/internal/usecase/find_slot"
	processWaitlistUC "github.com/m04kA/SMC-WaitlistService/internal/usecase/process_waitlist"
	"github.com/m04kA/SMC-WaitlistService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WaitlistService/pkg/logger"
	"github.com/m04kA/SMC-WaitlistService/pkg/metrics"
	"github.com/m04kA/SMC-WaitlistService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-WaitlistService/pkg/txmanager"
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

	log.Info("Starting SMC-WaitlistService...")
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

	// Блокировка обработки листа ожидания: Redis, если включен, иначе заглушка
	var courseLocker processWaitlistUC.CourseLocker
	if cfg.Redis.Enabled {
		redisLock, err := lock.NewRedisLock(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.LockTTL)*time.Second,
			time.Duration(cfg.Redis.DialTimeout)*time.Second,
		)
		if err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		defer redisLock.Close()
		courseLocker = redisLock
		log.Info("Redis lock initialized (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.LockTTL)
	} else {
		courseLocker = lock.NoopLock{}
		log.Info("Redis disabled, waitlist processing runs without distributed lock")
	}

	// Инициализируем клиента сервиса рассылки
	mailClient := mailServiceClient.NewClient(
		cfg.MailService.URL,
		time.Duration(cfg.MailService.Timeout)*time.Second,
		log,
	)
	log.Info("MailService client initialized (URL=%s, timeout=%ds)",
		cfg.MailService.URL, cfg.MailService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		courseRepository   *courseRepo.Repository
		waitlistRepository *waitlistRepo.Repository
		txMgr              processWaitlistUC.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		courseRepository = courseRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		courseRepository = courseRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	waitlistSvc := waitlistService.NewService(
		waitlistRepository,
		courseRepository,
		mailClient,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		mailClient,
		log,
	)

	// Инициализируем use cases
	processWaitlistUseCase := processWaitlistUC.NewUseCase(
		courseRepository,
		bookingRepository,
		waitlistRepository,
		mailClient,
		courseLocker,
		txMgr,
		cfg.Waitlist.ScanHorizonDays,
		log,
	)

	findSlotUseCase := findSlotUC.NewUseCase(
		courseRepository,
		bookingRepository,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(processWaitlistUseCase, log)
	sendNotification := sendNotificationHandler.NewHandler(waitlistSvc, log)
	sendConfirmation := sendConfirmationHandler.NewHandler(bookingSvc, log)
	findAvailableSlot := findAvailableSlotHandler.NewHandler(findSlotUseCase, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(waitlistSvc, log)
	getWaitlist := getWaitlistHandler.NewHandler(waitlistSvc, log)
	withdrawWaitlist := withdrawWaitlistHandler.NewHandler(waitlistSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCourseBookings := getCourseBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, processWaitlistUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Ближайшее вхождение слота с достаточным числом мест
	api.HandleFunc("/courses/{courseId}/next-available-slot",
		findAvailableSlot.Handle).Methods(http.MethodGet)

	// Постановка в лист ожидания курса
	api.HandleFunc("/courses/{courseId}/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)

	// Отзыв записи из листа ожидания
	api.HandleFunc("/waitlist/{entryId}", withdrawWaitlist.Handle).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Service-Token header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ServiceAuth(cfg.Auth.ServiceToken))

	// --- Лист ожидания ---
	// Триггер обработки листа ожидания после освобождения мест
	protected.HandleFunc("/waitlist/check-availability", checkAvailability.Handle).Methods(http.MethodPost)

	// Отправка уведомления о доступном месте
	protected.HandleFunc("/waitlist/send-notification", sendNotification.Handle).Methods(http.MethodPost)

	// Список записей листа ожидания курса
	protected.HandleFunc("/courses/{courseId}/waitlist", getWaitlist.Handle).Methods(http.MethodGet)

	// Список бронирований курса
	protected.HandleFunc("/courses/{courseId}/bookings", getCourseBookings.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Отправка подтверждения бронирования
	protected.HandleFunc("/bookings/send-confirmation", sendConfirmation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования (с обработкой листа ожидания)
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
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
