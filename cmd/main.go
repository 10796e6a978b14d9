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
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/coiffurelab/salon-booking-service/internal/api/handlers/cancel_appointment"
	confirmAppointmentHandler "github.com/coiffurelab/salon-booking-service/internal/api/handlers/confirm_appointment"
	createAppointmentHandler "github.com/coiffurelab/salon-booking-service/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/coiffurelab/salon-booking-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/coiffurelab/salon-booking-service/internal/api/handlers/get_available_slots"
	getStaffAppointmentsHandler "github.com/coiffurelab/salon-booking-service/internal/api/handlers/get_staff_appointments"
	getUserAppointmentsHandler "github.com/coiffurelab/salon-booking-service/internal/api/handlers/get_user_appointments"
	listServicesHandler "github.com/coiffurelab/salon-booking-service/internal/api/handlers/list_services"
	rescheduleAppointmentHandler "github.com/coiffurelab/salon-booking-service/internal/api/handlers/reschedule_appointment"
	updateStatusHandler "github.com/coiffurelab/salon-booking-service/internal/api/handlers/update_appointment_status"
	"github.com/coiffurelab/salon-booking-service/internal/api/middleware"
	"github.com/coiffurelab/salon-booking-service/internal/config"
	slotCache "github.com/coiffurelab/salon-booking-service/internal/infra/cache/slots"
	appointmentRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/appointment"
	catalogRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/catalog"
	holidayRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/holiday"
	workingHoursRepo "github.com/coiffurelab/salon-booking-service/internal/infra/storage/workinghours"
	appointmentsService "github.com/coiffurelab/salon-booking-service/internal/service/appointments"
	createAppointmentUC "github.com/coiffurelab/salon-booking-service/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/coiffurelab/salon-booking-service/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/coiffurelab/salon-booking-service/internal/usecase/reschedule_appointment"
	"github.com/coiffurelab/salon-booking-service/pkg/dbmetrics"
	"github.com/coiffurelab/salon-booking-service/pkg/logger"
	"github.com/coiffurelab/salon-booking-service/pkg/metrics"
	"github.com/coiffurelab/salon-booking-service/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting salon-booking-service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	// A nil collector turns the wrapper into a plain pass-through.
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	workingHoursRepository := workingHoursRepo.NewRepository(wrappedDB)
	holidayRepository := holidayRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)
	if metricsCollector != nil {
		txMgr = txMgr.WithRetryObserver(metricsCollector)
	}

	var cache slotCache.Store = slotCache.Noop{}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		defer redisClient.Close()

		cache = slotCache.NewCache(redisClient, time.Duration(cfg.Redis.SlotCacheTTLSec)*time.Second)
		log.Info("Slot cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotCacheTTLSec)
	} else {
		log.Warn("Redis not configured, slot caching disabled")
	}

	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		catalogRepository,
		cache,
		cfg.Booking.CancellationHours,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		workingHoursRepository,
		holidayRepository,
		catalogRepository,
		cache,
		getAvailableSlotsUC.Config{
			SlotIntervalMinutes: cfg.Booking.SlotIntervalMinutes,
			MinAdvanceHours:     cfg.Booking.MinAdvanceHours,
		},
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		workingHoursRepository,
		holidayRepository,
		catalogRepository,
		cache,
		txMgr,
		cfg.Booking.MinAdvanceHours,
		log,
	)
	if metricsCollector != nil {
		createAppointmentUseCase = createAppointmentUseCase.WithConflictObserver(metricsCollector)
	}

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		workingHoursRepository,
		holidayRepository,
		catalogRepository,
		cache,
		txMgr,
		cfg.Booking.MinAdvanceHours,
		log,
	)

	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentSvc, log)
	getStaffAppointments := getStaffAppointmentsHandler.NewHandler(appointmentSvc, log)
	listServices := listServicesHandler.NewHandler(appointmentSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes.
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Protected routes require the gateway identity headers.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/appointments", getUserAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/staff/{staffId}/appointments", getStaffAppointments.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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
