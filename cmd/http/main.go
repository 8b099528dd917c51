package main

import (
	"context"
	"log"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/delivery/http/controllers"
	"meetocure-service/internal/app/delivery/http/middlewares"
	"meetocure-service/internal/app/delivery/http/routers"
	"meetocure-service/internal/app/drivers/database"
	"meetocure-service/internal/app/drivers/logger"
	"meetocure-service/internal/app/drivers/messaging"
	"meetocure-service/internal/app/drivers/storage"
	"meetocure-service/internal/app/services/core/appointments"
	"meetocure-service/internal/app/services/core/directory"
	"meetocure-service/internal/app/services/core/notifications"
	"meetocure-service/internal/app/services/core/onboarding"
	"meetocure-service/internal/app/services/core/session"
	"meetocure-service/internal/app/services/core/slot"
	"meetocure-service/internal/app/services/shared/eventqueue"
	"meetocure-service/internal/app/services/shared/locker"
	"meetocure-service/internal/app/services/shared/realtime"
	"meetocure-service/internal/app/services/shared/redis"
	minioStorage "meetocure-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger := logger.NewZapLogger(driverConfig, internalConfig)
	time.Local = internalConfig.Location()

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		MongoDB:        database.NewMongoDB(driverConfig),
		Redis:          database.NewRedisClient(driverConfig),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Minio:          storage.NewMinio(driverConfig, internalConfig),
		Logger:         logger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	appCtx, cancelApp := context.WithCancel(context.Background())
	if err := bootstrapingTheApp(appCtx, bootstrap); err != nil {
		logger.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		logger.Info("Server started", zap.String("address", internalConfig.App.Address+internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	cancelApp()
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to close connections: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) error {
	cfg := bootstrap.InternalConfig
	dbName := bootstrap.DriverConfig.MongoDB.DbName
	log := bootstrap.Logger

	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)
	fileStorage := minioStorage.NewMinioStorage(bootstrap.Minio, log)
	eventQueue, err := eventqueue.NewService(bootstrap.RabbitMQ, log, cfg)
	if err != nil {
		return err
	}

	// Realtime
	hub := realtime.NewHub(log)
	if cfg.Realtime.RelayEnabled {
		relay := realtime.NewRedisRelay(bootstrap.Redis, redisRepository, hub, cfg.Realtime.RelayChannel, cfg.Realtime.RelayReconnectDelay, log)
		hub.SetRelay(relay)
		go relay.Run(ctx)
	}

	// Repositories
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, dbName, cfg.MongoDB.AppointmentCollection)
	availabilityRepository := slot.NewAvailabilityMongoRepository(bootstrap.MongoDB, dbName, cfg.MongoDB.AvailabilityCollection)
	notificationRepository := notifications.NewNotificationMongoRepository(bootstrap.MongoDB, dbName, cfg.MongoDB.NotificationCollection)
	onboardingRepository := onboarding.NewOnboardingMongoRepository(bootstrap.MongoDB, dbName, cfg.MongoDB.OnboardingCollection)
	doctorRepository := directory.NewDoctorMongoRepository(bootstrap.MongoDB, dbName, cfg.MongoDB.DoctorCollection)
	patientRepository := directory.NewPatientMongoRepository(bootstrap.MongoDB, dbName, cfg.MongoDB.PatientCollection)

	// Notifications
	var realtimePublisher contracts.RealtimePublisher = hub
	dispatcher := notifications.NewNotificationDispatcher(notificationRepository, realtimePublisher, log)
	eventPublisher := notifications.NewLifecycleEventPublisher(dispatcher, eventQueue, cfg, log)
	notificationUsecase := notifications.NewNotificationUsecase(notificationRepository, realtimePublisher, cfg, log)

	// Usecases
	sessionService := session.NewSessionService(redisRepository)
	slotUsecase := slot.NewSlotUsecase(availabilityRepository, doctorRepository, log)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentRepository, doctorRepository, patientRepository, slotUsecase, eventPublisher, cfg, log)
	onboardingUsecase := onboarding.NewOnboardingUsecase(onboardingRepository, doctorRepository, fileStorage, eventPublisher, cfg, log)

	// Workers
	retryWorker := notifications.NewRetryWorker(log, cfg, lockerService, eventQueue, dispatcher)
	stopRetryWorker := retryWorker.Start(ctx)
	sweeper := notifications.NewSweeper(log, cfg, lockerService, notificationUsecase)
	sweeper.Start(ctx)
	bootstrap.Stoppers = append(bootstrap.Stoppers, stopRetryWorker, sweeper.Stop)

	// Delivery
	mw := middlewares.NewMiddlewares(log, sessionService, cfg)
	routers.SetupRoutes(
		bootstrap.Router,
		cfg,
		mw,
		controllers.NewSlotController(log, slotUsecase, cfg),
		controllers.NewAppointmentController(log, appointmentUsecase, cfg),
		controllers.NewNotificationController(log, notificationUsecase, cfg),
		controllers.NewOnboardingController(log, onboardingUsecase, cfg),
		controllers.NewRealtimeController(log, hub, notificationUsecase, cfg),
	)
	return nil
}
