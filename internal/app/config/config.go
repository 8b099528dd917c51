package config

import (
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/utils"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "meetocure"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvironmentDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Kolkata"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			BookingRequestsPerMinute:   utils.GetEnvInt("APP_BOOKING_REQUESTS_PER_MINUTE", 10),
			BookingBurst:               utils.GetEnvInt("APP_BOOKING_BURST", 5),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 25),
			DoctorScheduleDays:         utils.GetEnvInt("APP_DOCTOR_SCHEDULE_DAYS", 2),
		},
		JWT: AppJWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
		MongoDB: AppMongoDB{
			AppointmentCollection:  utils.GetEnvString("MONGODB_APPOINTMENT_COLLECTION", "appointments"),
			AvailabilityCollection: utils.GetEnvString("MONGODB_AVAILABILITY_COLLECTION", "availabilities"),
			NotificationCollection: utils.GetEnvString("MONGODB_NOTIFICATION_COLLECTION", "notifications"),
			OnboardingCollection:   utils.GetEnvString("MONGODB_ONBOARDING_COLLECTION", "doctorverifications"),
			DoctorCollection:       utils.GetEnvString("MONGODB_DOCTOR_COLLECTION", "doctors"),
			PatientCollection:      utils.GetEnvString("MONGODB_PATIENT_COLLECTION", "patients"),
		},
		RabbitMQ: AppRabbitMQ{
			LifecycleEventQueue:    utils.GetEnvString("RABBITMQ_LIFECYCLE_EVENT_QUEUE", "lifecycle_event_queue"),
			LifecycleEventDLQ:      utils.GetEnvString("RABBITMQ_LIFECYCLE_EVENT_DLQ", "lifecycle_event_dlq"),
			Prefetch:               utils.GetEnvInt("RABBITMQ_PREFETCH", 10),
			MaxQueue:               utils.GetEnvInt("RABBITMQ_WORKER_MAX_QUEUE", 20),
			ThrottleRetry:          utils.GetEnvInt("RABBITMQ_WORKER_THROTTLE_RETRY", 5),
			WorkerIntervalInSecond: utils.GetEnvInt("RABBITMQ_WORKER_INTERVAL_IN_SECOND", 60),
		},
		Minio: AppMinio{
			BucketName:                         utils.GetEnvString("MINIO_BUCKET_NAME", "doctor-verification"),
			DocumentMaxUploadSizeInMB:          utils.GetEnvInt64("MINIO_DOCUMENT_MAX_UPLOAD_SIZE_IN_MB", 5),
			PreSignedUrlObjectExpiryTimeInHour: utils.GetEnvInt("MINIO_PRESIGNED_URL_EXPIRY_TIME_IN_HOUR", 24),
		},
		Notification: AppNotification{
			UnreadRetention: utils.GetEnvDuration("NOTIFICATION_UNREAD_RETENTION", 48*time.Hour),
			SweepCronSpec:   utils.GetEnvString("NOTIFICATION_SWEEP_CRON_SPEC", "@hourly"),
			SweepLockTTL:    utils.GetEnvDuration("NOTIFICATION_SWEEP_LOCK_TTL", 5*time.Minute),
			ListLimit:       utils.GetEnvInt("NOTIFICATION_LIST_LIMIT", constvars.DefaultNotificationListLimit),
			DispatchTimeout: utils.GetEnvDuration("NOTIFICATION_DISPATCH_TIMEOUT", 10*time.Second),
		},
		Realtime: AppRealtime{
			RelayEnabled:        utils.GetEnvBool("REALTIME_RELAY_ENABLED", true),
			RelayChannel:        utils.GetEnvString("REALTIME_RELAY_CHANNEL", constvars.RedisRealtimeChannel),
			RelayReconnectDelay: utils.GetEnvDuration("REALTIME_RELAY_RECONNECT_DELAY", 5*time.Second),
			WriteWait:           utils.GetEnvDuration("REALTIME_WRITE_WAIT", 10*time.Second),
			PongWait:            utils.GetEnvDuration("REALTIME_PONG_WAIT", 60*time.Second),
			MaxMessageSizeBytes: utils.GetEnvInt64("REALTIME_MAX_MESSAGE_SIZE_BYTES", 4096),
			SendQueueSize:       utils.GetEnvInt("REALTIME_SEND_QUEUE_SIZE", constvars.DefaultRealtimeClientSendQueue),
			AllowedOrigins:      splitCSV(utils.GetEnvString("REALTIME_ALLOWED_ORIGINS", "*")),
		},
	}
}

func splitCSV(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
