package config

import "time"

type InternalConfig struct {
	App          App
	JWT          AppJWT
	MongoDB      AppMongoDB
	RabbitMQ     AppRabbitMQ
	Minio        AppMinio
	Notification AppNotification
	Realtime     AppRealtime
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	RequestTimeoutInSeconds    int
	BookingRequestsPerMinute   int
	BookingBurst               int
	RequestBodyLimitInMegabyte int
	DoctorScheduleDays         int
}

type AppJWT struct {
	Secret string
}

type AppMongoDB struct {
	AppointmentCollection  string
	AvailabilityCollection string
	NotificationCollection string
	OnboardingCollection   string
	DoctorCollection       string
	PatientCollection      string
}

type AppRabbitMQ struct {
	LifecycleEventQueue    string
	LifecycleEventDLQ      string
	Prefetch               int
	MaxQueue               int
	ThrottleRetry          int
	WorkerIntervalInSecond int
}

type AppMinio struct {
	BucketName                         string
	DocumentMaxUploadSizeInMB          int64
	PreSignedUrlObjectExpiryTimeInHour int
}

type AppNotification struct {
	UnreadRetention time.Duration
	SweepCronSpec   string
	SweepLockTTL    time.Duration
	ListLimit       int
	DispatchTimeout time.Duration
}

type AppRealtime struct {
	RelayEnabled        bool
	RelayChannel        string
	RelayReconnectDelay time.Duration
	WriteWait           time.Duration
	PongWait            time.Duration
	MaxMessageSizeBytes int64
	SendQueueSize       int
	AllowedOrigins      []string
}

// Location resolves App.Timezone, falling back to UTC when it is unknown.
func (c *InternalConfig) Location() *time.Location {
	if c == nil || c.App.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
