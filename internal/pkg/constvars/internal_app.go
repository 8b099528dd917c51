package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	AppEnvironmentProduction  = "production"
	AppEnvironmentDevelopment = "development"
)

// Redis key layout
const (
	RedisSessionKeyPrefix          = "session:"
	RedisRealtimeChannel           = "realtime:notifications"
	RedisEventRetryWorkerLockKey   = "worker:lifecycle_event_retry:lock"
	RedisNotificationSweepLockKey  = "worker:notification_sweep:lock"
	DefaultNotificationListLimit   = 100
	DefaultRealtimeClientSendQueue = 256
)
