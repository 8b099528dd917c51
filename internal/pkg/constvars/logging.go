package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingSessionIDKey      = "session_id"
	LoggingUserIDKey         = "user_id"
	LoggingRoleKey           = "role"
	LoggingResponseLengthKey = "response_length"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingDoctorIDKey       = "doctor_id"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingNotificationIDKey = "notification_id"
	LoggingRecipientIDKey    = "recipient_id"
	LoggingEventIDKey        = "event_id"
	LoggingEventKindKey      = "event_kind"
	LoggingFromStatusKey     = "from_status"
	LoggingToStatusKey       = "to_status"
	LoggingDateKey           = "date"
	LoggingTimeKey           = "time"
	LoggingCountKey          = "count"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingQueueNameKey          = "queue_name"
	LoggingFailedCountKey        = "failed_count"
	LoggingBucketNameKey         = "bucket_name"
	LoggingObjectNameKey         = "object_name"
	LoggingRealtimeEventKey      = "realtime_event"
	LoggingConnectionIDKey       = "connection_id"
)
