package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"min":           "must be at least %s",
	"max":           "must be at most %s",
	"len":           "must be %s characters long",
	"numeric":       "must be a number",
	"oneof":         "must be one of [%s]",
	"gte":           "must be greater than or equal to %s",
	"lte":           "must be less than or equal to %s",
	"dive":          "contains an invalid item",
	"calendar_date": "must be a date in YYYY-MM-DD format",
	"slot_time":     "must be a time such as 10:30 AM",
	"phone_number":  "phone must be exactly 10 digits",
	"blood_group":   "must be a valid blood group such as O+ or AB-",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gte":   true,
	"lte":   true,
	"oneof": true,
}

// Tags whose message already names the field
var TagsWithStandaloneMessage = map[string]bool{
	"phone_number": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientDateInPast                    = "appointment date cannot be in the past"
	ErrClientSlotUnavailable               = "the selected slot is not available"
	ErrClientSlotConflict                  = "the selected slot is already booked"
	ErrClientAppointmentNotFound           = "appointment not found"
	ErrClientDoctorNotFound                = "doctor not found"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientNotificationNotFound          = "notification not found"
	ErrClientVerificationNotFound          = "verification record not found"
	ErrClientNotAppointmentOwner           = "you are not allowed to change this appointment"
	ErrClientBookForOtherPatient           = "you can only book appointments for yourself"
	ErrClientAppointmentNotPending         = "appointment is not in pending state"
	ErrClientAppointmentNotAccepted        = "appointment is not in accepted state"
	ErrClientAppointmentAlreadyClosed      = "appointment is already completed or cancelled"
	ErrClientVerificationNotUnderReview    = "verification is not under review"
	ErrClientVerificationAlreadyVerified   = "doctor is already verified"
	ErrClientVerificationAlreadySubmitted  = "verification is already under review"
	ErrClientInvalidDocument               = "uploaded document is invalid"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientRequestBodyTooLarge           = "request body is too large"
)

// Error messages for developers
const (
	ErrDevInvalidInput                  = "invalid input"
	ErrDevValidationFailed              = "validation failed"
	ErrDevCannotParseJSON               = "cannot parse JSON"
	ErrDevCannotMarshalJSON             = "cannot marshal JSON"
	ErrDevCannotParseMultipartForm      = "cannot parse multipart form"
	ErrDevURLParamIDValidationFailed    = "url param %s validation failed"
	ErrDevServerDeadlineExceeded        = "server deadline exceeded"
	ErrDevServerProcess                 = "server failed to process request"
	ErrDevMissingRequestID              = "request id missing in context"
	ErrDevMissingSessionData            = "session data missing in context"
	ErrDevTooManyRequests               = "rate limit exceeded for %s"
	ErrDevRequestBodyTooLarge           = "request body exceeds %d bytes"
	ErrDevAuthTokenMissing              = "authorization token missing"
	ErrDevAuthTokenInvalidOrExpired     = "authorization token invalid or expired"
	ErrDevAuthSigningMethod             = "unexpected token signing method"
	ErrDevAuthSessionNotFound           = "session not found"
	ErrDevRoleNotAllowed                = "role %s is not allowed for this operation"
	ErrDevDateInPast                    = "date %s is before today"
	ErrDevSlotUnavailable               = "slot %s %s is not offered by doctor %s"
	ErrDevSlotConflict                  = "slot %s %s already held by an active appointment of doctor %s"
	ErrDevIllegalTransition             = "illegal transition from %s to %s"
	ErrDevActorNotAuthorized            = "actor %s not authorized for %s"
	ErrDevEntityNotFound                = "%s %s not found"
	ErrDevRealtimeNoSubscriber          = "no realtime subscriber for user %s"
	ErrDevRealtimeJoinForbidden         = "connection of user %s cannot join room %s"
	ErrDevRealtimeDeliveryFailed        = "realtime delivery failed for user %s"
	ErrDevHashIdentityNumber            = "failed to hash identity number"
	ErrDevDBFailedToFindDocument        = "failed to find document"
	ErrDevDBFailedToInsertDocument      = "failed to insert document"
	ErrDevDBFailedToUpdateDocument      = "failed to update document"
	ErrDevDBFailedToDeleteDocument      = "failed to delete document"
	ErrDevDBFailedToIterateDocuments    = "failed to iterate documents"
	ErrDevDBDuplicateDocument           = "document %s already exists in %s"
	ErrDevDBFailedToCreateIndex         = "failed to create index on %s"
	ErrDevDBStringNotObjectID           = "string is not a valid object id"
	ErrDevRedisGetData                  = "failed to get data from redis"
	ErrDevRedisGetNoData                = "no data in redis for key %s"
	ErrDevRedisSetData                  = "failed to set data in redis"
	ErrDevRedisDeleteData               = "failed to delete data in redis"
	ErrDevRedisExpire                   = "failed to set expiration in redis"
	ErrDevRedisPublish                  = "failed to publish to redis channel %s"
	ErrDevRedisUnlock                   = "failed to release redis lock"
	ErrDevRabbitMQPublishMessage        = "failed to publish message to queue %s"
	ErrDevRabbitMQFetchMessage          = "failed to fetch message from queue %s"
	ErrDevRabbitMQAckMessage            = "failed to ack message"
	ErrDevRabbitMQNackMessage           = "failed to nack message"
	ErrDevMinioFailedToCreateObject     = "failed to create object in bucket %s"
	ErrDevMinioFailedToPresignObjectURL = "failed to presign object url in bucket %s"
	ErrDevMinioFailedToRemoveObject     = "failed to remove object from bucket %s"
)
