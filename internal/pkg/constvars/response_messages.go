package constvars

const (
	ResponseUnknown = "unknown"

	GetAvailabilitySuccessMessage       = "get doctor availability successfully"
	SearchSlotsSuccessMessage           = "get available slots successfully"
	BookAppointmentSuccessMessage       = "appointment booked successfully"
	GetAppointmentSuccessMessage        = "get appointments successfully"
	AcceptAppointmentSuccessMessage     = "appointment accepted successfully"
	CompleteAppointmentSuccessMessage   = "appointment completed successfully"
	CancelAppointmentSuccessMessage     = "appointment cancelled successfully"
	GetNotificationsSuccessMessage      = "get notifications successfully"
	MarkNotificationReadSuccessMessage  = "notification marked as read"
	MarkAllNotificationsSuccessMessage  = "all notifications marked as read"
	DeleteReadNotificationsSuccessMsg   = "read notifications deleted"
	SubmitVerificationSuccessMessage    = "verification submitted successfully"
	ApproveVerificationSuccessMessage   = "doctor verified successfully"
	RejectVerificationSuccessMessage    = "doctor verification rejected"
	GetVerificationStatusSuccessMessage = "get verification status successfully"
)
