package constvars

const (
	RolePatient  = "patient"
	RoleDoctor   = "doctor"
	RoleHospital = "hospital"
	RoleAdmin    = "admin"
)

// ReviewerRoom is the shared inbox and realtime room of hospital and admin
// accounts.
const ReviewerRoom = "reviewers"

const (
	CalendarDateLayout = "2006-01-02"
	SlotTimeLayout     = "3:04 PM"
)

const (
	NotificationTypeInfo    = "info"
	NotificationTypeSuccess = "success"
	NotificationTypeWarning = "warning"
	NotificationTypeError   = "error"
)

const (
	TargetPathPatientCalendar       = "/patient/calendar"
	TargetPathDoctorAppointments    = "/doctor/appointments"
	TargetPathDoctorVerification    = "/doctor/verification"
	TargetPathHospitalVerifications = "/hospital/verifications"
	NotificationMetadataAppointment = "appointmentId"
	NotificationMetadataDoctor      = "doctorId"
	NotificationMetadataRole        = "role"
	NotificationMetadataEventID     = "eventId"
)

// Realtime wire events
const (
	RealtimeEventJoin                = "join"
	RealtimeEventLeave               = "leave"
	RealtimeEventReadNotification    = "readNotification"
	RealtimeEventReceiveNotification = "receiveNotification"
	RealtimeEventNotificationDeleted = "notificationDeleted"
	RealtimeEventError               = "error"
	RealtimeEventJoined              = "joined"
)

const (
	DocumentProfileImage                = "profileImage"
	DocumentIdentity                    = "identityDocument"
	DocumentMedicalCouncilCertificate   = "medicalCouncilCertificate"
	DocumentQualificationCertificates   = "qualificationCertificates"
	DocumentDigitalSignatureCertificate = "digitalSignatureCertificate"
	MaxQualificationCertificates        = 10
	VerificationObjectPrefix            = "doctor_verifications"
)

const (
	NotificationTitleNewAppointment       = "New Appointment"
	NotificationTitleAppointmentAccepted  = "Appointment Accepted"
	NotificationTitleAppointmentCompleted = "Appointment Completed"
	NotificationTitleAppointmentCancelled = "Appointment Cancelled"
	NotificationTitleVerificationApproved = "Verification Approved"
	NotificationTitleVerificationRejected = "Verification Rejected"
	NotificationTitleDoctorRegistration   = "New Doctor Registration"
	NotificationTitleDoctorResubmission   = "Verification Resubmitted"

	NotificationMessageNewAppointment       = "%s booked an appointment on %s at %s"
	NotificationMessageAppointmentAccepted  = "Your appointment on %s at %s has been accepted"
	NotificationMessageAppointmentCompleted = "Your appointment on %s at %s has been marked as completed"
	NotificationMessageAppointmentCancelled = "Your appointment on %s at %s has been cancelled by the %s"
	NotificationMessageVerificationApproved = "Your registration has been verified"
	NotificationMessageVerificationRejected = "Your registration was rejected: %s"
	NotificationMessageDoctorRegistration   = "Doctor %s submitted registration details for review"
	NotificationMessageDoctorResubmission   = "Doctor %s resubmitted registration details for review"
)

const (
	DefaultNotificationUnreadRetention = 48
	DefaultNotificationSweepCronSpec   = "@hourly"
)
