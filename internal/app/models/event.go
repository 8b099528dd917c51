package models

import "time"

type LifecycleEventKind string

const (
	LifecycleEventAppointment LifecycleEventKind = "appointment"
	LifecycleEventOnboarding  LifecycleEventKind = "onboarding"
)

// LifecycleEvent is emitted exactly once for every committed state change.
// EventID is stable so that consumers can process redeliveries idempotently.
type LifecycleEvent struct {
	EventID       string             `json:"eventId"`
	Kind          LifecycleEventKind `json:"kind"`
	AppointmentID string             `json:"appointmentId,omitempty"`
	DoctorID      string             `json:"doctorId"`
	PatientID     string             `json:"patientId,omitempty"`
	PatientName   string             `json:"patientName,omitempty"`
	Date          string             `json:"date,omitempty"`
	Time          string             `json:"time,omitempty"`
	FromStatus    string             `json:"fromStatus,omitempty"`
	ToStatus      string             `json:"toStatus"`
	ActorID       string             `json:"actorId"`
	ActorRole     string             `json:"actorRole"`
	ReviewMessage string             `json:"reviewMessage,omitempty"`
	OccurredAt    time.Time          `json:"occurredAt"`
	FailedCount   int                `json:"failedCount,omitempty"`
}

// Counterparty is the appointment participant who did not act.
func (e *LifecycleEvent) Counterparty() string {
	if e.ActorID == e.DoctorID {
		return e.PatientID
	}
	return e.DoctorID
}
