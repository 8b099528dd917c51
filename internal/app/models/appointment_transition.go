package models

import "meetocure-service/internal/pkg/constvars"

type AppointmentAction string

const (
	AppointmentActionAccept   AppointmentAction = "accept"
	AppointmentActionComplete AppointmentAction = "complete"
	AppointmentActionCancel   AppointmentAction = "cancel"
)

// AppointmentTransition is one edge of the appointment state machine.
type AppointmentTransition struct {
	From []AppointmentStatus
	To   AppointmentStatus
	// DoctorOnly restricts the edge to the owning doctor; otherwise either
	// participant may take it.
	DoctorOnly bool
	// RejectMessage is shown to the caller when the current status is not
	// one of From.
	RejectMessage string
}

var AppointmentTransitions = map[AppointmentAction]AppointmentTransition{
	AppointmentActionAccept: {
		From:          []AppointmentStatus{AppointmentStatusPending},
		To:            AppointmentStatusAccepted,
		DoctorOnly:    true,
		RejectMessage: constvars.ErrClientAppointmentNotPending,
	},
	AppointmentActionComplete: {
		From:          []AppointmentStatus{AppointmentStatusAccepted},
		To:            AppointmentStatusCompleted,
		DoctorOnly:    true,
		RejectMessage: constvars.ErrClientAppointmentNotAccepted,
	},
	AppointmentActionCancel: {
		From:          []AppointmentStatus{AppointmentStatusPending, AppointmentStatusAccepted},
		To:            AppointmentStatusCancelled,
		RejectMessage: constvars.ErrClientAppointmentAlreadyClosed,
	},
}

func (t AppointmentTransition) AllowsFrom(status AppointmentStatus) bool {
	for _, from := range t.From {
		if from == status {
			return true
		}
	}
	return false
}

func (t AppointmentTransition) AllowsActor(appointment *Appointment, session *Session) bool {
	if session == nil {
		return false
	}
	if t.DoctorOnly {
		return session.Role == constvars.RoleDoctor && appointment.DoctorID == session.UserID
	}
	switch session.Role {
	case constvars.RoleDoctor:
		return appointment.DoctorID == session.UserID
	case constvars.RolePatient:
		return appointment.PatientID == session.UserID
	default:
		return false
	}
}
