package models

import "strings"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusAccepted  AppointmentStatus = "accepted"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID              string            `json:"id" bson:"_id"`
	PatientID       string            `json:"patientId" bson:"patientId"`
	DoctorID        string            `json:"doctorId" bson:"doctorId"`
	Date            string            `json:"date" bson:"date"`
	Time            string            `json:"time" bson:"time"`
	Reason          string            `json:"reason" bson:"reason"`
	PatientInfo     PatientInfo       `json:"patientInfo" bson:"patientInfo"`
	AttachedRecords []AttachedRecord  `json:"attachedRecords" bson:"attachedRecords"`
	Status          AppointmentStatus `json:"status" bson:"status"`
	// SlotKey is present only while the appointment holds its slot; a
	// partial unique index over it enforces one active booking per slot.
	SlotKey   string `json:"-" bson:"slotKey,omitempty"`
	TimeModel `bson:",inline"`
}

type PatientInfo struct {
	Name                  string   `json:"name" bson:"name"`
	Phone                 string   `json:"phone" bson:"phone"`
	Age                   int      `json:"age" bson:"age"`
	Gender                string   `json:"gender" bson:"gender"`
	BloodGroup            string   `json:"bloodGroup,omitempty" bson:"bloodGroup,omitempty"`
	Allergies             []string `json:"allergies" bson:"allergies"`
	MedicalHistorySummary string   `json:"medicalHistorySummary,omitempty" bson:"medicalHistorySummary,omitempty"`
}

type AttachedRecord struct {
	Name string `json:"name" bson:"name"`
	URL  string `json:"url" bson:"url"`
}

func BuildSlotKey(doctorID, date, time string) string {
	return strings.Join([]string{doctorID, date, time}, "|")
}

func (a *Appointment) HoldsSlot() bool {
	return a.Status != AppointmentStatusCancelled
}

func (a *Appointment) IsOwnedBy(userID string) bool {
	return userID != "" && (a.PatientID == userID || a.DoctorID == userID)
}
