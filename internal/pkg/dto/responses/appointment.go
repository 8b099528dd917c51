package responses

type BookAppointment struct {
	AppointmentID string `json:"appointmentId"`
	Status        string `json:"status"`
}

type AppointmentTransition struct {
	AppointmentID string `json:"appointmentId"`
	Status        string `json:"status"`
}

type AvailabilityDay struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type Availability struct {
	DoctorID string            `json:"doctorId"`
	Days     []AvailabilityDay `json:"days"`
}

type SearchSlots struct {
	DoctorID string   `json:"doctorId"`
	Date     string   `json:"date"`
	Slots    []string `json:"slots"`
}
