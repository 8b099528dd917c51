package models

type Availability struct {
	DoctorID string            `json:"doctorId" bson:"-"`
	Days     []AvailabilityDay `json:"days" bson:"days"`
}

type AvailabilityDay struct {
	Date  string   `json:"date" bson:"date"`
	Slots []string `json:"slots" bson:"slots"`
}
