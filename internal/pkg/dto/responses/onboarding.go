package responses

type VerificationStatus struct {
	DoctorID           string `json:"doctorId"`
	RegistrationStatus string `json:"registrationStatus"`
	Message            string `json:"message,omitempty"`
}

type DeletedCount struct {
	DeletedCount int64 `json:"deletedCount"`
}
