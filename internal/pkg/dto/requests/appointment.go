package requests

type BookAppointment struct {
	DoctorID        string           `json:"doctorId" validate:"required,max=64"`
	PatientID       string           `json:"patientId" validate:"required,max=64"`
	Date            string           `json:"date" validate:"required,calendar_date"`
	Time            string           `json:"time" validate:"required,slot_time"`
	Reason          string           `json:"reason" validate:"max=500"`
	PatientInfo     PatientInfo      `json:"patientInfo"`
	AttachedRecords []AttachedRecord `json:"attachedRecords" validate:"max=10,dive"`
}

type PatientInfo struct {
	Name                  string   `json:"name" validate:"required,max=100"`
	Phone                 string   `json:"phone" validate:"required,phone_number"`
	Age                   int      `json:"age" validate:"gte=1,lte=120"`
	Gender                string   `json:"gender" validate:"required,oneof=male female other"`
	BloodGroup            string   `json:"bloodGroup,omitempty" validate:"omitempty,blood_group"`
	Allergies             []string `json:"allergies" validate:"max=20,dive,required,max=100"`
	MedicalHistorySummary string   `json:"medicalHistorySummary,omitempty" validate:"max=2000"`
}

type AttachedRecord struct {
	Name string `json:"name" validate:"required,max=200"`
	URL  string `json:"url" validate:"required,url"`
}

type SearchSlots struct {
	Date string `json:"date" validate:"required,calendar_date"`
}

type DoctorAppointmentsQuery struct {
	Date string `validate:"omitempty,calendar_date"`
}
