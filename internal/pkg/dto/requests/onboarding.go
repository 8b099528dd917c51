package requests

import "io"

type SubmitVerification struct {
	FullName                         string                `json:"fullName" validate:"required,max=100"`
	Gender                           string                `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth                      string                `json:"dateOfBirth" validate:"omitempty,calendar_date"`
	MedicalCouncilRegistrationNumber string                `json:"medicalCouncilRegistrationNumber" validate:"required,max=50"`
	MedicalCouncilName               string                `json:"medicalCouncilName" validate:"required,max=100"`
	YearOfRegistration               int                   `json:"yearOfRegistration" validate:"omitempty,gte=1950,lte=2100"`
	PrimarySpecialization            string                `json:"primarySpecialization" validate:"required,max=100"`
	AdditionalSpecializations        string                `json:"additionalSpecializations" validate:"max=300"`
	Category                         string                `json:"category" validate:"required,oneof=Cardiology Dentistry Pulmonology Neurology Gastroenterology Laboratory Vaccination General Other"`
	Qualifications                   []Qualification       `json:"qualifications" validate:"required,min=1,max=10,dive"`
	ExperienceYears                  int                   `json:"experienceYears" validate:"gte=0,lte=70"`
	Affiliations                     []HospitalAffiliation `json:"clinicHospitalAffiliations" validate:"max=10,dive"`
	AadhaarNumber                    string                `json:"aadhaarNumber" validate:"required,len=12,numeric"`
	PanNumber                        string                `json:"panNumber" validate:"required,len=10,alphanum"`
	DigitalSignatureCertificateID    string                `json:"digitalSignatureCertificateId" validate:"max=100"`
	Documents                        []UploadedDocument    `json:"-" validate:"-"`
}

type Qualification struct {
	Degree            string `json:"degree" validate:"required,max=100"`
	UniversityCollege string `json:"universityCollege" validate:"required,max=200"`
	Year              int    `json:"year" validate:"gte=1950,lte=2100"`
}

type HospitalAffiliation struct {
	Name        string `json:"name" validate:"required,max=200"`
	City        string `json:"city" validate:"max=100"`
	State       string `json:"state" validate:"max=100"`
	StartDate   string `json:"startDate" validate:"omitempty,calendar_date"`
	EndDate     string `json:"endDate" validate:"omitempty,calendar_date"`
	Designation string `json:"designation" validate:"max=100"`
}

// UploadedDocument is one file part of a verification submission. Field is
// the multipart field name it arrived under.
type UploadedDocument struct {
	Field       string
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type RejectVerification struct {
	Message string `json:"message" validate:"required,max=500"`
}
