package models

type RegistrationStatus string

const (
	RegistrationStatusUnderReview RegistrationStatus = "under review by hospital"
	RegistrationStatusVerified    RegistrationStatus = "verified"
	RegistrationStatusRejected    RegistrationStatus = "rejected"
)

// DoctorVerification is the onboarding record a doctor submits for review.
// Identity numbers are stored hashed; only the masked form is ever returned.
type DoctorVerification struct {
	ID                               string                 `json:"id" bson:"_id"`
	DoctorID                         string                 `json:"doctorId" bson:"doctorId"`
	FullName                         string                 `json:"fullName" bson:"fullName"`
	Gender                           string                 `json:"gender" bson:"gender"`
	DateOfBirth                      string                 `json:"dateOfBirth" bson:"dateOfBirth"`
	MedicalCouncilRegistrationNumber string                 `json:"medicalCouncilRegistrationNumber" bson:"medicalCouncilRegistrationNumber"`
	MedicalCouncilName               string                 `json:"medicalCouncilName" bson:"medicalCouncilName"`
	YearOfRegistration               int                    `json:"yearOfRegistration" bson:"yearOfRegistration"`
	PrimarySpecialization            string                 `json:"primarySpecialization" bson:"primarySpecialization"`
	AdditionalSpecializations        []string               `json:"additionalSpecializations" bson:"additionalSpecializations"`
	Category                         string                 `json:"category" bson:"category"`
	Qualifications                   []Qualification        `json:"qualifications" bson:"qualifications"`
	ExperienceYears                  int                    `json:"experienceYears" bson:"experienceYears"`
	Affiliations                     []HospitalAffiliation  `json:"clinicHospitalAffiliations" bson:"clinicHospitalAffiliations"`
	AadhaarNumberHash                string                 `json:"-" bson:"aadhaarNumberHash"`
	AadhaarNumberMasked              string                 `json:"aadhaarNumber" bson:"aadhaarNumberMasked"`
	PanNumberHash                    string                 `json:"-" bson:"panNumberHash"`
	PanNumberMasked                  string                 `json:"panNumber" bson:"panNumberMasked"`
	DigitalSignatureCertificateID    string                 `json:"digitalSignatureCertificateId,omitempty" bson:"digitalSignatureCertificateId,omitempty"`
	SubmissionID                     string                 `json:"submissionId" bson:"submissionId"`
	Documents                        []VerificationDocument `json:"documents" bson:"documents"`
	RegistrationStatus               RegistrationStatus     `json:"registrationStatus" bson:"registrationStatus"`
	ReviewMessage                    string                 `json:"message,omitempty" bson:"reviewMessage,omitempty"`
	ReviewedBy                       string                 `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	TimeModel                        `bson:",inline"`
}

type Qualification struct {
	Degree            string `json:"degree" bson:"degree"`
	UniversityCollege string `json:"universityCollege" bson:"universityCollege"`
	Year              int    `json:"year" bson:"year"`
}

type HospitalAffiliation struct {
	Name        string `json:"name" bson:"name"`
	City        string `json:"city" bson:"city"`
	State       string `json:"state" bson:"state"`
	StartDate   string `json:"startDate" bson:"startDate"`
	EndDate     string `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Designation string `json:"designation" bson:"designation"`
}

type VerificationDocument struct {
	Field       string `json:"field" bson:"field"`
	ObjectName  string `json:"objectName" bson:"objectName"`
	URL         string `json:"url,omitempty" bson:"-"`
	ContentType string `json:"contentType" bson:"contentType"`
	Size        int64  `json:"size" bson:"size"`
}
