package utils

import (
	"meetocure-service/internal/pkg/dto/requests"
	"strings"
)

func SanitizeBookAppointmentRequest(request *requests.BookAppointment) {
	request.DoctorID = strings.TrimSpace(request.DoctorID)
	request.PatientID = strings.TrimSpace(request.PatientID)
	request.Date = strings.TrimSpace(request.Date)
	request.Time = NormalizeSlotTime(request.Time)
	request.Reason = strings.TrimSpace(request.Reason)

	info := &request.PatientInfo
	info.Name = strings.TrimSpace(info.Name)
	info.Phone = strings.TrimSpace(info.Phone)
	info.Gender = strings.ToLower(strings.TrimSpace(info.Gender))
	info.BloodGroup = strings.ToUpper(strings.TrimSpace(info.BloodGroup))
	info.MedicalHistorySummary = strings.TrimSpace(info.MedicalHistorySummary)

	allergies := info.Allergies[:0]
	for _, allergy := range info.Allergies {
		if trimmed := strings.TrimSpace(allergy); trimmed != "" {
			allergies = append(allergies, trimmed)
		}
	}
	info.Allergies = allergies
}

func SanitizeSubmitVerificationRequest(request *requests.SubmitVerification) {
	request.FullName = strings.TrimSpace(request.FullName)
	request.Gender = strings.ToLower(strings.TrimSpace(request.Gender))
	request.MedicalCouncilRegistrationNumber = strings.TrimSpace(request.MedicalCouncilRegistrationNumber)
	request.MedicalCouncilName = strings.TrimSpace(request.MedicalCouncilName)
	request.PrimarySpecialization = strings.TrimSpace(request.PrimarySpecialization)
	request.AadhaarNumber = strings.ReplaceAll(strings.TrimSpace(request.AadhaarNumber), " ", "")
	request.PanNumber = strings.ToUpper(strings.TrimSpace(request.PanNumber))
}

func SanitizeRejectVerificationRequest(request *requests.RejectVerification) {
	request.Message = strings.TrimSpace(request.Message)
}
