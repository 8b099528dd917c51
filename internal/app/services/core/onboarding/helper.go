package onboarding

import (
	"fmt"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/dto/requests"
	"path"
	"strings"
)

var singleDocumentFields = map[string]bool{
	constvars.DocumentProfileImage:                true,
	constvars.DocumentIdentity:                    true,
	constvars.DocumentMedicalCouncilCertificate:   true,
	constvars.DocumentDigitalSignatureCertificate: true,
}

// checkDocuments accepts the multipart fields the onboarding form sends: one
// file each, except up to ten qualification certificates.
func checkDocuments(documents []requests.UploadedDocument, maxSize int64) error {
	counts := make(map[string]int)
	for _, document := range documents {
		counts[document.Field]++
		switch {
		case singleDocumentFields[document.Field]:
			if counts[document.Field] > 1 {
				return fmt.Errorf("field %s accepts a single file", document.Field)
			}
		case document.Field == constvars.DocumentQualificationCertificates:
			if counts[document.Field] > constvars.MaxQualificationCertificates {
				return fmt.Errorf("field %s accepts at most %d files", document.Field, constvars.MaxQualificationCertificates)
			}
		default:
			return fmt.Errorf("unexpected document field %s", document.Field)
		}
		if document.Size <= 0 {
			return fmt.Errorf("document %s is empty", document.FileName)
		}
		if maxSize > 0 && document.Size > maxSize {
			return fmt.Errorf("document %s exceeds %d bytes", document.FileName, maxSize)
		}
	}
	return nil
}

// objectName scopes every upload to its submission, so two submissions never
// write the same object.
func objectName(doctorID, submissionID, field string, index int, fileName string) string {
	return fmt.Sprintf("%s/%s/%s/%s_%d%s", constvars.VerificationObjectPrefix, doctorID, submissionID, field, index, strings.ToLower(path.Ext(fileName)))
}

func toQualifications(qualifications []requests.Qualification) []models.Qualification {
	result := make([]models.Qualification, 0, len(qualifications))
	for _, q := range qualifications {
		result = append(result, models.Qualification{Degree: q.Degree, UniversityCollege: q.UniversityCollege, Year: q.Year})
	}
	return result
}

func toAffiliations(affiliations []requests.HospitalAffiliation) []models.HospitalAffiliation {
	result := make([]models.HospitalAffiliation, 0, len(affiliations))
	for _, a := range affiliations {
		result = append(result, models.HospitalAffiliation{
			Name:        a.Name,
			City:        a.City,
			State:       a.State,
			StartDate:   a.StartDate,
			EndDate:     a.EndDate,
			Designation: a.Designation,
		})
	}
	return result
}

// splitSpecializations turns the form's comma separated list into a slice.
func splitSpecializations(value string) []string {
	result := []string{}
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
