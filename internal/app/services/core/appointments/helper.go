package appointments

import (
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/dto/requests"
	"meetocure-service/internal/pkg/utils"
	"time"
)

func containsSlot(slots []string, slotTime string) bool {
	wanted := utils.NormalizeSlotTime(slotTime)
	for _, slot := range slots {
		if utils.NormalizeSlotTime(slot) == wanted {
			return true
		}
	}
	return false
}

// slotMinutes orders "9:00 AM" before "10:30 AM"; unparsable labels sort last.
func slotMinutes(slotTime string) int {
	parsed, err := time.Parse(constvars.SlotTimeLayout, slotTime)
	if err != nil {
		return 24 * 60
	}
	return parsed.Hour()*60 + parsed.Minute()
}

func toPatientInfo(info requests.PatientInfo) models.PatientInfo {
	allergies := info.Allergies
	if allergies == nil {
		allergies = []string{}
	}
	return models.PatientInfo{
		Name:                  info.Name,
		Phone:                 info.Phone,
		Age:                   info.Age,
		Gender:                info.Gender,
		BloodGroup:            info.BloodGroup,
		Allergies:             allergies,
		MedicalHistorySummary: info.MedicalHistorySummary,
	}
}

func toAttachedRecords(records []requests.AttachedRecord) []models.AttachedRecord {
	attached := make([]models.AttachedRecord, 0, len(records))
	for _, record := range records {
		attached = append(attached, models.AttachedRecord{Name: record.Name, URL: record.URL})
	}
	return attached
}
