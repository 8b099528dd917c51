package slot

import (
	"context"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/dto/requests"
	"meetocure-service/internal/pkg/dto/responses"
	"meetocure-service/internal/pkg/exceptions"
	"meetocure-service/internal/pkg/utils"
	"sort"

	"go.uber.org/zap"
)

// slotUsecase reads doctor-defined availability. It never reserves or
// retires slots; double booking is prevented by the appointment store.
type slotUsecase struct {
	AvailabilityRepository contracts.AvailabilityRepository
	DoctorRepository       contracts.DoctorRepository
	Log                    *zap.Logger
}

func NewSlotUsecase(availabilityRepository contracts.AvailabilityRepository, doctorRepository contracts.DoctorRepository, logger *zap.Logger) contracts.SlotUsecase {
	return &slotUsecase{
		AvailabilityRepository: availabilityRepository,
		DoctorRepository:       doctorRepository,
		Log:                    logger,
	}
}

// GetAvailability returns the doctor's days ordered by date. A doctor with
// no configured availability yields an empty list.
func (uc *slotUsecase) GetAvailability(ctx context.Context, doctorID string) (*responses.Availability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.GetAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil, doctorID)
	}

	availability, err := uc.AvailabilityRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		uc.Log.Error("slotUsecase.GetAvailability error fetching availability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := &responses.Availability{
		DoctorID: doctorID,
		Days:     []responses.AvailabilityDay{},
	}
	if availability == nil {
		return response, nil
	}

	days := make([]models.AvailabilityDay, len(availability.Days))
	copy(days, availability.Days)
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	for _, day := range days {
		response.Days = append(response.Days, responses.AvailabilityDay{
			Date:  day.Date,
			Slots: normalizeSlots(day.Slots),
		})
	}
	return response, nil
}

// GetSlotsForDate returns the configured slots for one date, in configured
// order. An unconfigured date is an empty list, not an error.
func (uc *slotUsecase) GetSlotsForDate(ctx context.Context, doctorID, date string) ([]string, error) {
	availability, err := uc.AvailabilityRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if availability == nil {
		return []string{}, nil
	}

	for _, day := range availability.Days {
		if day.Date == date {
			return normalizeSlots(day.Slots), nil
		}
	}
	return []string{}, nil
}

func (uc *slotUsecase) SearchSlots(ctx context.Context, doctorID string, request *requests.SearchSlots) (*responses.SearchSlots, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.SearchSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingDateKey, request.Date),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	slots, err := uc.GetSlotsForDate(ctx, doctorID, request.Date)
	if err != nil {
		return nil, err
	}
	return &responses.SearchSlots{
		DoctorID: doctorID,
		Date:     request.Date,
		Slots:    slots,
	}, nil
}

func normalizeSlots(slots []string) []string {
	normalized := make([]string, 0, len(slots))
	for _, slot := range slots {
		normalized = append(normalized, utils.NormalizeSlotTime(slot))
	}
	return normalized
}
